package history

import (
	"math"
	"testing"
	"time"

	"SatoshiSim/internal/model"
)

func sampleAt(year int, month time.Month, price float64) model.Sample {
	return model.Sample{
		Time:  time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
		Price: price,
	}
}

func TestBuildTable_GroupsByYearWithMean(t *testing.T) {
	samples := []model.Sample{
		sampleAt(2013, time.March, 121.33),
		sampleAt(2013, time.September, 398.65),
		sampleAt(2014, time.June, 526.23),
		sampleAt(2012, time.January, 8.27),
	}
	table := BuildTable(samples)

	if table.Len() != 3 {
		t.Fatalf("expected 3 years, got %d", table.Len())
	}

	tests := []struct {
		year int
		want float64
	}{
		{2012, 8.27},
		{2013, 259.99},
		{2014, 526.23},
	}
	for _, tt := range tests {
		got, ok := table.Price(tt.year)
		if !ok {
			t.Fatalf("year %d missing from table", tt.year)
		}
		if got != tt.want {
			t.Errorf("year %d: expected %.2f, got %.2f", tt.year, tt.want, got)
		}
	}
}

func TestBuildTable_RoundsMeanToTwoDecimals(t *testing.T) {
	samples := []model.Sample{
		sampleAt(2020, time.January, 10.001),
		sampleAt(2020, time.July, 10.004),
	}
	table := BuildTable(samples)
	got, _ := table.Price(2020)
	if got != 10.0 {
		t.Errorf("expected mean rounded to 10.00, got %v", got)
	}
}

func TestBuildTable_SkipsNonPositiveSamples(t *testing.T) {
	samples := []model.Sample{
		sampleAt(2015, time.March, 0),
		sampleAt(2015, time.June, -3),
		sampleAt(2015, time.September, 272.18),
	}
	table := BuildTable(samples)
	got, ok := table.Price(2015)
	if !ok || got != 272.18 {
		t.Errorf("expected 272.18 ignoring bad samples, got %v (present=%v)", got, ok)
	}
}

func TestTable_YearsSortedAscending(t *testing.T) {
	table := BuildTable([]model.Sample{
		sampleAt(2021, time.May, 47886.69),
		sampleAt(2011, time.May, 5.60),
		sampleAt(2017, time.May, 3986.24),
	})
	years := table.Years()
	for i := 1; i < len(years); i++ {
		if years[i-1] >= years[i] {
			t.Fatalf("years not sorted ascending: %v", years)
		}
	}
	if table.EarliestYear(2014) != 2011 {
		t.Errorf("expected earliest year 2011, got %d", table.EarliestYear(2014))
	}
}

func TestTable_EarliestYearFallbackWhenEmpty(t *testing.T) {
	table := BuildTable(nil)
	if got := table.EarliestYear(2014); got != 2014 {
		t.Errorf("expected fallback 2014 on empty table, got %d", got)
	}
}

func TestTable_PriceAbsentYear(t *testing.T) {
	table := BuildTable([]model.Sample{sampleAt(2013, time.March, 259.99)})
	if _, ok := table.Price(1999); ok {
		t.Error("expected absent year to report not present")
	}
}

func TestTable_SetCurrentYear(t *testing.T) {
	table := BuildTable([]model.Sample{
		sampleAt(2024, time.March, 65901.50),
		sampleAt(2025, time.March, 90000),
	})

	// Overwrite an existing year.
	table.SetCurrentYear(2025, 103450.037)
	got, _ := table.Price(2025)
	if got != 103450.04 {
		t.Errorf("expected 2025 overwritten to 103450.04, got %v", got)
	}

	// Insert a year that was absent.
	table.SetCurrentYear(2026, 120000)
	got, ok := table.Price(2026)
	if !ok || got != 120000 {
		t.Errorf("expected 2026 inserted at 120000, got %v (present=%v)", got, ok)
	}
	years := table.Years()
	if years[len(years)-1] != 2026 {
		t.Errorf("expected inserted year sorted last, got %v", years)
	}

	// Invalid prices never mutate the table.
	table.SetCurrentYear(2026, -5)
	got, _ = table.Price(2026)
	if got != 120000 {
		t.Errorf("non-positive price must be ignored, got %v", got)
	}
}

func TestTable_YearOverYearChange(t *testing.T) {
	table := BuildTable([]model.Sample{
		sampleAt(2019, time.June, 100),
		sampleAt(2020, time.June, 150),
		sampleAt(2021, time.June, 75),
	})
	points := table.Points()
	want := []float64{0, 50, -50}
	for i, p := range points {
		if math.Abs(p.Change-want[i]) > 1e-9 {
			t.Errorf("year %d: expected change %.2f, got %.2f", p.Year, want[i], p.Change)
		}
	}
}

func TestParseSamples_SkipsNullCloses(t *testing.T) {
	data := []byte(`[{"timestamp":[1300147200,1316044800,1331769600],
		"indicators":{"quote":[{"close":[4.10,null,6.27]}]}}]`)
	samples, err := ParseSamples(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples after null skip, got %d", len(samples))
	}
	if samples[0].Price != 4.10 || samples[1].Price != 6.27 {
		t.Errorf("unexpected sample prices: %+v", samples)
	}
}

func TestParseSamples_MismatchedLengths(t *testing.T) {
	data := []byte(`[{"timestamp":[1300147200,1316044800],
		"indicators":{"quote":[{"close":[4.10]}]}}]`)
	if _, err := ParseSamples(data); err == nil {
		t.Error("expected error for mismatched timestamp/close lengths")
	}
}

func TestLoadSamples_EmbeddedDataset(t *testing.T) {
	samples, err := LoadSamples("")
	if err != nil {
		t.Fatalf("embedded dataset must parse: %v", err)
	}
	table := BuildTable(samples)
	if table.Len() < 10 {
		t.Fatalf("expected at least a decade of data, got %d years", table.Len())
	}
	if got, ok := table.Price(2013); !ok || got != 259.99 {
		t.Errorf("expected 2013 mean 259.99 from bundled data, got %v (present=%v)", got, ok)
	}
	if got, ok := table.Price(2021); !ok || got != 47886.69 {
		t.Errorf("expected 2021 mean 47886.69 from bundled data, got %v (present=%v)", got, ok)
	}
}
