package history

import (
	"math"
	"sort"

	"SatoshiSim/internal/model"
)

// Table maps calendar years to a representative price. It is built once from
// raw samples; the only later mutation is SetCurrentYear after a successful
// live fetch.
type Table struct {
	points []model.PricePoint // sorted ascending by year
}

// BuildTable groups samples by calendar year (UTC) and keeps the arithmetic
// mean of each year's prices, rounded to two decimals. Samples with a
// non-positive price are skipped, matching how null bars are dropped on fetch.
func BuildTable(samples []model.Sample) *Table {
	byYear := make(map[int][]float64)
	for _, s := range samples {
		if s.Price <= 0 {
			continue
		}
		y := s.Time.UTC().Year()
		byYear[y] = append(byYear[y], s.Price)
	}

	points := make([]model.PricePoint, 0, len(byYear))
	for year, prices := range byYear {
		sum := 0.0
		for _, p := range prices {
			sum += p
		}
		points = append(points, model.PricePoint{
			Year:  year,
			Price: round2(sum / float64(len(prices))),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	t := &Table{points: points}
	t.recalcChanges()
	return t
}

// Price returns the recorded price for a year and whether the year is present.
func (t *Table) Price(year int) (float64, bool) {
	i := t.indexOf(year)
	if i < 0 {
		return 0, false
	}
	return t.points[i].Price, true
}

// SetCurrentYear overwrites the entry for the given year with a freshly
// fetched price, inserting it if the year is not yet in the table. This is
// the only mutation allowed after construction.
func (t *Table) SetCurrentYear(year int, price float64) {
	if price <= 0 {
		return
	}
	price = round2(price)
	if i := t.indexOf(year); i >= 0 {
		t.points[i].Price = price
	} else {
		t.points = append(t.points, model.PricePoint{Year: year, Price: price})
		sort.Slice(t.points, func(i, j int) bool { return t.points[i].Year < t.points[j].Year })
	}
	t.recalcChanges()
}

// EarliestYear returns the first year in the table, or the given fallback if
// the table is empty.
func (t *Table) EarliestYear(fallback int) int {
	if len(t.points) == 0 {
		return fallback
	}
	return t.points[0].Year
}

// Years lists all years present, ascending.
func (t *Table) Years() []int {
	years := make([]int, len(t.points))
	for i, p := range t.points {
		years[i] = p.Year
	}
	return years
}

// Points returns a copy of the table rows, ascending by year, with
// year-over-year change percentages filled in.
func (t *Table) Points() []model.PricePoint {
	out := make([]model.PricePoint, len(t.points))
	copy(out, t.points)
	return out
}

func (t *Table) Len() int { return len(t.points) }

func (t *Table) indexOf(year int) int {
	i := sort.Search(len(t.points), func(i int) bool { return t.points[i].Year >= year })
	if i < len(t.points) && t.points[i].Year == year {
		return i
	}
	return -1
}

func (t *Table) recalcChanges() {
	for i := range t.points {
		if i == 0 {
			t.points[i].Change = 0
			continue
		}
		prev := t.points[i-1].Price
		if prev <= 0 {
			t.points[i].Change = 0
			continue
		}
		t.points[i].Change = round2((t.points[i].Price - prev) / prev * 100)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
