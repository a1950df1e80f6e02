package history

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"SatoshiSim/internal/model"
)

//go:embed chart.json
var defaultChart []byte

// chartSeries is the bundled dataset shape: parallel timestamp/close arrays,
// with closes possibly null for missing periods.
type chartSeries []struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// ParseSamples decodes a chart dataset into raw samples, skipping null closes.
func ParseSamples(data []byte) ([]model.Sample, error) {
	var series chartSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("parse chart data: %w", err)
	}
	if len(series) == 0 || len(series[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart data: no series present")
	}

	timestamps := series[0].Timestamp
	closes := series[0].Indicators.Quote[0].Close
	if len(closes) != len(timestamps) {
		return nil, fmt.Errorf("chart data: %d timestamps but %d closes", len(timestamps), len(closes))
	}

	samples := make([]model.Sample, 0, len(timestamps))
	for i, ts := range timestamps {
		if closes[i] == nil {
			continue
		}
		samples = append(samples, model.Sample{
			Time:  time.Unix(ts, 0).UTC(),
			Price: *closes[i],
		})
	}
	return samples, nil
}

// LoadSamples reads samples from path, or from the embedded dataset when path
// is empty.
func LoadSamples(path string) ([]model.Sample, error) {
	if path == "" {
		return ParseSamples(defaultChart)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart data: %w", err)
	}
	return ParseSamples(data)
}
