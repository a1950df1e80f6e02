package model

import "time"

// Quote is a single observed present-day price of the asset.
type Quote struct {
	USD       float64   `json:"usd"`
	Change24h float64   `json:"usd_24h_change"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Valid reports whether the quote can be accepted as a price update.
// Non-positive amounts are never accepted.
func (q Quote) Valid() bool {
	return q.USD > 0
}

// Sample is one raw (timestamp, price) point from the bundled time series.
type Sample struct {
	Time  time.Time
	Price float64
}

// PricePoint is one row of the yearly price table.
type PricePoint struct {
	Year   int     `json:"year"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"` // percent vs previous year, 0 for the first row
}
