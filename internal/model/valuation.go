package model

// Valuation is the outcome of evaluating the what-if scenario for one year:
// a fixed fiat amount converted at the year's historical price, marked to the
// live price.
type Valuation struct {
	Year            int
	HistoricalPrice float64
	BTCAmount       float64 // units acquired with the converted fiat amount
	CurrentValue    float64 // BTCAmount at the live price
	Delta           float64 // CurrentValue minus the converted fiat amount
}
