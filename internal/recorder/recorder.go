package recorder

import "SatoshiSim/internal/model"

// Recorder persists historical data for later poking around. Every write is
// best-effort; the simulator never depends on recorded history.
type Recorder interface {
	RecordQuote(q model.Quote) error
	RecordValuation(v model.Valuation) error
	RecordOrder(o model.Order) error
	Close() error
}
