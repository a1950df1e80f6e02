package recorder

import "SatoshiSim/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuote(_ model.Quote) error         { return nil }
func (n *NoopRecorder) RecordValuation(_ model.Valuation) error { return nil }
func (n *NoopRecorder) RecordOrder(_ model.Order) error         { return nil }
func (n *NoopRecorder) Close() error                            { return nil }
