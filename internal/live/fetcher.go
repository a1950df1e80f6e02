package live

import (
	"context"
	"time"

	"SatoshiSim/internal/model"
)

// Fetcher defines the interface for retrieving the present-day price.
type Fetcher interface {
	FetchQuote(ctx context.Context) (model.Quote, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	USD       float64
	Change24h float64
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(_ context.Context) (model.Quote, error) {
	if m.Err != nil {
		return model.Quote{}, m.Err
	}
	return model.Quote{
		USD:       m.USD,
		Change24h: m.Change24h,
		FetchedAt: time.Now(),
	}, nil
}
