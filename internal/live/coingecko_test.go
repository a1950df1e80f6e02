package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestFetcher(handler http.HandlerFunc) (*CoinGeckoFetcher, func()) {
	srv := httptest.NewServer(handler)
	f := NewCoinGeckoFetcher(srv.URL, "")
	return f, srv.Close
}

func TestFetchQuote_Success(t *testing.T) {
	f, closeFn := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin":{"usd":100000,"usd_24h_change":2.5}}`))
	})
	defer closeFn()

	q, err := f.FetchQuote(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.USD != 100000 {
		t.Errorf("expected usd 100000, got %v", q.USD)
	}
	if q.Change24h != 2.5 {
		t.Errorf("expected 24h change 2.5, got %v", q.Change24h)
	}
	if q.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

func TestFetchQuote_NonPositivePrice(t *testing.T) {
	f, closeFn := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin":{"usd":-5,"usd_24h_change":0}}`))
	})
	defer closeFn()

	if _, err := f.FetchQuote(context.Background()); err == nil {
		t.Error("expected error for non-positive price")
	}
}

func TestFetchQuote_MissingPriceField(t *testing.T) {
	f, closeFn := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin":{"usd_24h_change":1.0}}`))
	})
	defer closeFn()

	if _, err := f.FetchQuote(context.Background()); err == nil {
		t.Error("expected error for missing usd field")
	}
}

func TestFetchQuote_MissingAsset(t *testing.T) {
	f, closeFn := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ethereum":{"usd":3000,"usd_24h_change":1.0}}`))
	})
	defer closeFn()

	if _, err := f.FetchQuote(context.Background()); err == nil {
		t.Error("expected error when asset id is absent from payload")
	}
}

func TestFetchQuote_HTTPError(t *testing.T) {
	f, closeFn := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer closeFn()

	if _, err := f.FetchQuote(context.Background()); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestFetchQuote_MalformedPayload(t *testing.T) {
	f, closeFn := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer closeFn()

	if _, err := f.FetchQuote(context.Background()); err == nil {
		t.Error("expected error for malformed payload")
	}
}
