package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"SatoshiSim/internal/model"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoFetcher implements Fetcher using the CoinGecko simple price API.
type CoinGeckoFetcher struct {
	Client  *http.Client
	BaseURL string
	AssetID string
}

// NewCoinGeckoFetcher creates a CoinGecko fetcher. baseURL may be empty for
// the public endpoint; proxyURL may be empty for a direct connection.
func NewCoinGeckoFetcher(baseURL, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &CoinGeckoFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: baseURL,
		AssetID: "bitcoin",
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// simplePrice is the response shape: an object keyed by asset id.
type simplePrice map[string]struct {
	USD       *float64 `json:"usd"`
	Change24h float64  `json:"usd_24h_change"`
}

// FetchQuote retrieves the current price. Any HTTP error, malformed payload,
// or non-positive price is returned as an error; callers keep their previous
// value in that case.
func (f *CoinGeckoFetcher) FetchQuote(ctx context.Context) (model.Quote, error) {
	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		f.BaseURL, url.QueryEscape(f.AssetID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.Quote{}, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Quote{}, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.Quote{}, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload simplePrice
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.Quote{}, fmt.Errorf("coingecko decode: %w", err)
	}

	asset, ok := payload[f.AssetID]
	if !ok {
		return model.Quote{}, fmt.Errorf("coingecko: asset %q missing from payload", f.AssetID)
	}
	if asset.USD == nil || *asset.USD <= 0 {
		return model.Quote{}, fmt.Errorf("coingecko: missing or non-positive price for %q", f.AssetID)
	}

	return model.Quote{
		USD:       *asset.USD,
		Change24h: asset.Change24h,
		FetchedAt: time.Now(),
	}, nil
}
