package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"MarketGrid/internal/model"
)

// ErrEmptySeries is returned when a provider has no bars for the symbol and range.
var ErrEmptySeries = errors.New("empty price series")

// Fetcher defines the interface for fetching daily market data.
type Fetcher interface {
	// FetchDailyBars returns daily bars from start until now, oldest first.
	FetchDailyBars(ctx context.Context, symbol string, start time.Time) ([]model.OHLCV, error)
	Name() string
}

// newHTTPClient builds a client with an optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
