package collector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"MarketGrid/internal/model"
)

// RoutingFetcher sends each symbol to a dedicated fetcher when one is
// registered for it and to Default otherwise.
type RoutingFetcher struct {
	Default Fetcher
	Routes  map[string]Fetcher
}

// NewRoutingFetcher creates a router with no routes.
func NewRoutingFetcher(def Fetcher) *RoutingFetcher {
	return &RoutingFetcher{Default: def, Routes: map[string]Fetcher{}}
}

// Route registers f for the given symbols.
func (r *RoutingFetcher) Route(f Fetcher, symbols ...string) {
	for _, s := range symbols {
		r.Routes[s] = f
	}
}

func (r *RoutingFetcher) fetcherFor(symbol string) Fetcher {
	if f, ok := r.Routes[symbol]; ok {
		return f
	}
	return r.Default
}

func (r *RoutingFetcher) FetchDailyBars(ctx context.Context, symbol string, start time.Time) ([]model.OHLCV, error) {
	f := r.fetcherFor(symbol)
	if f == nil {
		return nil, fmt.Errorf("no fetcher for symbol %s", symbol)
	}
	return f.FetchDailyBars(ctx, symbol, start)
}

// Name lists the default fetcher followed by each routed one, e.g. "yahoo+binance".
func (r *RoutingFetcher) Name() string {
	seen := map[string]bool{}
	var names []string
	if r.Default != nil {
		names = append(names, r.Default.Name())
		seen[r.Default.Name()] = true
	}
	var routed []string
	for _, f := range r.Routes {
		if !seen[f.Name()] {
			seen[f.Name()] = true
			routed = append(routed, f.Name())
		}
	}
	sort.Strings(routed)
	return strings.Join(append(names, routed...), "+")
}
