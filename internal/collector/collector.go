package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"MarketGrid/internal/calculator"
	"MarketGrid/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData map[string][]model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, start time.Time) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		bars, ok := m.DailyData[symbol]
		if !ok || len(bars) == 0 {
			return nil, fmt.Errorf("mock %s: %w", symbol, ErrEmptySeries)
		}
		return bars, nil
	}
	days := int(time.Since(start).Hours() / 24)
	return generateMockBars(m.Price, days), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Settings are the analysis parameters for one collection run.
type Settings struct {
	Symbols        []string
	FastWindow     int
	SlowWindow     int
	LookbackMonths int
}

// StartDate returns the first day to fetch: now minus LookbackMonths*30 days.
func (s Settings) StartDate(now time.Time) time.Time {
	return now.AddDate(0, 0, -s.LookbackMonths*30)
}

// Collector orchestrates data fetching and trend computation.
type Collector struct {
	Fetcher  Fetcher
	Settings Settings
	Now      func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, settings Settings) *Collector {
	return &Collector{Fetcher: fetcher, Settings: settings, Now: time.Now}
}

// Collect fetches each symbol in order and analyzes it. The first fetch error
// aborts the whole run.
func (c *Collector) Collect(ctx context.Context) ([]*model.SymbolReport, error) {
	now := c.Now()
	start := c.Settings.StartDate(now)
	reports := make([]*model.SymbolReport, 0, len(c.Settings.Symbols))

	for _, symbol := range c.Settings.Symbols {
		bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, start)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", symbol, err)
		}
		if len(bars) == 0 {
			return nil, fmt.Errorf("fetch %s: %w", symbol, ErrEmptySeries)
		}
		series := model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: now}

		rep, err := calculator.Analyze(series, c.Settings.FastWindow, c.Settings.SlowWindow)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", symbol, err)
		}
		if rep.Insufficient {
			log.Printf("[WARN] %s: %d bars, not enough history for %d/%d-day SMA; trend is %s",
				symbol, series.Len(), c.Settings.FastWindow, c.Settings.SlowWindow, rep.Signal)
		}
		log.Printf("[INFO] %s: %d bars via %s, last close %.2f, %s",
			symbol, series.Len(), c.Fetcher.Name(), rep.LastClose, rep.Signal)
		reports = append(reports, rep)
	}
	return reports, nil
}
