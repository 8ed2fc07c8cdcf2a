package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketGrid/internal/model"
)

func linearBars(n int, base, step float64) []model.OHLCV {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := base + step*float64(i)
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c}
	}
	return bars
}

func testSettings(symbols ...string) Settings {
	return Settings{Symbols: symbols, FastWindow: 20, SlowWindow: 50, LookbackMonths: 36}
}

func TestSettings_StartDate(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	got := testSettings().StartDate(now)
	assert.Equal(t, now.AddDate(0, 0, -1080), got)
	assert.Equal(t, time.Date(2023, 11, 2, 12, 0, 0, 0, time.UTC), got)
}

func TestCollect_AllSymbols(t *testing.T) {
	f := &MockFetcher{DailyData: map[string][]model.OHLCV{
		"^GSPC":   linearBars(120, 4000, 5),
		"BTC-USD": linearBars(120, 60000, -50),
		"^GDAXI":  linearBars(120, 15000, 0),
		"^HSI":    linearBars(10, 18000, 10),
	}}
	c := NewCollector(f, testSettings("^GSPC", "BTC-USD", "^GDAXI", "^HSI"))

	reports, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 4)

	assert.Equal(t, "^GSPC", reports[0].Symbol)
	assert.Equal(t, model.TrendUp, reports[0].Signal)
	assert.InDelta(t, 4595.0, reports[0].LastClose, 1e-9)

	assert.Equal(t, "BTC-USD", reports[1].Symbol)
	assert.Equal(t, model.TrendDown, reports[1].Signal)

	assert.Equal(t, model.TrendUnknown, reports[2].Signal, "flat prices give equal MAs")
	assert.False(t, reports[2].Insufficient)

	assert.Equal(t, model.TrendUnknown, reports[3].Signal)
	assert.True(t, reports[3].Insufficient)
}

func TestCollect_FetchErrorAborts(t *testing.T) {
	boom := errors.New("connection reset")
	c := NewCollector(&MockFetcher{Err: boom}, testSettings("^GSPC", "^HSI"))

	reports, err := c.Collect(context.Background())
	assert.Nil(t, reports)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "^GSPC")
}

func TestCollect_EmptySeriesAborts(t *testing.T) {
	f := &MockFetcher{DailyData: map[string][]model.OHLCV{"^GSPC": linearBars(60, 1, 1)}}
	c := NewCollector(f, testSettings("^GSPC", "MISSING"))

	_, err := c.Collect(context.Background())
	assert.ErrorIs(t, err, ErrEmptySeries)
	assert.Contains(t, err.Error(), "MISSING")
}

func TestCollect_PassesStartDate(t *testing.T) {
	rec := &recordingFetcher{bars: linearBars(5, 1, 1)}
	c := NewCollector(rec, testSettings("A"))
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	c.Now = func() time.Time { return now }

	reports, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, now.AddDate(0, 0, -1080), rec.start)
	assert.Equal(t, now, reports[0].Series.FetchedAt)
}

func TestMockFetcher_Generated(t *testing.T) {
	f := &MockFetcher{Price: 100}
	bars, err := f.FetchDailyBars(context.Background(), "X", time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.NotEmpty(t, bars)
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i-1].Time.Before(bars[i].Time))
	}
}

type recordingFetcher struct {
	bars  []model.OHLCV
	start time.Time
	calls []string
}

func (r *recordingFetcher) Name() string { return "recording" }

func (r *recordingFetcher) FetchDailyBars(_ context.Context, symbol string, start time.Time) ([]model.OHLCV, error) {
	r.start = start
	r.calls = append(r.calls, symbol)
	return r.bars, nil
}
