package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingFetcher(t *testing.T) {
	def := &recordingFetcher{bars: linearBars(3, 1, 1)}
	crypto := &namedFetcher{recordingFetcher{bars: linearBars(3, 1, 1)}, "binance"}

	r := NewRoutingFetcher(def)
	r.Route(crypto, "BTC-USD", "ETH-USD")

	ctx := context.Background()
	for _, s := range []string{"^GSPC", "BTC-USD", "^HSI", "ETH-USD"} {
		_, err := r.FetchDailyBars(ctx, s, time.Now())
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"^GSPC", "^HSI"}, def.calls)
	assert.Equal(t, []string{"BTC-USD", "ETH-USD"}, crypto.calls)
	assert.Equal(t, "recording+binance", r.Name())
}

func TestRoutingFetcher_NoDefault(t *testing.T) {
	r := NewRoutingFetcher(nil)
	_, err := r.FetchDailyBars(context.Background(), "X", time.Now())
	assert.Error(t, err)
}

type namedFetcher struct {
	recordingFetcher
	name string
}

func (n *namedFetcher) Name() string { return n.name }
