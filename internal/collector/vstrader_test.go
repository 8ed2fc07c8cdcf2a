package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVsTraderFetcher_FetchDailyBars(t *testing.T) {
	var auth, path, symbol, start string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		symbol = r.URL.Query().Get("symbol")
		start = r.URL.Query().Get("start")
		_, _ = w.Write([]byte(`[
			{"timestamp":1700179200,"open":3,"high":3,"low":3,"close":3.5,"volume":10},
			{"timestamp":1700092800,"open":2,"high":2,"low":2,"close":2.5,"volume":10},
			{"timestamp":1600000000,"open":1,"high":1,"low":1,"close":1.5,"volume":10}
		]`))
	}))
	defer srv.Close()

	f := NewVsTraderFetcher(srv.URL, "secret", "")
	from := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	bars, err := f.FetchDailyBars(context.Background(), "^GDAXI", from)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "/api/v1/bars/daily", path)
	assert.Equal(t, "^GDAXI", symbol)
	assert.Equal(t, "2023-11-01", start)

	require.Len(t, bars, 2, "bars before start are dropped")
	assert.Equal(t, 2.5, bars[0].Close)
	assert.Equal(t, 3.5, bars[1].Close)
}

func TestVsTraderFetcher_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "EMPTY" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewVsTraderFetcher(srv.URL, "", "")
	_, err := f.FetchDailyBars(context.Background(), "EMPTY", time.Now())
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = f.FetchDailyBars(context.Background(), "FAIL", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
