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

const yahooBody = `{"chart":{"result":[{
  "timestamp":[1700092800,1700006400,1700179200,1700265600],
  "indicators":{"quote":[{
    "open":[101.0,100.0,null,103.0],
    "high":[102.5,101.0,null,104.0],
    "low":[100.5,99.0,null,102.0],
    "close":[102.0,100.5,null,103.5],
    "volume":[1200,1100,null,1300]
  }]}
}],"error":null}}`

func newYahooTestServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var got http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = *r
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestYahooFetcher_FetchDailyBars(t *testing.T) {
	srv, req := newYahooTestServer(t, http.StatusOK, yahooBody)
	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	start := time.Unix(1699920000, 0)
	bars, err := f.FetchDailyBars(context.Background(), "SPX", start)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^GSPC", req.URL.Path)
	assert.Equal(t, "1d", req.URL.Query().Get("interval"))
	assert.Equal(t, "1699920000", req.URL.Query().Get("period1"))
	assert.NotEmpty(t, req.URL.Query().Get("period2"))
	assert.Equal(t, "Mozilla/5.0", req.Header.Get("User-Agent"))

	require.Len(t, bars, 3, "null close is skipped")
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 102.0, bars[1].Close)
	assert.Equal(t, 103.5, bars[2].Close)
	assert.Equal(t, 1300.0, bars[2].Volume)
	assert.True(t, bars[0].Time.Before(bars[1].Time))
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantEmpty bool
	}{
		{name: "http status", status: http.StatusNotFound, body: `not found`},
		{name: "api error", status: http.StatusOK, body: `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{name: "bad json", status: http.StatusOK, body: `{`},
		{name: "no result", status: http.StatusOK, body: `{"chart":{"result":[],"error":null}}`, wantEmpty: true},
		{name: "only nulls", status: http.StatusOK, body: `{"chart":{"result":[{"timestamp":[1700000000],"indicators":{"quote":[{"close":[null]}]}}],"error":null}}`, wantEmpty: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newYahooTestServer(t, tt.status, tt.body)
			f := NewYahooFetcher("")
			f.BaseURL = srv.URL

			_, err := f.FetchDailyBars(context.Background(), "^HSI", time.Now().AddDate(-1, 0, 0))
			require.Error(t, err)
			if tt.wantEmpty {
				assert.ErrorIs(t, err, ErrEmptySeries)
			} else {
				assert.NotErrorIs(t, err, ErrEmptySeries)
			}
		})
	}
}

func TestYahooFetcher_ContextCanceled(t *testing.T) {
	srv, _ := newYahooTestServer(t, http.StatusOK, yahooBody)
	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.FetchDailyBars(ctx, "^GSPC", time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}
