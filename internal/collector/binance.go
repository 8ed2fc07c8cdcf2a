package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"MarketGrid/internal/model"
)

const binanceKlineLimit = 1000

// BinanceFetcher implements Fetcher using Binance spot daily klines.
type BinanceFetcher struct {
	Client    *binance.Client
	SymbolMap map[string]string // maps internal symbol to Binance pair
}

// NewBinanceFetcher creates a fetcher; keys may be empty since klines are public.
func NewBinanceFetcher(apiKey, secretKey string, symbolMap map[string]string) *BinanceFetcher {
	if symbolMap == nil {
		symbolMap = map[string]string{}
	}
	return &BinanceFetcher{
		Client:    binance.NewClient(apiKey, secretKey),
		SymbolMap: symbolMap,
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) pair(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// FetchDailyBars pages through klines from start until Binance returns a short page.
func (f *BinanceFetcher) FetchDailyBars(ctx context.Context, symbol string, start time.Time) ([]model.OHLCV, error) {
	pair := f.pair(symbol)
	var bars []model.OHLCV
	from := start.UnixMilli()

	for {
		klines, err := f.Client.NewKlinesService().
			Symbol(pair).
			Interval("1d").
			StartTime(from).
			Limit(binanceKlineLimit).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("binance klines %s: %w", pair, err)
		}
		for _, k := range klines {
			bar, err := translateKline(k)
			if err != nil {
				return nil, fmt.Errorf("binance kline %s: %w", pair, err)
			}
			bars = append(bars, bar)
		}
		if len(klines) < binanceKlineLimit {
			break
		}
		from = klines[len(klines)-1].CloseTime + 1
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("binance %s: %w", pair, ErrEmptySeries)
	}
	return bars, nil
}

func translateKline(k *binance.Kline) (model.OHLCV, error) {
	fields := []string{k.Open, k.High, k.Low, k.Close, k.Volume}
	vals := make([]float64, len(fields))
	for i, s := range fields {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return model.OHLCV{}, fmt.Errorf("parse %q: %w", s, err)
		}
		vals[i] = d.InexactFloat64()
	}
	return model.OHLCV{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
