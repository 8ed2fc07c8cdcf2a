package calculator

import (
	"errors"

	"MarketGrid/internal/model"
)

var (
	ErrInvalidWindow = errors.New("window must be positive")
	ErrNoData        = errors.New("no price data")
)

// MovingAverage computes a rolling simple moving average aligned with closes.
// Entries before the first full window are left undefined; a window longer
// than the input yields a series with no defined entries.
func MovingAverage(closes []float64, window int) (model.MovingAverageSeries, error) {
	if window <= 0 {
		return model.MovingAverageSeries{}, ErrInvalidWindow
	}
	ma := model.MovingAverageSeries{
		Window:  window,
		Values:  make([]float64, len(closes)),
		Defined: make([]bool, len(closes)),
	}
	if window > len(closes) {
		return ma, nil
	}

	sum := windowSum(closes, 0, window-1)
	for i := window - 1; i < len(closes); i++ {
		sum += closes[i]
		if i >= window {
			sum -= closes[i-window]
		}
		ma.Values[i] = sum / float64(window)
		ma.Defined[i] = true
	}
	return ma, nil
}

func windowSum(prices []float64, from, to int) float64 {
	sum := 0.0
	for i := from; i < to; i++ {
		sum += prices[i]
	}
	return sum
}
