package calculator

import "MarketGrid/internal/model"

// TrendSignal compares the latest fast and slow MA values.
// An undefined value on either side compares as neither greater nor less.
func TrendSignal(fast, slow model.MovingAverageSeries) model.TrendSignal {
	f, okFast := fast.Last()
	s, okSlow := slow.Last()
	if !okFast || !okSlow {
		return model.TrendUnknown
	}
	switch {
	case f > s:
		return model.TrendUp
	case f < s:
		return model.TrendDown
	default:
		return model.TrendUnknown
	}
}

// Analyze derives both moving averages and the trend signal for one series.
func Analyze(series model.PriceSeries, fastWindow, slowWindow int) (*model.SymbolReport, error) {
	last, ok := series.Last()
	if !ok {
		return nil, ErrNoData
	}
	closes := series.Closes()

	fast, err := MovingAverage(closes, fastWindow)
	if err != nil {
		return nil, err
	}
	slow, err := MovingAverage(closes, slowWindow)
	if err != nil {
		return nil, err
	}

	_, fastOK := fast.Last()
	_, slowOK := slow.Last()

	return &model.SymbolReport{
		Symbol:       series.Symbol,
		Series:       series,
		FastMA:       fast,
		SlowMA:       slow,
		Signal:       TrendSignal(fast, slow),
		LastClose:    last.Close,
		LastDate:     last.Time,
		Insufficient: !fastOK || !slowOK,
	}, nil
}
