package model

import "time"

// SymbolReport carries everything the presentation layer needs for one symbol.
type SymbolReport struct {
	Symbol    string
	Series    PriceSeries
	FastMA    MovingAverageSeries
	SlowMA    MovingAverageSeries
	Signal    TrendSignal
	LastClose float64
	LastDate  time.Time

	// Insufficient is set when either MA has no value at the last bar.
	Insufficient bool
}
