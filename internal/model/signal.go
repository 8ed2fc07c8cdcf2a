package model

// MovingAverageSeries is aligned index-for-index with the PriceSeries it was
// computed from. Values[i] is only meaningful when Defined[i] is true.
type MovingAverageSeries struct {
	Window  int
	Values  []float64
	Defined []bool
}

func (m MovingAverageSeries) Len() int { return len(m.Values) }

// At returns the value at index i and whether it is defined.
func (m MovingAverageSeries) At(i int) (float64, bool) {
	if i < 0 || i >= len(m.Values) || !m.Defined[i] {
		return 0, false
	}
	return m.Values[i], true
}

// Last returns the final entry of the series and whether it is defined.
func (m MovingAverageSeries) Last() (float64, bool) {
	return m.At(len(m.Values) - 1)
}

// TrendSignal is the categorical result of comparing a fast and a slow MA.
type TrendSignal int

const (
	TrendUnknown TrendSignal = iota // flat, or not enough history
	TrendUp
	TrendDown
)

func (t TrendSignal) String() string {
	switch t {
	case TrendUp:
		return "Trend Up"
	case TrendDown:
		return "Trend Down"
	default:
		return "Flat/Unknown"
	}
}

// Annotated reports whether the signal gets a label on the chart.
func (t TrendSignal) Annotated() bool {
	return t == TrendUp || t == TrendDown
}
