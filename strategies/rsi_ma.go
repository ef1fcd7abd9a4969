package strategies

// RsiMA trades 1% of net worth when price and RSI agree, every day with no
// warm-up special case.
type RsiMA struct {
	Fraction   float64
	Oversold   float64
	Overbought float64
}

// NewRsiMA returns the strategy with its standard thresholds.
func NewRsiMA() *RsiMA {
	return &RsiMA{
		Fraction:   0.01,
		Oversold:   30,
		Overbought: 70,
	}
}

func (s *RsiMA) Name() string {
	return RsiAndMovingAverage
}

func (s *RsiMA) Decide(sig Signal) int {
	switch {
	case sig.Open < sig.Heuristic && sig.RSI < s.Oversold:
		return sharesFor(s.Fraction, sig.NetWorth, sig.Open)
	case sig.Open > sig.Heuristic && sig.RSI > s.Overbought:
		return -sharesFor(s.Fraction, sig.NetWorth, sig.Open)
	default:
		return 0
	}
}
