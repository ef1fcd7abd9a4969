package strategies

// RsiHeuristic trades 30% of net worth against the heuristic, confirmed by
// the RSI once it has warmed up. Day 0 opens a position with half the cash.
type RsiHeuristic struct {
	Warmup     int     // days before the RSI is trusted
	FirstBuy   float64 // fraction of net worth bought on day 0
	Fraction   float64 // fraction of net worth traded on a signal
	Oversold   float64 // buy below this RSI
	Overbought float64 // sell above this RSI
}

// NewRsiHeuristic returns the strategy with its standard thresholds.
func NewRsiHeuristic(p Params) *RsiHeuristic {
	p = p.withDefaults()
	return &RsiHeuristic{
		Warmup:     p.RSIPeriod,
		FirstBuy:   0.5,
		Fraction:   0.3,
		Oversold:   30,
		Overbought: 50,
	}
}

func (s *RsiHeuristic) Name() string {
	return RsiAndHeuristic
}

func (s *RsiHeuristic) Decide(sig Signal) int {
	if sig.Day == 0 {
		return sharesFor(s.FirstBuy, sig.NetWorth, sig.Open)
	}

	below := sig.Open < sig.Heuristic
	above := sig.Open > sig.Heuristic
	if sig.Day >= s.Warmup {
		below = below && sig.RSI < s.Oversold
		above = above && sig.RSI > s.Overbought
	}

	switch {
	case below:
		return sharesFor(s.Fraction, sig.NetWorth, sig.Open)
	case above:
		return -sharesFor(s.Fraction, sig.NetWorth, sig.Open)
	default:
		return 0
	}
}
