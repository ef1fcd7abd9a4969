package strategies

// BuyAndHoldStrategy spends all cash on day 0 and sells everything on the
// horizon day.
type BuyAndHoldStrategy struct {
	// HorizonDay overrides the sell day. 0 sells on the last day of the series.
	HorizonDay int
}

// NewBuyAndHold returns a buy-and-hold strategy.
func NewBuyAndHold(p Params) *BuyAndHoldStrategy {
	return &BuyAndHoldStrategy{HorizonDay: p.HorizonDay}
}

func (s *BuyAndHoldStrategy) Name() string {
	return BuyAndHold
}

func (s *BuyAndHoldStrategy) horizon(sig Signal) int {
	if s.HorizonDay > 0 {
		return s.HorizonDay
	}
	return sig.LastDay
}

func (s *BuyAndHoldStrategy) Decide(sig Signal) int {
	switch {
	case sig.Day == 0:
		return sharesFor(1, sig.NetWorth, sig.Open)
	case sig.Day == s.horizon(sig):
		return -sig.Shares
	default:
		return 0
	}
}
