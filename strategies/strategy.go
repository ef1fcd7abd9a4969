// Package strategies turns the daily indicator signals into trade decisions.
//
// Every strategy uses the same sign convention: a positive quantity buys that
// many shares, a negative quantity sells, zero holds.
package strategies

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Strategy names accepted by ByName.
const (
	RsiAndHeuristic     = "rsi-heuristic"
	BuyAndHold          = "buy-and-hold"
	RsiAndMovingAverage = "rsi-ma"
)

// ErrInvalidStrategy is returned for an unknown strategy name.
var ErrInvalidStrategy = errors.New("invalid strategy")

// Signal is everything a strategy may look at for one day.
type Signal struct {
	Day     int // 0-based index into the series
	LastDay int // index of the final day in the series

	Open      float64
	Heuristic float64
	RSI       float64 // 0 until the RSI has warmed up

	NetWorth float64
	Shares   int
}

// Strategy decides the trade for a single day.
type Strategy interface {
	Name() string
	Decide(s Signal) int
}

// Params tunes the built-in strategies. Zero values are replaced by the
// defaults from DefaultParams.
type Params struct {
	RSIPeriod int `json:"rsi_period" yaml:"rsi_period"`

	// HorizonDay is the day buy-and-hold sells out. 0 means the last day.
	HorizonDay int `json:"horizon_day,omitempty" yaml:"horizon_day,omitempty"`
}

// DefaultParams returns the parameters the strategies were tuned with.
func DefaultParams() Params {
	return Params{RSIPeriod: 14}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.RSIPeriod <= 0 {
		p.RSIPeriod = d.RSIPeriod
	}
	return p
}

// Factory builds a strategy from parameters.
type Factory func(p Params) Strategy

var registry = map[string]Factory{
	RsiAndHeuristic:     func(p Params) Strategy { return NewRsiHeuristic(p) },
	BuyAndHold:          func(p Params) Strategy { return NewBuyAndHold(p) },
	RsiAndMovingAverage: func(Params) Strategy { return NewRsiMA() },
}

var aliases = map[string]string{
	"rsiandheuristic":     RsiAndHeuristic,
	"buyandhold":          BuyAndHold,
	"rsiandmovingaverage": RsiAndMovingAverage,
	"rsi-moving-average":  RsiAndMovingAverage,
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds the named strategy.
func ByName(name string, p Params) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	factory, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrInvalidStrategy, name, strings.Join(Names(), ", "))
	}
	return factory(p.withDefaults()), nil
}

// sharesFor is the whole number of shares a fraction of netWorth buys at price,
// truncated toward zero.
func sharesFor(fraction, netWorth, price float64) int {
	if price <= 0 || netWorth <= 0 {
		return 0
	}
	return int(fraction * netWorth / price)
}
