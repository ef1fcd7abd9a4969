package strategies

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"rsi-heuristic", RsiAndHeuristic},
		{"RsiAndHeuristic", RsiAndHeuristic},
		{" buy-and-hold ", BuyAndHold},
		{"BuyAndHold", BuyAndHold},
		{"rsi-ma", RsiAndMovingAverage},
		{"RsiAndMovingAverage", RsiAndMovingAverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ByName(tt.name, Params{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name())
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	s, err := ByName("martingale", Params{})
	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStrategy))
	assert.Contains(t, err.Error(), "martingale")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{BuyAndHold, RsiAndHeuristic, RsiAndMovingAverage}, Names())
}

func TestSharesForTruncates(t *testing.T) {
	assert.Equal(t, 3, sharesFor(0.3, 1000, 99))
	assert.Equal(t, 0, sharesFor(0.01, 1000, 11))
	assert.Equal(t, 100, sharesFor(1, 1000, 10))
	assert.Equal(t, 0, sharesFor(1, 1000, 0))
	assert.Equal(t, 0, sharesFor(1, 0, 10))
}

func TestRsiHeuristic(t *testing.T) {
	s := NewRsiHeuristic(Params{})

	tests := []struct {
		name string
		sig  Signal
		want int
	}{
		{"day 0 buys half", Signal{Day: 0, Open: 10, Heuristic: 10, NetWorth: 1000}, 50},
		{"warmup buy below heuristic", Signal{Day: 3, Open: 10, Heuristic: 11, NetWorth: 1000}, 30},
		{"warmup sell above heuristic", Signal{Day: 13, Open: 10, Heuristic: 9, NetWorth: 1000}, -30},
		{"warmup hold at heuristic", Signal{Day: 5, Open: 10, Heuristic: 10, NetWorth: 1000}, 0},
		{"warm buy needs oversold", Signal{Day: 14, Open: 10, Heuristic: 11, RSI: 29, NetWorth: 1000}, 30},
		{"warm no buy when not oversold", Signal{Day: 14, Open: 10, Heuristic: 11, RSI: 30, NetWorth: 1000}, 0},
		{"warm sell above 50", Signal{Day: 20, Open: 10, Heuristic: 9, RSI: 51, NetWorth: 1000}, -30},
		{"warm no sell at 50", Signal{Day: 20, Open: 10, Heuristic: 9, RSI: 50, NetWorth: 1000}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Decide(tt.sig))
		})
	}
}

func TestBuyAndHold(t *testing.T) {
	t.Run("last day horizon", func(t *testing.T) {
		s := NewBuyAndHold(Params{})
		assert.Equal(t, 100, s.Decide(Signal{Day: 0, LastDay: 4, Open: 10, NetWorth: 1000}))
		assert.Equal(t, 0, s.Decide(Signal{Day: 2, LastDay: 4, Open: 11, Shares: 100}))
		assert.Equal(t, -100, s.Decide(Signal{Day: 4, LastDay: 4, Open: 12, Shares: 100}))
	})

	t.Run("fixed horizon", func(t *testing.T) {
		s := NewBuyAndHold(Params{HorizonDay: 250})
		assert.Equal(t, 0, s.Decide(Signal{Day: 4, LastDay: 4, Open: 12, Shares: 100}))
		assert.Equal(t, -100, s.Decide(Signal{Day: 250, LastDay: 400, Open: 12, Shares: 100}))
	})

	t.Run("single day buys", func(t *testing.T) {
		s := NewBuyAndHold(Params{})
		assert.Equal(t, 100, s.Decide(Signal{Day: 0, LastDay: 0, Open: 10, NetWorth: 1000}))
	})
}

func TestRsiMA(t *testing.T) {
	s := NewRsiMA()

	// thresholds are fixed and do not depend on the run parameters
	byName, err := ByName(RsiAndMovingAverage, Params{RSIPeriod: 7, HorizonDay: 3})
	require.NoError(t, err)
	assert.Equal(t, s, byName)

	tests := []struct {
		name string
		sig  Signal
		want int
	}{
		{"buy oversold below average", Signal{Day: 20, Open: 10, Heuristic: 11, RSI: 20, NetWorth: 10000}, 10},
		{"sell overbought above average", Signal{Day: 20, Open: 10, Heuristic: 9, RSI: 71, NetWorth: 10000}, -10},
		{"hold at 70", Signal{Day: 20, Open: 10, Heuristic: 9, RSI: 70, NetWorth: 10000}, 0},
		{"sentinel rsi during warmup buys", Signal{Day: 2, Open: 10, Heuristic: 11, RSI: 0, NetWorth: 10000}, 10},
		{"too little cash", Signal{Day: 20, Open: 10, Heuristic: 11, RSI: 20, NetWorth: 500}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Decide(tt.sig))
		})
	}
}
