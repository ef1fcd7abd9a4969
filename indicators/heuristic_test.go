package indicators

import (
	"testing"

	"github.com/rustyeddy/stockbot/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsFromOpens(opens ...float64) []market.Record {
	out := make([]market.Record, len(opens))
	for i, o := range opens {
		out[i] = market.Record{Day: i + 1, Open: o, Close: o}
	}
	return out
}

func TestHeuristic(t *testing.T) {
	recs := recordsFromOpens(10, 9, 11, 8, 12, 20, 30)

	tests := []struct {
		name string
		n    int
		want float64
	}{
		{"first day is own open", 1, 10},
		{"partial window", 3, 10},
		{"full window", 5, 10},
		{"window slides", 6, 12},
		{"window slides again", 7, (11 + 8 + 12 + 20 + 30) / 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Heuristic(recs[:tt.n], DefaultHeuristicWindow), 1e-9)
		})
	}

	assert.Equal(t, 0.0, Heuristic(nil, 5))
	assert.Equal(t, 0.0, Heuristic(recs, 0))
}

func TestOpenMAStreaming(t *testing.T) {
	recs := recordsFromOpens(10, 9, 11, 8, 12, 20, 30)

	t.Run("matches pure heuristic", func(t *testing.T) {
		ma := NewOpenMA(DefaultHeuristicWindow)
		assert.Equal(t, "SMA(5)", ma.Name())
		assert.Equal(t, 1, ma.Warmup())
		assert.False(t, ma.Ready())
		assert.Equal(t, 0.0, ma.Value())

		for i, r := range recs {
			ma.Update(r)
			require.True(t, ma.Ready())
			assert.InDelta(t, Heuristic(recs[:i+1], DefaultHeuristicWindow), ma.Value(), 1e-9)
			assert.LessOrEqual(t, ma.Len(), DefaultHeuristicWindow)
		}
	})

	t.Run("reset", func(t *testing.T) {
		ma := NewOpenMA(2)
		ma.Update(recs[0])
		ma.Update(recs[1])
		ma.Reset()
		assert.False(t, ma.Ready())
		assert.Equal(t, 0, ma.Len())

		ma.Update(recs[2])
		assert.Equal(t, 11.0, ma.Value())
	})
}
