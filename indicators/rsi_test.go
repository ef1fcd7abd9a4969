package indicators

import (
	"math"
	"testing"

	"github.com/rustyeddy/stockbot/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsFromCloses(closes ...float64) []market.Record {
	out := make([]market.Record, len(closes))
	for i, c := range closes {
		out[i] = market.Record{Day: i + 1, Open: c, Close: c}
	}
	return out
}

func TestRSIWarmup(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i%3) - float64(i%2)
	}
	recs := recordsFromCloses(closes...)

	for day := 0; day < DefaultRSIPeriod; day++ {
		assert.Equal(t, 0.0, RSI(recs[:day+1], DefaultRSIPeriod), "day %d", day)
	}

	series := RSISeries(recs, DefaultRSIPeriod)
	require.Len(t, series, len(recs))
	for day := 0; day < DefaultRSIPeriod; day++ {
		assert.Equal(t, 0.0, series[day])
	}
	assert.NotEqual(t, 0.0, series[DefaultRSIPeriod])
}

func TestRSIKnownValue(t *testing.T) {
	// 14 deltas: seven +2 moves each followed by a -1 move
	closes := []float64{100}
	for i := 0; i < 7; i++ {
		last := closes[len(closes)-1]
		closes = append(closes, last+2, last+1)
	}
	recs := recordsFromCloses(closes...)
	require.Len(t, recs, 15)

	// avgUp = 14/14 = 1, avgDown = 7/14 = 0.5, rs = 2
	want := 100 - 100/3.0
	assert.InDelta(t, want, RSI(recs, 14), 1e-9)
}

func TestRSIAllGainsIs100(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(10 + i)
	}
	recs := recordsFromCloses(closes...)

	series := RSISeries(recs, DefaultRSIPeriod)
	for day := DefaultRSIPeriod; day < len(recs); day++ {
		assert.Equal(t, 100.0, series[day], "day %d", day)
	}
}

func TestRSIAllLossesIs0(t *testing.T) {
	closes := make([]float64, 16)
	for i := range closes {
		closes[i] = float64(100 - i)
	}
	recs := recordsFromCloses(closes...)
	assert.Equal(t, 0.0, RSI(recs, DefaultRSIPeriod))
}

func TestRSIFlatWindow(t *testing.T) {
	recs := recordsFromCloses(5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5)
	assert.Equal(t, 0.0, RSI(recs, DefaultRSIPeriod))
}

func TestRSIBounded(t *testing.T) {
	// deterministic pseudo-random walk
	closes := []float64{50}
	x := 0.3
	for i := 0; i < 300; i++ {
		x = 3.9 * x * (1 - x)
		step := (x - 0.5) * 4
		next := math.Max(1, closes[len(closes)-1]+step)
		closes = append(closes, next)
	}
	recs := recordsFromCloses(closes...)

	streaming := NewRSI(DefaultRSIPeriod)
	for i, r := range recs {
		streaming.Update(r)
		pure := RSI(recs[:i+1], DefaultRSIPeriod)
		assert.InDelta(t, pure, streaming.Value(), 1e-9, "day %d", i)
		if i >= DefaultRSIPeriod {
			assert.GreaterOrEqual(t, pure, 0.0)
			assert.LessOrEqual(t, pure, 100.0)
		}
	}
}

func TestRSIStreaming(t *testing.T) {
	r := NewRSI(14)
	assert.Equal(t, "RSI(14)", r.Name())
	assert.Equal(t, 15, r.Warmup())
	assert.False(t, r.Ready())

	recs := recordsFromCloses(10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24)
	for i, rec := range recs {
		r.Update(rec)
		assert.Equal(t, i == len(recs)-1, r.Ready())
	}
	assert.Equal(t, 100.0, r.Value())

	r.Reset()
	assert.False(t, r.Ready())
	assert.Equal(t, 0.0, r.Value())
}

func TestRSIRestartable(t *testing.T) {
	recs := recordsFromCloses(3, 4, 2, 5, 7, 6, 8, 9, 4, 3, 6, 7, 8, 9, 10, 4, 2, 7)
	assert.Equal(t, RSISeries(recs, 14), RSISeries(recs, 14))
}
