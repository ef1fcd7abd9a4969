package indicators

import (
	"fmt"

	"github.com/rustyeddy/stockbot/market"
)

// RSI computes the Relative Strength Index of the last period close-to-close
// deltas in window. Gains and losses are plain averages over period (no Wilder
// smoothing). Until window holds period+1 records the sentinel 0 is returned.
func RSI(window []market.Record, period int) float64 {
	if period <= 0 || len(window) < period+1 {
		return 0
	}

	var up, down float64
	w := window[len(window)-period-1:]
	for i := 1; i < len(w); i++ {
		delta := w[i].Close - w[i-1].Close
		if delta > 0 {
			up += delta
		} else {
			down -= delta
		}
	}
	return rsiFromMoves(up, down, period)
}

// RSISeries recomputes one RSI value per record from scratch, with sentinel 0
// for the first period days.
func RSISeries(records []market.Record, period int) []float64 {
	out := make([]float64, len(records))
	r := NewRSI(period)
	for i, rec := range records {
		r.Update(rec)
		out[i] = r.Value()
	}
	return out
}

func rsiFromMoves(up, down float64, period int) float64 {
	avgUp := up / float64(period)
	avgDown := down / float64(period)

	if avgDown == 0 {
		if avgUp > 0 {
			return 100
		}
		// flat window: rs is 0
		return 0
	}
	rs := avgUp / avgDown
	return 100 - 100/(1+rs)
}

// StreamingRSI keeps bounded queues of the last period up and down moves.
type StreamingRSI struct {
	period int

	ups   []float64
	downs []float64

	prevClose float64
	count     int
}

// NewRSI creates a streaming RSI over period deltas.
func NewRSI(period int) *StreamingRSI {
	return &StreamingRSI{
		period: period,
		ups:    make([]float64, 0, period),
		downs:  make([]float64, 0, period),
	}
}

func (r *StreamingRSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

// Warmup is period+1 records, period deltas.
func (r *StreamingRSI) Warmup() int {
	return r.period + 1
}

func (r *StreamingRSI) Reset() {
	r.ups = r.ups[:0]
	r.downs = r.downs[:0]
	r.prevClose = 0
	r.count = 0
}

func (r *StreamingRSI) Update(rec market.Record) {
	r.count++
	if r.count == 1 {
		r.prevClose = rec.Close
		return
	}

	delta := rec.Close - r.prevClose
	r.prevClose = rec.Close

	up, down := 0.0, 0.0
	if delta > 0 {
		up = delta
	} else {
		down = -delta
	}

	r.ups = append(r.ups, up)
	r.downs = append(r.downs, down)
	if len(r.ups) > r.period {
		r.ups = r.ups[1:]
		r.downs = r.downs[1:]
	}
}

func (r *StreamingRSI) Ready() bool {
	return r.period > 0 && r.count >= r.Warmup()
}

func (r *StreamingRSI) Value() float64 {
	if !r.Ready() {
		return 0
	}

	var up, down float64
	for i := range r.ups {
		up += r.ups[i]
		down += r.downs[i]
	}
	return rsiFromMoves(up, down, r.period)
}
