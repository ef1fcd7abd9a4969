package indicators

import (
	"fmt"

	"github.com/rustyeddy/stockbot/market"
)

// Heuristic is the mean open price over the last min(period, len(window))
// records. On the first day it is that day's own open.
func Heuristic(window []market.Record, period int) float64 {
	if len(window) == 0 || period <= 0 {
		return 0
	}
	start := len(window) - period
	if start < 0 {
		start = 0
	}

	sum := 0.0
	for _, r := range window[start:] {
		sum += r.Open
	}
	return sum / float64(len(window)-start)
}

// OpenMA is a streaming simple moving average over open prices. Unlike a
// classic SMA it produces a value from the first update, averaging whatever
// is available until the window fills.
type OpenMA struct {
	period int
	opens  []float64
}

// NewOpenMA creates a moving average of the last period opens.
func NewOpenMA(period int) *OpenMA {
	return &OpenMA{
		period: period,
		opens:  make([]float64, 0, period),
	}
}

func (m *OpenMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *OpenMA) Warmup() int {
	return 1
}

func (m *OpenMA) Reset() {
	m.opens = m.opens[:0]
}

func (m *OpenMA) Update(r market.Record) {
	m.opens = append(m.opens, r.Open)
	// Keep only the last 'period' opens
	if len(m.opens) > m.period {
		m.opens = m.opens[1:]
	}
}

func (m *OpenMA) Ready() bool {
	return len(m.opens) > 0
}

// Len is the number of opens currently averaged.
func (m *OpenMA) Len() int {
	return len(m.opens)
}

func (m *OpenMA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	sum := 0.0
	for _, o := range m.opens {
		sum += o
	}
	return sum / float64(len(m.opens))
}
