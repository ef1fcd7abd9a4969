// Package indicators provides the technical indicators the strategies trade on.
package indicators

import "github.com/rustyeddy/stockbot/market"

const (
	// DefaultHeuristicWindow is the number of opens averaged by the heuristic.
	DefaultHeuristicWindow = 5

	// DefaultRSIPeriod is the number of close-to-close deltas in an RSI value.
	DefaultRSIPeriod = 14
)

// Indicator computes a single streaming value from daily records.
// It is deterministic and only ever sees data up to the current day.
type Indicator interface {
	// Name returns a stable identifier like "SMA(5)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next record.
	Update(r market.Record)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value, or 0 when !Ready().
	Value() float64
}
