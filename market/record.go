// Package market holds the daily price data the simulator consumes.
package market

import (
	"errors"
	"fmt"
	"math"
)

// Record is a single trading day. Day is the 1-based position assigned at
// ingestion; any literal date in the source data is discarded.
type Record struct {
	Day   int
	Open  float64
	Close float64
}

// Series is an ordered run of daily records, ascending by Day.
type Series []Record

// ErrEmptySeries is returned when a simulation is asked to run without data.
var ErrEmptySeries = errors.New("empty price series")

// NewSeries builds a Series from (open, close) pairs, numbering days from 1.
func NewSeries(opens, closes []float64) (Series, error) {
	if len(opens) != len(closes) {
		return nil, fmt.Errorf("opens and closes differ in length: %d != %d", len(opens), len(closes))
	}
	s := make(Series, len(opens))
	for i := range opens {
		s[i] = Record{Day: i + 1, Open: opens[i], Close: closes[i]}
	}
	return s, s.Validate()
}

// Validate checks that the series is non-empty, strictly ordered by Day and
// carries positive, finite prices.
func (s Series) Validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	prev := 0
	for i, r := range s {
		if r.Day <= prev {
			return fmt.Errorf("record %d: day %d out of order (previous %d)", i, r.Day, prev)
		}
		if !finitePositive(r.Open) {
			return fmt.Errorf("record %d: open must be positive, got %v", i, r.Open)
		}
		if !finitePositive(r.Close) {
			return fmt.Errorf("record %d: close must be positive, got %v", i, r.Close)
		}
		prev = r.Day
	}
	return nil
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// Opens returns the open prices in day order.
func (s Series) Opens() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Open
	}
	return out
}

// Closes returns the close prices in day order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Close
	}
	return out
}

// Last returns the final record. It panics on an empty series.
func (s Series) Last() Record {
	return s[len(s)-1]
}
