// Package journal records simulation runs and their day logs.
package journal

import "time"

// Run is the summary row of one simulation.
type Run struct {
	RunID    string
	Created  time.Time
	Strategy string
	Dataset  string
	Currency string

	Days int

	InitialCash float64
	FinalCash   float64
	FinalShares int
	FinalValue  float64 // cash plus shares at the last close
	ReturnPct   float64

	Trades   int
	Buys     int
	Sells    int
	Rejected int

	Config []byte // run config as JSON

	Notes []string
}

// DayRecord is one line of a run's day log.
type DayRecord struct {
	RunID string
	Index int
	Date  int

	Open      float64
	Close     float64
	Heuristic float64
	RSI       float64

	Decision int
	Filled   int
	Rejected bool

	Cash     float64
	NetWorth float64
	Shares   int
}

// Journal is a sink for runs and their days.
type Journal interface {
	RecordRun(Run) error
	RecordDay(DayRecord) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRun(Run) error { return nil }

func (Nop) RecordDay(DayRecord) error { return nil }

func (Nop) Close() error { return nil }
