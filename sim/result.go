package sim

import (
	"fmt"

	"github.com/rustyeddy/stockbot/portfolio"
)

// Day is one entry of the run log.
type Day struct {
	Index int // 0-based day index
	Date  int // 1-based record day

	Open      float64
	Close     float64
	Heuristic float64
	RSI       float64

	Decision int // what the strategy asked for
	Filled   int // what the ledger executed
	Rejected bool

	Cash     float64
	NetWorth float64
	Shares   int
}

// Result is the outcome of a completed run.
type Result struct {
	Strategy    string
	InitialCash float64

	Final         portfolio.Snapshot
	FinalNetWorth float64
	FinalValue    float64 // cash plus shares at the last close

	Days []Day

	Trades   int
	Buys     int
	Sells    int
	Rejected int
}

// ReturnPct is the change in net worth over the run, in percent.
func (r Result) ReturnPct() float64 {
	if r.InitialCash == 0 {
		return 0
	}
	return (r.FinalNetWorth - r.InitialCash) / r.InitialCash * 100
}

// Summary is the one line report of a run.
func (r Result) Summary() string {
	return fmt.Sprintf("starting net worth $%.2f, final net worth $%.2f", r.InitialCash, r.FinalNetWorth)
}

// DayError is a fatal failure on a specific day.
type DayError struct {
	Day      int
	Decision int
	Price    float64
	Ledger   portfolio.Snapshot
	Err      error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("day %d: trade %d @ %.4f (cash=%.2f shares=%d): %v",
		e.Day, e.Decision, e.Price, e.Ledger.Cash, e.Ledger.Shares, e.Err)
}

func (e *DayError) Unwrap() error {
	return e.Err
}
