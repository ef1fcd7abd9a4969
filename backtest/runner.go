// Package backtest wires configuration, price data, strategies and journals
// around the simulation engine.
package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rustyeddy/stockbot/config"
	"github.com/rustyeddy/stockbot/journal"
	"github.com/rustyeddy/stockbot/market"
	"github.com/rustyeddy/stockbot/pkg/id"
	"github.com/rustyeddy/stockbot/sim"
	"github.com/rustyeddy/stockbot/strategies"
)

// Report is a finished run together with its journal summary.
type Report struct {
	Run    journal.Run
	Result sim.Result
}

// Runner executes simulations described by a Config.
type Runner struct {
	Config  *config.Config
	Journal journal.Journal // optional
	Logger  *slog.Logger    // optional, defaults to slog.Default()
	Trace   io.Writer       // optional per-day trace

	// Now stamps run records; defaults to time.Now.
	Now func() time.Time
}

// RunFile loads the configured data file and runs the configured strategy.
func (r *Runner) RunFile(ctx context.Context) (Report, error) {
	if r.Config == nil {
		return Report{}, fmt.Errorf("backtest: Config is required")
	}
	series, err := market.LoadCSV(r.Config.Data.Path)
	if err != nil {
		return Report{}, fmt.Errorf("load %s: %w", r.Config.Data.Path, err)
	}
	return r.Run(ctx, series, r.Config.Data.Path)
}

// Run simulates the configured strategy over series.
func (r *Runner) Run(ctx context.Context, series market.Series, dataset string) (Report, error) {
	if r.Config == nil {
		return Report{}, fmt.Errorf("backtest: Config is required")
	}
	strat, err := strategies.ByName(r.Config.Strategy.Name, r.Config.StrategyParams())
	if err != nil {
		return Report{}, err
	}
	return r.runStrategy(ctx, series, dataset, strat)
}

// Compare runs each named strategy over the same series, each with its own
// fresh engine and ledger. An empty names list runs every registered strategy.
// All names are resolved before the first run starts.
func (r *Runner) Compare(ctx context.Context, series market.Series, dataset string, names []string) ([]Report, error) {
	if r.Config == nil {
		return nil, fmt.Errorf("backtest: Config is required")
	}
	if len(names) == 0 {
		names = strategies.Names()
	}

	strats := make([]strategies.Strategy, 0, len(names))
	for _, name := range names {
		strat, err := strategies.ByName(name, r.Config.StrategyParams())
		if err != nil {
			return nil, err
		}
		strats = append(strats, strat)
	}

	out := make([]Report, 0, len(strats))
	for _, strat := range strats {
		rep, err := r.runStrategy(ctx, series, dataset, strat)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strat.Name(), err)
		}
		out = append(out, rep)
	}
	return out, nil
}

func (r *Runner) runStrategy(ctx context.Context, series market.Series, dataset string, strat strategies.Strategy) (Report, error) {
	cfgJSON, err := json.Marshal(r.Config)
	if err != nil {
		return Report{}, fmt.Errorf("encode config: %w", err)
	}

	scfg := r.Config.SimConfig()
	scfg.Logger = r.logger()

	engine, err := sim.NewEngine(series, strat, scfg)
	if err != nil {
		return Report{}, err
	}
	if r.Trace != nil {
		engine.SetRecorder(&traceRecorder{w: r.Trace})
	}

	res, err := engine.Run(ctx)
	if err != nil {
		return Report{}, err
	}

	created := r.now()
	run := journal.Run{
		RunID:       id.NewAt(created),
		Created:     created,
		Strategy:    res.Strategy,
		Dataset:     dataset,
		Currency:    r.Config.Account.Currency,
		Days:        len(res.Days),
		InitialCash: res.InitialCash,
		FinalCash:   res.Final.Cash,
		FinalShares: res.Final.Shares,
		FinalValue:  res.FinalValue,
		ReturnPct:   res.ReturnPct(),
		Trades:      res.Trades,
		Buys:        res.Buys,
		Sells:       res.Sells,
		Rejected:    res.Rejected,
	}
	run.Config = cfgJSON
	run.Notes = notes(res)

	if r.Journal != nil {
		if err := record(r.Journal, run, res.Days); err != nil {
			return Report{}, fmt.Errorf("journal: %w", err)
		}
	}

	return Report{Run: run, Result: res}, nil
}

// notes lists the days the ledger refused a trade and any position still
// open at the end of the run.
func notes(res sim.Result) []string {
	var out []string
	for _, d := range res.Days {
		if !d.Rejected {
			continue
		}
		side := "buy"
		if d.Decision < 0 {
			side = "sell"
		}
		out = append(out, fmt.Sprintf("day %d: %s of %d shares at %.2f rejected", d.Index, side, abs(d.Decision), d.Open))
	}
	if res.Final.Shares > 0 {
		out = append(out, fmt.Sprintf("%d shares still held after the last day", res.Final.Shares))
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// record writes a completed run. Runs that abort are never journaled.
func record(j journal.Journal, run journal.Run, days []sim.Day) error {
	for _, d := range days {
		if err := j.RecordDay(DayRecord(run.RunID, d)); err != nil {
			return err
		}
	}
	return j.RecordRun(run)
}

// DayRecord converts an engine day into a journal row.
func DayRecord(runID string, d sim.Day) journal.DayRecord {
	return journal.DayRecord{
		RunID:     runID,
		Index:     d.Index,
		Date:      d.Date,
		Open:      d.Open,
		Close:     d.Close,
		Heuristic: d.Heuristic,
		RSI:       d.RSI,
		Decision:  d.Decision,
		Filled:    d.Filled,
		Rejected:  d.Rejected,
		Cash:      d.Cash,
		NetWorth:  d.NetWorth,
		Shares:    d.Shares,
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

type traceRecorder struct {
	w      io.Writer
	header bool
}

func (t *traceRecorder) RecordDay(d sim.Day) error {
	if !t.header {
		t.header = true
		if _, err := fmt.Fprintf(t.w, "%5s %10s %10s %7s %7s %7s %12s %7s\n",
			"day", "open", "heuristic", "rsi", "trade", "filled", "net worth", "shares"); err != nil {
			return err
		}
	}
	flag := ""
	if d.Rejected {
		flag = " rejected"
	}
	_, err := fmt.Fprintf(t.w, "%5d %10.2f %10.2f %7.2f %7d %7d %12.2f %7d%s\n",
		d.Index, d.Open, d.Heuristic, d.RSI, d.Decision, d.Filled, d.NetWorth, d.Shares, flag)
	return err
}

// OpenJournal builds the journal described by cfg. A "none" or empty type
// returns a journal.Nop.
func OpenJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(cfg.RunsFile, cfg.DaysFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
