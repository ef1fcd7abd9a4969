// Package sim runs a strategy over a price series one day at a time.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/rustyeddy/stockbot/indicators"
	"github.com/rustyeddy/stockbot/market"
	"github.com/rustyeddy/stockbot/portfolio"
	"github.com/rustyeddy/stockbot/strategies"
)

// State is the lifecycle stage of an Engine.
type State int

const (
	Initializing State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// InvalidTradePolicy controls what happens when the ledger rejects a trade.
type InvalidTradePolicy string

const (
	// AbortOnInvalid fails the whole run on the first rejected trade.
	AbortOnInvalid InvalidTradePolicy = "abort"
	// SkipInvalid drops the offending trade and carries on with the next day.
	SkipInvalid InvalidTradePolicy = "skip"
)

// Config holds the per-run settings.
type Config struct {
	InitialCash     float64
	RSIPeriod       int
	HeuristicWindow int
	OnInvalidTrade  InvalidTradePolicy
	Logger          *slog.Logger
}

// DefaultConfig returns a config with the standard indicator windows.
func DefaultConfig(initialCash float64) Config {
	return Config{
		InitialCash:     initialCash,
		RSIPeriod:       indicators.DefaultRSIPeriod,
		HeuristicWindow: indicators.DefaultHeuristicWindow,
		OnInvalidTrade:  AbortOnInvalid,
	}
}

func (c *Config) normalize() error {
	if !(c.InitialCash > 0) || math.IsInf(c.InitialCash, 1) {
		return fmt.Errorf("initial cash must be positive, got %v", c.InitialCash)
	}
	if c.RSIPeriod == 0 {
		c.RSIPeriod = indicators.DefaultRSIPeriod
	}
	if c.HeuristicWindow == 0 {
		c.HeuristicWindow = indicators.DefaultHeuristicWindow
	}
	if c.RSIPeriod < 0 || c.HeuristicWindow < 0 {
		return fmt.Errorf("indicator windows must be positive (rsi=%d heuristic=%d)", c.RSIPeriod, c.HeuristicWindow)
	}
	switch c.OnInvalidTrade {
	case "":
		c.OnInvalidTrade = AbortOnInvalid
	case AbortOnInvalid, SkipInvalid:
	default:
		return fmt.Errorf("unknown invalid trade policy %q", c.OnInvalidTrade)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

// Recorder receives every day of a run as it is processed.
type Recorder interface {
	RecordDay(d Day) error
}

// Engine is a single simulation run. It owns its ledger; create a new Engine
// for every run.
type Engine struct {
	cfg    Config
	series market.Series
	strat  strategies.Strategy
	ledger *portfolio.Ledger

	heuristic *indicators.OpenMA
	rsi       *indicators.StreamingRSI

	state    State
	recorder Recorder
	days     []Day
}

// NewEngine validates the inputs and builds an engine in the Initializing state.
func NewEngine(series market.Series, strat strategies.Strategy, cfg Config) (*Engine, error) {
	if strat == nil {
		return nil, fmt.Errorf("%w: nil strategy", strategies.ErrInvalidStrategy)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("series: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	ledger, err := portfolio.New(cfg.InitialCash)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg,
		series:    series,
		strat:     strat,
		ledger:    ledger,
		heuristic: indicators.NewOpenMA(cfg.HeuristicWindow),
		rsi:       indicators.NewRSI(cfg.RSIPeriod),
		state:     Initializing,
		days:      make([]Day, 0, len(series)),
	}, nil
}

// SetRecorder attaches an optional day sink. It must be called before Run.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// State reports where the engine is in its lifecycle.
func (e *Engine) State() State {
	return e.state
}

// Ledger returns the current ledger state.
func (e *Engine) Ledger() portfolio.Snapshot {
	return e.ledger.Snapshot()
}

// Run processes every day in order and returns the final ledger and day log.
// On a fatal error no partial result is returned.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if e.state != Initializing {
		return Result{}, fmt.Errorf("engine already %s", e.state)
	}
	e.state = Running

	log := e.cfg.Logger.With("strategy", e.strat.Name())
	log.Info("simulation started", "days", len(e.series), "cash", e.cfg.InitialCash)

	lastDay := len(e.series) - 1
	for i, rec := range e.series {
		if err := ctx.Err(); err != nil {
			e.state = Failed
			return Result{}, err
		}

		d, err := e.step(i, lastDay, rec)
		if err != nil {
			e.state = Failed
			log.Error("simulation aborted", "day", i, "err", err)
			return Result{}, err
		}
		if d.Rejected {
			log.Warn("trade rejected", "day", i, "decision", d.Decision, "cash", d.Cash, "shares", d.Shares)
		} else {
			log.Debug("day", "day", i, "open", d.Open, "heuristic", d.Heuristic, "rsi", d.RSI, "decision", d.Decision, "filled", d.Filled)
		}

		e.days = append(e.days, d)
		if e.recorder != nil {
			if err := e.recorder.RecordDay(d); err != nil {
				e.state = Failed
				return Result{}, fmt.Errorf("record day %d: %w", i, err)
			}
		}
	}

	e.state = Completed
	res := e.result()
	log.Info("simulation completed", "net_worth", res.FinalNetWorth, "shares", res.Final.Shares, "trades", res.Trades)
	return res, nil
}

// step runs a single day. The indicators only ever see records up to and
// including rec.
func (e *Engine) step(i, lastDay int, rec market.Record) (Day, error) {
	e.heuristic.Update(rec)
	e.rsi.Update(rec)

	sig := strategies.Signal{
		Day:       i,
		LastDay:   lastDay,
		Open:      rec.Open,
		Heuristic: e.heuristic.Value(),
		RSI:       e.rsi.Value(),
		NetWorth:  e.ledger.NetWorth(),
		Shares:    e.ledger.Shares(),
	}
	decision := e.strat.Decide(sig)

	d := Day{
		Index:     i,
		Date:      rec.Day,
		Open:      rec.Open,
		Close:     rec.Close,
		Heuristic: sig.Heuristic,
		RSI:       sig.RSI,
		Decision:  decision,
	}

	filled, err := e.ledger.ApplyTrade(decision, rec.Open)
	if err != nil {
		if e.cfg.OnInvalidTrade != SkipInvalid || !errors.Is(err, portfolio.ErrInvalidTransaction) {
			return Day{}, &DayError{
				Day:      i,
				Decision: decision,
				Price:    rec.Open,
				Ledger:   e.ledger.Snapshot(),
				Err:      err,
			}
		}
		d.Rejected = true
	}

	d.Filled = filled
	d.Cash = e.ledger.Cash()
	d.NetWorth = e.ledger.NetWorth()
	d.Shares = e.ledger.Shares()
	return d, nil
}

func (e *Engine) result() Result {
	res := Result{
		Strategy:      e.strat.Name(),
		InitialCash:   e.cfg.InitialCash,
		Final:         e.ledger.Snapshot(),
		FinalNetWorth: e.ledger.NetWorth(),
		FinalValue:    e.ledger.Value(e.series.Last().Close),
		Days:          e.days,
	}
	for _, d := range e.days {
		switch {
		case d.Rejected:
			res.Rejected++
		case d.Filled > 0:
			res.Buys++
		case d.Filled < 0:
			res.Sells++
		}
	}
	res.Trades = res.Buys + res.Sells
	return res
}
