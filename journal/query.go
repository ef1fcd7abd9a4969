package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `run_id, created, strategy, dataset, currency, days, initial_cash, final_cash,
	final_shares, final_value, return_pct, trades, buys, sells, rejected, config`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r   Run
		cfg string
	)
	err := s.Scan(
		&r.RunID,
		&r.Created,
		&r.Strategy,
		&r.Dataset,
		&r.Currency,
		&r.Days,
		&r.InitialCash,
		&r.FinalCash,
		&r.FinalShares,
		&r.FinalValue,
		&r.ReturnPct,
		&r.Trades,
		&r.Buys,
		&r.Sells,
		&r.Rejected,
		&cfg,
	)
	if cfg != "" {
		r.Config = []byte(cfg)
	}
	return r, err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	row := j.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)

	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns every recorded run, oldest first.
func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY created ASC, run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDays returns the day log of a run in day order.
func (j *SQLite) ListDays(runID string) ([]DayRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, day_index, day, open, close, heuristic, rsi, decision, filled, rejected, cash, net_worth, shares
		FROM days
		WHERE run_id = ?
		ORDER BY day_index ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRecord
	for rows.Next() {
		var d DayRecord
		if err := rows.Scan(
			&d.RunID,
			&d.Index,
			&d.Date,
			&d.Open,
			&d.Close,
			&d.Heuristic,
			&d.RSI,
			&d.Decision,
			&d.Filled,
			&d.Rejected,
			&d.Cash,
			&d.NetWorth,
			&d.Shares,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
