package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO runs
		(run_id, created, strategy, dataset, currency, days, initial_cash, final_cash, final_shares,
		 final_value, return_pct, trades, buys, sells, rejected, config)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Dataset, r.Currency, r.Days, r.InitialCash, r.FinalCash,
		r.FinalShares, r.FinalValue, r.ReturnPct, r.Trades, r.Buys, r.Sells, r.Rejected, string(r.Config),
	)
	return err
}

func (j *SQLite) RecordDay(d DayRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO days
		(run_id, day_index, day, open, close, heuristic, rsi, decision, filled, rejected, cash, net_worth, shares)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.RunID, d.Index, d.Date, d.Open, d.Close, d.Heuristic, d.RSI,
		d.Decision, d.Filled, d.Rejected, d.Cash, d.NetWorth, d.Shares,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
