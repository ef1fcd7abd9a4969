package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	dataset TEXT NOT NULL,
	currency TEXT NOT NULL,
	days INTEGER NOT NULL,
	initial_cash REAL NOT NULL,
	final_cash REAL NOT NULL,
	final_shares INTEGER NOT NULL,
	final_value REAL NOT NULL,
	return_pct REAL NOT NULL,
	trades INTEGER NOT NULL,
	buys INTEGER NOT NULL,
	sells INTEGER NOT NULL,
	rejected INTEGER NOT NULL,
	config TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS days (
	run_id TEXT NOT NULL,
	day_index INTEGER NOT NULL,
	day INTEGER NOT NULL,
	open REAL NOT NULL,
	close REAL NOT NULL,
	heuristic REAL NOT NULL,
	rsi REAL NOT NULL,
	decision INTEGER NOT NULL,
	filled INTEGER NOT NULL,
	rejected INTEGER NOT NULL,
	cash REAL NOT NULL,
	net_worth REAL NOT NULL,
	shares INTEGER NOT NULL,
	PRIMARY KEY (run_id, day_index)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`
