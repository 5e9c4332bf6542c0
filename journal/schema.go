// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	source TEXT NOT NULL,
	events INTEGER NOT NULL,
	positions INTEGER NOT NULL,
	open_lots INTEGER NOT NULL,
	errors INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS positions (
	record_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	position_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	opened_at DATETIME NOT NULL,
	closed_at DATETIME NOT NULL,
	quantity REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	realized_pnl REAL NOT NULL,
	net_profit REAL NOT NULL,
	net_approx INTEGER NOT NULL,
	fills INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_closed ON positions(closed_at);
CREATE INDEX IF NOT EXISTS idx_positions_symbol ON positions(symbol);
`
