// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	account_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	currency TEXT NOT NULL,
	initial_balance REAL NOT NULL,
	balance REAL NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL REFERENCES accounts(account_id),
	symbol TEXT NOT NULL,
	session TEXT NOT NULL,
	instrument_type TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	actual_exit REAL,
	result TEXT NOT NULL,
	risk_amount REAL,
	pnl REAL,
	position_size REAL NOT NULL,
	risk_to_reward REAL NOT NULL,
	confluence_score REAL NOT NULL,
	grade TEXT NOT NULL,
	checklist TEXT NOT NULL,
	notes TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id, created_at);
`
