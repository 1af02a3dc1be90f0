package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	stake REAL NOT NULL,
	pnl REAL NOT NULL,
	confidence REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	balance_after REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(close_time);

CREATE TABLE IF NOT EXISTS risk_snapshots (
	time DATETIME NOT NULL,
	day DATETIME NOT NULL,
	status TEXT NOT NULL,
	reason TEXT NOT NULL,
	daily_trade_count INTEGER NOT NULL,
	daily_realized_pnl REAL NOT NULL,
	consecutive_losses INTEGER NOT NULL,
	balance REAL NOT NULL,
	peak_balance REAL NOT NULL,
	drawdown REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_risk_snapshots_time ON risk_snapshots(time);
`
