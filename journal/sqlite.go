package journal

import (
	"database/sql"

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
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, direction, stake, pnl, confidence, open_time, close_time, balance_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Symbol, t.Direction, t.Stake, t.PnL, t.Confidence,
		t.OpenTime.UTC(), t.CloseTime.UTC(), t.BalanceAfter,
	)
	return err
}

func (j *SQLite) RecordRisk(s RiskSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO risk_snapshots
		(time, day, status, reason, daily_trade_count, daily_realized_pnl, consecutive_losses, balance, peak_balance, drawdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Time.UTC(), s.Day.UTC(), s.Status, s.Reason, s.DailyTradeCount, s.DailyRealizedPnL,
		s.ConsecutiveLosses, s.Balance, s.PeakBalance, s.Drawdown,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
