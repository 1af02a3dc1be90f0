package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const tradeColumns = `trade_id, symbol, direction, stake, pnl, confidence, open_time, close_time, balance_after`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(r rowScanner) (TradeRecord, error) {
	var rec TradeRecord
	err := r.Scan(
		&rec.TradeID,
		&rec.Symbol,
		&rec.Direction,
		&rec.Stake,
		&rec.PnL,
		&rec.Confidence,
		&rec.OpenTime,
		&rec.CloseTime,
		&rec.BalanceAfter,
	)
	return rec, err
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	row := j.db.QueryRow(`SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, tradeID)
	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesClosedBetween returns trades whose close_time is within [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`SELECT `+tradeColumns+` FROM trades
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats summarises a set of trades.
type Stats struct {
	Trades       int     `json:"trades"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	NetPnL       float64 `json:"net_pnl"`
	GrossProfit  float64 `json:"gross_profit"`
	GrossLoss    float64 `json:"gross_loss"`
	ProfitFactor float64 `json:"profit_factor"` // 0 when there are no losses
}

func Summarize(trades []TradeRecord) Stats {
	var s Stats
	for _, t := range trades {
		s.Trades++
		s.NetPnL += t.PnL
		if t.PnL > 0 {
			s.Wins++
			s.GrossProfit += t.PnL
		} else {
			s.Losses++
			s.GrossLoss -= t.PnL
		}
	}
	if s.Trades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Trades)
	}
	if s.GrossLoss > 0 {
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	}
	return s
}

// DailyStats summarises the trades closed on day's calendar date in loc.
func (j *SQLite) DailyStats(day time.Time, loc *time.Location) (Stats, error) {
	if loc == nil {
		loc = time.UTC
	}
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	trades, err := j.ListTradesClosedBetween(start, start.AddDate(0, 0, 1))
	if err != nil {
		return Stats{}, err
	}
	return Summarize(trades), nil
}

// LatestRisk returns the most recent risk snapshot.
func (j *SQLite) LatestRisk() (RiskSnapshot, error) {
	var s RiskSnapshot
	err := j.db.QueryRow(`
		SELECT time, day, status, reason, daily_trade_count, daily_realized_pnl,
		       consecutive_losses, balance, peak_balance, drawdown
		FROM risk_snapshots ORDER BY time DESC LIMIT 1`).Scan(
		&s.Time, &s.Day, &s.Status, &s.Reason, &s.DailyTradeCount, &s.DailyRealizedPnL,
		&s.ConsecutiveLosses, &s.Balance, &s.PeakBalance, &s.Drawdown,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return RiskSnapshot{}, fmt.Errorf("no risk snapshots recorded")
	}
	return s, err
}
