package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	tradeHeader = []string{"trade_id", "symbol", "direction", "stake", "pnl", "confidence", "open_time", "close_time", "balance_after"}
	riskHeader  = []string{"time", "day", "status", "reason", "daily_trade_count", "daily_realized_pnl", "consecutive_losses", "balance", "peak_balance", "drawdown"}
)

// CSVJournal writes trades and risk snapshots to two CSV files.
type CSVJournal struct {
	mu     sync.Mutex
	trades *csv.Writer
	risk   *csv.Writer
	tf, rf *os.File
}

func NewCSV(tradesPath, riskPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	rf, err := os.Create(riskPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	j := &CSVJournal{trades: csv.NewWriter(tf), risk: csv.NewWriter(rf), tf: tf, rf: rf}
	if err := j.write(j.trades, tradeHeader); err != nil {
		j.Close()
		return nil, err
	}
	if err := j.write(j.risk, riskHeader); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.write(j.trades, []string{
		t.TradeID,
		t.Symbol,
		t.Direction,
		f(t.Stake),
		f(t.PnL),
		f(t.Confidence),
		t.OpenTime.Format(time.RFC3339),
		t.CloseTime.Format(time.RFC3339),
		f(t.BalanceAfter),
	})
}

func (j *CSVJournal) RecordRisk(s RiskSnapshot) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.write(j.risk, []string{
		s.Time.Format(time.RFC3339),
		s.Day.Format("2006-01-02"),
		s.Status,
		s.Reason,
		strconv.Itoa(s.DailyTradeCount),
		f(s.DailyRealizedPnL),
		strconv.Itoa(s.ConsecutiveLosses),
		f(s.Balance),
		f(s.PeakBalance),
		f(s.Drawdown),
	})
}

func (j *CSVJournal) write(w *csv.Writer, rec []string) error {
	if err := w.Write(rec); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.trades.Flush()
	j.risk.Flush()
	terr := j.tf.Close()
	rerr := j.rf.Close()
	if err := j.trades.Error(); err != nil {
		return err
	}
	if err := j.risk.Error(); err != nil {
		return err
	}
	if terr != nil {
		return terr
	}
	return rerr
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
