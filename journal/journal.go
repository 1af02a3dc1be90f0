// Package journal keeps an append-only audit trail of settled trades and
// risk-state snapshots. Nothing is read back into live risk state.
package journal

import (
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/1cbyc/1cbyc-trading-bot/risk"
)

type TradeRecord struct {
	TradeID      string
	Symbol       string
	Direction    string
	Stake        float64
	PnL          float64
	Confidence   float64
	OpenTime     time.Time
	CloseTime    time.Time
	BalanceAfter float64
}

// NewTradeRecord joins a settled outcome with the decision confidence and
// the balance the gate recorded after it.
func NewTradeRecord(o market.TradeOutcome, confidence, balanceAfter float64) TradeRecord {
	return TradeRecord{
		TradeID:      o.TradeID,
		Symbol:       o.Symbol,
		Direction:    o.Direction.String(),
		Stake:        o.Stake,
		PnL:          o.PnL,
		Confidence:   confidence,
		OpenTime:     o.OpenTime.UTC(),
		CloseTime:    o.CloseTime.UTC(),
		BalanceAfter: balanceAfter,
	}
}

type RiskSnapshot struct {
	Time              time.Time
	Day               time.Time
	Status            string
	Reason            string
	DailyTradeCount   int
	DailyRealizedPnL  float64
	ConsecutiveLosses int
	Balance           float64
	PeakBalance       float64
	Drawdown          float64
}

func NewRiskSnapshot(at time.Time, s risk.State) RiskSnapshot {
	return RiskSnapshot{
		Time:              at.UTC(),
		Day:               s.Day.UTC(),
		Status:            string(s.Status),
		Reason:            string(s.Reason),
		DailyTradeCount:   s.DailyTradeCount,
		DailyRealizedPnL:  s.DailyRealizedPnL,
		ConsecutiveLosses: s.ConsecutiveLosses,
		Balance:           s.CurrentBalance,
		PeakBalance:       s.PeakBalance,
		Drawdown:          s.Drawdown(),
	}
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordRisk(RiskSnapshot) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error { return nil }
func (Nop) RecordRisk(RiskSnapshot) error { return nil }
func (Nop) Close() error                  { return nil }
