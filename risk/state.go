package risk

import "time"

// Status is the gate state for the current trading day.
type Status string

const (
	Open   Status = "open"
	Paused Status = "paused"
)

// Reason names the limit that paused the gate.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonDailyTradeLimit   Reason = "daily-trade-limit"
	ReasonDailyLossLimit    Reason = "daily-loss-limit"
	ReasonConsecutiveLosses Reason = "consecutive-loss-limit"
	ReasonMaxDrawdown       Reason = "max-drawdown"
)

// State is the per-account risk state. Gate owns the live copy; everything
// else sees snapshots.
type State struct {
	Day    time.Time `json:"day"` // start of the current trading day
	Status Status    `json:"status"`
	Reason Reason    `json:"reason,omitempty"`

	DailyTradeCount   int     `json:"daily_trade_count"`
	DailyRealizedPnL  float64 `json:"daily_realized_pnl"`
	ConsecutiveLosses int     `json:"consecutive_losses"`
	DailyWins         int     `json:"daily_wins"`
	DailyLosses       int     `json:"daily_losses"`

	PeakBalance     float64 `json:"peak_balance"`
	CurrentBalance  float64 `json:"current_balance"`
	DayStartBalance float64 `json:"day_start_balance"`
}

// Drawdown is the fractional decline of the current balance from its peak.
func (s State) Drawdown() float64 {
	if s.PeakBalance <= 0 {
		return 0
	}
	dd := (s.PeakBalance - s.CurrentBalance) / s.PeakBalance
	if dd < 0 {
		return 0
	}
	return dd
}

// WinRate is wins over settled trades today, 0 before the first trade.
func (s State) WinRate() float64 {
	if s.DailyTradeCount == 0 {
		return 0
	}
	return float64(s.DailyWins) / float64(s.DailyTradeCount)
}
