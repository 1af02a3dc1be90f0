package market

import "time"

// TradeProposal is a sized order ready for submission. It lives for one
// evaluation cycle.
type TradeProposal struct {
	Symbol     string
	Direction  Direction
	Confidence float64
	RawStake   float64 // before step flooring and min/max clamping
	Stake      float64
}

// TradeOutcome is the settled result of one order. It is the only input,
// besides the daily rollover, that changes account risk state.
type TradeOutcome struct {
	TradeID   string
	Symbol    string
	Direction Direction
	Stake     float64
	PnL       float64
	OpenTime  time.Time
	CloseTime time.Time
}

// Win reports whether the trade made money. Break-even counts as a loss.
func (o TradeOutcome) Win() bool {
	return o.PnL > 0
}
