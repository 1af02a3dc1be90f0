// Package metrics holds the prometheus collectors for the trading engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradebot_decisions_total",
			Help: "Aggregated decisions by symbol and direction.",
		},
		[]string{"symbol", "direction"},
	)

	Confidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tradebot_decision_confidence",
			Help: "Confidence of the latest decision per symbol.",
		},
		[]string{"symbol"},
	)

	Rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradebot_proposals_rejected_total",
			Help: "Trade proposals rejected by the risk gate, by reason.",
		},
		[]string{"reason"},
	)

	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradebot_orders_submitted_total",
			Help: "Orders accepted and settled by the broker.",
		},
		[]string{"symbol"},
	)

	CycleErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradebot_cycle_errors_total",
			Help: "Evaluation cycles abandoned, by symbol and failing stage.",
		},
		[]string{"symbol", "stage"},
	)

	GateOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tradebot_gate_open",
			Help: "1 while the risk gate is open, 0 while paused.",
		},
	)

	Balance = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tradebot_balance",
			Help: "Current account balance as tracked by the risk gate.",
		},
	)

	DailyPnL = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tradebot_daily_realized_pnl",
			Help: "Realized P&L for the current trading day.",
		},
	)

	DailyTrades = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tradebot_daily_trades",
			Help: "Trades settled in the current trading day.",
		},
	)

	ConsecutiveLosses = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tradebot_consecutive_losses",
			Help: "Current losing streak.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		Decisions,
		Confidence,
		Rejections,
		OrdersSubmitted,
		CycleErrors,
		GateOpen,
		Balance,
		DailyPnL,
		DailyTrades,
		ConsecutiveLosses,
	)
}

// Risk mirrors a risk snapshot into the gauges.
func Risk(open bool, balance, dailyPnL float64, dailyTrades, losses int) {
	if open {
		GateOpen.Set(1)
	} else {
		GateOpen.Set(0)
	}
	Balance.Set(balance)
	DailyPnL.Set(dailyPnL)
	DailyTrades.Set(float64(dailyTrades))
	ConsecutiveLosses.Set(float64(losses))
}
