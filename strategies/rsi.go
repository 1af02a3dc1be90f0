package strategies

import (
	"fmt"

	"github.com/1cbyc/1cbyc-trading-bot/indicators"
	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// RSIEvaluator votes Up when oversold and Down when overbought. Strength is
// the distance past the threshold as a fraction of the room left beyond it.
type RSIEvaluator struct {
	cfg RSIConfig
}

func NewRSI(cfg RSIConfig) *RSIEvaluator {
	return &RSIEvaluator{cfg: cfg}
}

func (e *RSIEvaluator) Kind() Kind { return RSI }

func (e *RSIEvaluator) Name() string { return fmt.Sprintf("RSI(%d)", e.cfg.Period) }

func (e *RSIEvaluator) Warmup() int { return e.cfg.Period + 1 }

func (e *RSIEvaluator) Evaluate(s Series) Vote {
	rsi, err := indicators.RSI(s.Closes(), e.cfg.Period)
	if err != nil {
		return flat(RSI)
	}

	switch {
	case rsi < e.cfg.Oversold:
		return vote(RSI, market.Up, (e.cfg.Oversold-rsi)/e.cfg.Oversold)
	case rsi > e.cfg.Overbought:
		return vote(RSI, market.Down, (rsi-e.cfg.Overbought)/(100-e.cfg.Overbought))
	}
	return flat(RSI)
}
