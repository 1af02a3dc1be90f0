package strategies

import (
	"fmt"
	"math"

	"github.com/1cbyc/1cbyc-trading-bot/indicators"
	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// MACDEvaluator follows the sign of the MACD histogram. Strength is the
// histogram as a fraction of the last close, scaled by FullScale.
type MACDEvaluator struct {
	cfg MACDConfig
}

func NewMACD(cfg MACDConfig) *MACDEvaluator {
	return &MACDEvaluator{cfg: cfg}
}

func (e *MACDEvaluator) Kind() Kind { return MACD }

func (e *MACDEvaluator) Name() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", e.cfg.Fast, e.cfg.Slow, e.cfg.Signal)
}

func (e *MACDEvaluator) Warmup() int { return e.cfg.Slow + e.cfg.Signal - 1 }

func (e *MACDEvaluator) Evaluate(s Series) Vote {
	closes := s.Closes()
	r, err := indicators.MACD(closes, e.cfg.Fast, e.cfg.Slow, e.cfg.Signal)
	if err != nil {
		return flat(MACD)
	}
	last := closes[len(closes)-1]
	if last == 0 {
		return flat(MACD)
	}

	strength := math.Abs(r.Hist) / (e.cfg.FullScale * math.Abs(last))
	switch {
	case r.Hist > 0:
		return vote(MACD, market.Up, strength)
	case r.Hist < 0:
		return vote(MACD, market.Down, strength)
	}
	return flat(MACD)
}
