package strategies

import (
	"fmt"
	"math"

	"github.com/1cbyc/1cbyc-trading-bot/indicators"
	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// MomentumEvaluator follows the rate of change once it clears Threshold.
type MomentumEvaluator struct {
	cfg MomentumConfig
}

func NewMomentum(cfg MomentumConfig) *MomentumEvaluator {
	return &MomentumEvaluator{cfg: cfg}
}

func (e *MomentumEvaluator) Kind() Kind { return Momentum }

func (e *MomentumEvaluator) Name() string { return fmt.Sprintf("Momentum(%d)", e.cfg.Period) }

func (e *MomentumEvaluator) Warmup() int { return e.cfg.Period + 1 }

func (e *MomentumEvaluator) Evaluate(s Series) Vote {
	roc, err := indicators.ROC(s.Closes(), e.cfg.Period)
	if err != nil {
		return flat(Momentum)
	}

	strength := math.Abs(roc) / e.cfg.FullScale
	switch {
	case roc > e.cfg.Threshold:
		return vote(Momentum, market.Up, strength)
	case roc < -e.cfg.Threshold:
		return vote(Momentum, market.Down, strength)
	}
	return flat(Momentum)
}
