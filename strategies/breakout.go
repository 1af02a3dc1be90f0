package strategies

import (
	"fmt"
	"math"

	"github.com/1cbyc/1cbyc-trading-bot/indicators"
	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// BreakoutEvaluator follows range expansions in the direction of the
// breakout bar's close-to-close move. Strength is the range ratio over twice
// the multiplier, so a bare breakout reads about 0.5.
type BreakoutEvaluator struct {
	cfg BreakoutConfig
}

func NewBreakout(cfg BreakoutConfig) *BreakoutEvaluator {
	return &BreakoutEvaluator{cfg: cfg}
}

func (e *BreakoutEvaluator) Kind() Kind { return Breakout }

func (e *BreakoutEvaluator) Name() string {
	return fmt.Sprintf("Volatility Breakout(%d,%g)", e.cfg.Period, e.cfg.Multiplier)
}

func (e *BreakoutEvaluator) Warmup() int { return e.cfg.Period + 2 }

func (e *BreakoutEvaluator) Evaluate(s Series) Vote {
	r, err := indicators.Breakout(s.Highs(), s.Lows(), s.Closes(), e.cfg.Period, e.cfg.Multiplier)
	if err != nil || !r.Breakout {
		return flat(Breakout)
	}

	strength := 1.0
	if !math.IsInf(r.Ratio, 1) {
		strength = r.Ratio / (2 * e.cfg.Multiplier)
	}

	switch {
	case r.Move > 0:
		return vote(Breakout, market.Up, strength)
	case r.Move < 0:
		return vote(Breakout, market.Down, strength)
	}
	return flat(Breakout)
}
