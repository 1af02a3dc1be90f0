package strategies

import (
	"fmt"
	"math"

	"github.com/1cbyc/1cbyc-trading-bot/indicators"
	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// StochasticEvaluator fades extremes: Up when %K and %D are both below
// Oversold, Down when both are above Overbought. Crossing the threshold reads
// 0.5 and the far end of the scale reads 1.
type StochasticEvaluator struct {
	cfg StochasticConfig
}

func NewStochastic(cfg StochasticConfig) *StochasticEvaluator {
	return &StochasticEvaluator{cfg: cfg}
}

func (e *StochasticEvaluator) Kind() Kind { return Stochastic }

func (e *StochasticEvaluator) Name() string {
	return fmt.Sprintf("Stochastic(%d,%d)", e.cfg.KPeriod, e.cfg.DPeriod)
}

func (e *StochasticEvaluator) Warmup() int { return e.cfg.KPeriod + e.cfg.DPeriod - 1 }

func (e *StochasticEvaluator) Evaluate(s Series) Vote {
	r, err := indicators.Stochastic(s.Highs(), s.Lows(), s.Closes(), e.cfg.KPeriod, e.cfg.DPeriod)
	if err != nil {
		return flat(Stochastic)
	}

	hi, lo := math.Max(r.K, r.D), math.Min(r.K, r.D)
	switch {
	case hi < e.cfg.Oversold:
		return vote(Stochastic, market.Up, 0.5+0.5*(e.cfg.Oversold-hi)/e.cfg.Oversold)
	case lo > e.cfg.Overbought:
		return vote(Stochastic, market.Down, 0.5+0.5*(lo-e.cfg.Overbought)/(100-e.cfg.Overbought))
	}
	return flat(Stochastic)
}
