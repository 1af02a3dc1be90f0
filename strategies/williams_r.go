package strategies

import (
	"fmt"

	"github.com/1cbyc/1cbyc-trading-bot/indicators"
	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// WilliamsREvaluator fades %R extremes on the -100..0 scale.
type WilliamsREvaluator struct {
	cfg WilliamsRConfig
}

func NewWilliamsR(cfg WilliamsRConfig) *WilliamsREvaluator {
	return &WilliamsREvaluator{cfg: cfg}
}

func (e *WilliamsREvaluator) Kind() Kind { return WilliamsR }

func (e *WilliamsREvaluator) Name() string { return fmt.Sprintf("WilliamsR(%d)", e.cfg.Period) }

func (e *WilliamsREvaluator) Warmup() int { return e.cfg.Period }

func (e *WilliamsREvaluator) Evaluate(s Series) Vote {
	r, err := indicators.WilliamsR(s.Highs(), s.Lows(), s.Closes(), e.cfg.Period)
	if err != nil {
		return flat(WilliamsR)
	}

	switch {
	case r < e.cfg.Oversold:
		return vote(WilliamsR, market.Up, 0.5+0.5*(e.cfg.Oversold-r)/(e.cfg.Oversold+100))
	case r > e.cfg.Overbought:
		return vote(WilliamsR, market.Down, 0.5+0.5*(r-e.cfg.Overbought)/-e.cfg.Overbought)
	}
	return flat(WilliamsR)
}
