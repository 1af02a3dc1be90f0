package strategies

import (
	"fmt"
	"math"

	"github.com/1cbyc/1cbyc-trading-bot/indicators"
	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// MACrossEvaluator votes with the sign of SMA(short) - SMA(long). Strength
// is the gap relative to the long average, scaled so FullScaleGap reads 1.
type MACrossEvaluator struct {
	cfg MACrossConfig
}

func NewMACross(cfg MACrossConfig) *MACrossEvaluator {
	return &MACrossEvaluator{cfg: cfg}
}

func (e *MACrossEvaluator) Kind() Kind { return MACross }

func (e *MACrossEvaluator) Name() string {
	return fmt.Sprintf("MA Crossover(%d,%d)", e.cfg.Short, e.cfg.Long)
}

func (e *MACrossEvaluator) Warmup() int { return e.cfg.Long }

func (e *MACrossEvaluator) Evaluate(s Series) Vote {
	closes := s.Closes()

	short, err := indicators.SMA(closes, e.cfg.Short)
	if err != nil {
		return flat(MACross)
	}
	long, err := indicators.SMA(closes, e.cfg.Long)
	if err != nil || long == 0 {
		return flat(MACross)
	}

	gap := (short - long) / math.Abs(long)
	strength := math.Abs(gap) / e.cfg.FullScaleGap

	switch {
	case short > long:
		return vote(MACross, market.Up, strength)
	case short < long:
		return vote(MACross, market.Down, strength)
	}
	return flat(MACross)
}
