package risk

import (
	"fmt"
	"math"
)

// Limits are the per-account daily risk limits. A zero or negative limit
// disables that check.
type Limits struct {
	MaxDailyTrades       int     `yaml:"max_daily_trades" json:"max_daily_trades"`
	MaxDailyLoss         float64 `yaml:"max_daily_loss" json:"max_daily_loss"`
	MaxConsecutiveLosses int     `yaml:"max_consecutive_losses" json:"max_consecutive_losses"`
	MaxDrawdownFraction  float64 `yaml:"max_drawdown_fraction" json:"max_drawdown_fraction"`

	// Stake scaling after losses: max(LossScaleFloor, 1 - LossScaleStep*losses).
	LossScaleStep  float64 `yaml:"loss_scale_step" json:"loss_scale_step"`
	LossScaleFloor float64 `yaml:"loss_scale_floor" json:"loss_scale_floor"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxDailyTrades:       20,
		MaxDailyLoss:         50,
		MaxConsecutiveLosses: 10,
		MaxDrawdownFraction:  0.20,
		LossScaleStep:        0.2,
		LossScaleFloor:       0.2,
	}
}

func (l Limits) Validate() error {
	if l.MaxDailyTrades < 0 {
		return fmt.Errorf("max_daily_trades must be >= 0")
	}
	if l.MaxDailyLoss < 0 {
		return fmt.Errorf("max_daily_loss must be >= 0")
	}
	if l.MaxConsecutiveLosses < 0 {
		return fmt.Errorf("max_consecutive_losses must be >= 0")
	}
	if l.MaxDrawdownFraction < 0 || l.MaxDrawdownFraction > 1 {
		return fmt.Errorf("max_drawdown_fraction must be within [0,1], got %g", l.MaxDrawdownFraction)
	}
	if l.LossScaleStep < 0 || l.LossScaleStep > 1 {
		return fmt.Errorf("loss_scale_step must be within [0,1], got %g", l.LossScaleStep)
	}
	if l.LossScaleFloor < 0 || l.LossScaleFloor > 1 {
		return fmt.Errorf("loss_scale_floor must be within [0,1], got %g", l.LossScaleFloor)
	}
	return nil
}

// Multiplier is the stake scaling factor for a loss streak.
func Multiplier(l Limits, consecutiveLosses int) float64 {
	m := 1 - l.LossScaleStep*float64(consecutiveLosses)
	return math.Min(1, math.Max(l.LossScaleFloor, m))
}
