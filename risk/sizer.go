package risk

import (
	"errors"
	"fmt"

	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/shopspring/decimal"
)

// ErrNoStake is returned when a decision carries nothing to size: a Flat
// direction or zero confidence.
var ErrNoStake = errors.New("nothing to size")

// SizerConfig sets the stake bounds. MinStake is the broker's minimum stake
// and StakeStep its smallest stake increment. SymbolMinStake overrides
// MinStake per symbol.
type SizerConfig struct {
	BaseStake      float64            `yaml:"base_stake_amount" json:"base_stake_amount"`
	MinStake       float64            `yaml:"min_stake" json:"min_stake"`
	MaxStake       float64            `yaml:"max_stake" json:"max_stake"`
	StakeStep      float64            `yaml:"stake_step" json:"stake_step"`
	SymbolMinStake map[string]float64 `yaml:"symbol_min_stake,omitempty" json:"symbol_min_stake,omitempty"`
}

func DefaultSizerConfig() SizerConfig {
	return SizerConfig{
		BaseStake: 1.00,
		MinStake:  0.35,
		MaxStake:  200,
		StakeStep: 0.01,
	}
}

func (c SizerConfig) Validate() error {
	if c.BaseStake <= 0 {
		return fmt.Errorf("base_stake_amount must be > 0")
	}
	if c.StakeStep <= 0 {
		return fmt.Errorf("stake_step must be > 0")
	}
	if c.MinStake < 0 {
		return fmt.Errorf("min_stake must be >= 0")
	}
	if c.MaxStake <= 0 || c.MaxStake < c.MinStake {
		return fmt.Errorf("max_stake must be > 0 and >= min_stake")
	}
	for sym, m := range c.SymbolMinStake {
		if m < 0 || m > c.MaxStake {
			return fmt.Errorf("symbol_min_stake[%s] must be within [0, max_stake]", sym)
		}
	}
	return nil
}

// Sizer turns an approved decision into a stake.
type Sizer struct {
	cfg SizerConfig
}

func NewSizer(cfg SizerConfig) (*Sizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sizer{cfg: cfg}, nil
}

// MinStake returns the minimum stake for symbol.
func (s *Sizer) MinStake(symbol string) float64 {
	if m, ok := s.cfg.SymbolMinStake[symbol]; ok {
		return m
	}
	return s.cfg.MinStake
}

// Size computes
//
//	base * confidence * multiplier / activeInstruments
//
// floors it to the stake step and clamps it to [MinStake(symbol), MaxStake].
func (s *Sizer) Size(symbol string, dir market.Direction, confidence, multiplier float64, activeInstruments int) (market.TradeProposal, error) {
	if dir == market.Flat || confidence <= 0 || multiplier <= 0 {
		return market.TradeProposal{}, ErrNoStake
	}
	if activeInstruments < 1 {
		activeInstruments = 1
	}

	raw := decimal.NewFromFloat(s.cfg.BaseStake).
		Mul(decimal.NewFromFloat(confidence)).
		Mul(decimal.NewFromFloat(multiplier)).
		Div(decimal.NewFromInt(int64(activeInstruments)))

	step := decimal.NewFromFloat(s.cfg.StakeStep)
	stake := raw.Div(step).Floor().Mul(step)

	if lo := decimal.NewFromFloat(s.MinStake(symbol)); stake.LessThan(lo) {
		stake = lo
	}
	if hi := decimal.NewFromFloat(s.cfg.MaxStake); stake.GreaterThan(hi) {
		stake = hi
	}

	rawF, _ := raw.Float64()
	stakeF, _ := stake.Float64()
	return market.TradeProposal{
		Symbol:     symbol,
		Direction:  dir,
		Confidence: confidence,
		RawStake:   rawF,
		Stake:      stakeF,
	}, nil
}
