package risk

import (
	"testing"

	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeScalesByConfidenceAndStreak(t *testing.T) {
	t.Parallel()

	cfg := DefaultSizerConfig()
	cfg.MinStake = 0.01
	s, err := NewSizer(cfg)
	require.NoError(t, err)

	// base 1.00, confidence 0.5, two losses
	mult := Multiplier(DefaultLimits(), 2)
	p, err := s.Size("R_100", market.Up, 0.5, mult, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.30, p.RawStake, 1e-12)
	assert.InDelta(t, 0.30, p.Stake, 1e-12)
	assert.Equal(t, market.Up, p.Direction)
	assert.Equal(t, "R_100", p.Symbol)
	assert.Equal(t, 0.5, p.Confidence)
}

func TestSizeClampsAndFloors(t *testing.T) {
	t.Parallel()

	cfg := SizerConfig{
		BaseStake:      10,
		MinStake:       0.35,
		MaxStake:       5,
		StakeStep:      0.01,
		SymbolMinStake: map[string]float64{"R_50": 4},
	}
	s, err := NewSizer(cfg)
	require.NoError(t, err)

	tests := []struct {
		name   string
		symbol string
		conf   float64
		mult   float64
		active int
		want   float64
	}{
		{"floored to step", "R_100", 0.4567, 1, 1, 4.56},
		{"capped at max", "R_100", 0.9, 1, 1, 5},
		{"raised to min", "R_100", 0.02, 1, 1, 0.35},
		{"split across instruments", "R_100", 0.45, 1, 2, 2.25},
		{"symbol minimum", "R_50", 0.1, 1, 1, 4},
		{"active below one", "R_100", 0.3, 1, 0, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := s.Size(tt.symbol, market.Down, tt.conf, tt.mult, tt.active)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, p.Stake, 1e-9)
		})
	}
}

func TestSizeNothingToSize(t *testing.T) {
	t.Parallel()

	s, err := NewSizer(DefaultSizerConfig())
	require.NoError(t, err)

	_, err = s.Size("R_100", market.Flat, 0.8, 1, 1)
	assert.ErrorIs(t, err, ErrNoStake)
	_, err = s.Size("R_100", market.Up, 0, 1, 1)
	assert.ErrorIs(t, err, ErrNoStake)
}

func TestSizerConfigValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultSizerConfig().Validate())

	tests := []SizerConfig{
		{BaseStake: 0, MinStake: 0.35, MaxStake: 200, StakeStep: 0.01},
		{BaseStake: 1, MinStake: 0.35, MaxStake: 200, StakeStep: 0},
		{BaseStake: 1, MinStake: 10, MaxStake: 5, StakeStep: 0.01},
		{BaseStake: 1, MinStake: 0.35, MaxStake: 5, StakeStep: 0.01, SymbolMinStake: map[string]float64{"R_10": 6}},
	}
	for i, c := range tests {
		_, err := NewSizer(c)
		assert.Error(t, err, "case %d", i)
	}
}
