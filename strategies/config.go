package strategies

import "fmt"

type MACrossConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Short   int  `yaml:"short" json:"short"`
	Long    int  `yaml:"long" json:"long"`
	// FullScaleGap is the relative gap between the averages that maps to
	// strength 1.
	FullScaleGap float64 `yaml:"full_scale_gap" json:"full_scale_gap"`
}

type RSIConfig struct {
	Enabled    bool    `yaml:"enabled" json:"enabled"`
	Period     int     `yaml:"period" json:"period"`
	Oversold   float64 `yaml:"oversold" json:"oversold"`
	Overbought float64 `yaml:"overbought" json:"overbought"`
}

type BollingerConfig struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Period  int     `yaml:"period" json:"period"`
	K       float64 `yaml:"k" json:"k"`
}

type BreakoutConfig struct {
	Enabled    bool    `yaml:"enabled" json:"enabled"`
	Period     int     `yaml:"period" json:"period"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

type MomentumConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Period  int  `yaml:"period" json:"period"`
	// Threshold and FullScale are rate-of-change percentages.
	Threshold float64 `yaml:"threshold" json:"threshold"`
	FullScale float64 `yaml:"full_scale" json:"full_scale"`
}

type MACDConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Fast    int  `yaml:"fast" json:"fast"`
	Slow    int  `yaml:"slow" json:"slow"`
	Signal  int  `yaml:"signal" json:"signal"`
	// FullScale is the histogram, relative to the last close, that maps to
	// strength 1.
	FullScale float64 `yaml:"full_scale" json:"full_scale"`
}

type StochasticConfig struct {
	Enabled    bool    `yaml:"enabled" json:"enabled"`
	KPeriod    int     `yaml:"k_period" json:"k_period"`
	DPeriod    int     `yaml:"d_period" json:"d_period"`
	Oversold   float64 `yaml:"oversold" json:"oversold"`
	Overbought float64 `yaml:"overbought" json:"overbought"`
}

// WilliamsRConfig thresholds are on the -100..0 scale.
type WilliamsRConfig struct {
	Enabled    bool    `yaml:"enabled" json:"enabled"`
	Period     int     `yaml:"period" json:"period"`
	Oversold   float64 `yaml:"oversold" json:"oversold"`
	Overbought float64 `yaml:"overbought" json:"overbought"`
}

// Config selects evaluators and sets their windows.
type Config struct {
	MACross    MACrossConfig    `yaml:"ma_cross" json:"ma_cross"`
	RSI        RSIConfig        `yaml:"rsi" json:"rsi"`
	Bollinger  BollingerConfig  `yaml:"bollinger" json:"bollinger"`
	Breakout   BreakoutConfig   `yaml:"breakout" json:"breakout"`
	Momentum   MomentumConfig   `yaml:"momentum" json:"momentum"`
	MACD       MACDConfig       `yaml:"macd" json:"macd"`
	Stochastic StochasticConfig `yaml:"stochastic" json:"stochastic"`
	WilliamsR  WilliamsRConfig  `yaml:"williams_r" json:"williams_r"`
}

// DefaultConfig enables the four core evaluators. Momentum, MACD,
// Stochastic and Williams %R are opt-in.
func DefaultConfig() Config {
	return Config{
		MACross:    MACrossConfig{Enabled: true, Short: 10, Long: 20, FullScaleGap: 0.002},
		RSI:        RSIConfig{Enabled: true, Period: 14, Oversold: 30, Overbought: 70},
		Bollinger:  BollingerConfig{Enabled: true, Period: 20, K: 2},
		Breakout:   BreakoutConfig{Enabled: true, Period: 20, Multiplier: 1.5},
		Momentum:   MomentumConfig{Enabled: false, Period: 10, Threshold: 0.5, FullScale: 10},
		MACD:       MACDConfig{Enabled: false, Fast: 12, Slow: 26, Signal: 9, FullScale: 0.001},
		Stochastic: StochasticConfig{Enabled: false, KPeriod: 14, DPeriod: 3, Oversold: 20, Overbought: 80},
		WilliamsR:  WilliamsRConfig{Enabled: false, Period: 14, Oversold: -80, Overbought: -20},
	}
}

func (c Config) enabled(k Kind) bool {
	switch k {
	case MACross:
		return c.MACross.Enabled
	case RSI:
		return c.RSI.Enabled
	case Bollinger:
		return c.Bollinger.Enabled
	case Breakout:
		return c.Breakout.Enabled
	case Momentum:
		return c.Momentum.Enabled
	case MACD:
		return c.MACD.Enabled
	case Stochastic:
		return c.Stochastic.Enabled
	case WilliamsR:
		return c.WilliamsR.Enabled
	}
	return false
}

// Count returns the number of enabled evaluators.
func (c Config) Count() int {
	n := 0
	for _, k := range order {
		if c.enabled(k) {
			n++
		}
	}
	return n
}

func (c Config) Validate() error {
	if m := c.MACross; m.Enabled {
		if m.Short <= 0 || m.Long <= 0 {
			return fmt.Errorf("ma_cross: windows must be positive")
		}
		if m.Short >= m.Long {
			return fmt.Errorf("ma_cross: short window %d must be below long window %d", m.Short, m.Long)
		}
		if m.FullScaleGap <= 0 {
			return fmt.Errorf("ma_cross: full_scale_gap must be > 0")
		}
	}
	if r := c.RSI; r.Enabled {
		if r.Period <= 0 {
			return fmt.Errorf("rsi: period must be positive")
		}
		if !(0 < r.Oversold && r.Oversold < r.Overbought && r.Overbought < 100) {
			return fmt.Errorf("rsi: need 0 < oversold < overbought < 100, got %g/%g", r.Oversold, r.Overbought)
		}
	}
	if b := c.Bollinger; b.Enabled {
		if b.Period <= 1 {
			return fmt.Errorf("bollinger: period must be > 1")
		}
		if b.K <= 0 {
			return fmt.Errorf("bollinger: k must be > 0")
		}
	}
	if b := c.Breakout; b.Enabled {
		if b.Period <= 0 {
			return fmt.Errorf("breakout: period must be positive")
		}
		if b.Multiplier <= 0 {
			return fmt.Errorf("breakout: multiplier must be > 0")
		}
	}
	if m := c.Momentum; m.Enabled {
		if m.Period <= 0 {
			return fmt.Errorf("momentum: period must be positive")
		}
		if m.Threshold < 0 || m.FullScale <= 0 {
			return fmt.Errorf("momentum: threshold must be >= 0 and full_scale > 0")
		}
	}
	if m := c.MACD; m.Enabled {
		if m.Fast <= 0 || m.Slow <= 0 || m.Signal <= 0 {
			return fmt.Errorf("macd: periods must be positive")
		}
		if m.Fast >= m.Slow {
			return fmt.Errorf("macd: fast period %d must be below slow period %d", m.Fast, m.Slow)
		}
		if m.FullScale <= 0 {
			return fmt.Errorf("macd: full_scale must be > 0")
		}
	}
	if s := c.Stochastic; s.Enabled {
		if s.KPeriod <= 0 || s.DPeriod <= 0 {
			return fmt.Errorf("stochastic: periods must be positive")
		}
		if !(0 < s.Oversold && s.Oversold < s.Overbought && s.Overbought < 100) {
			return fmt.Errorf("stochastic: need 0 < oversold < overbought < 100, got %g/%g", s.Oversold, s.Overbought)
		}
	}
	if w := c.WilliamsR; w.Enabled {
		if w.Period <= 0 {
			return fmt.Errorf("williams_r: period must be positive")
		}
		if !(-100 < w.Oversold && w.Oversold < w.Overbought && w.Overbought < 0) {
			return fmt.Errorf("williams_r: need -100 < oversold < overbought < 0, got %g/%g", w.Oversold, w.Overbought)
		}
	}
	return nil
}
