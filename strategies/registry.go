package strategies

import (
	"fmt"
	"strings"
)

// Kind identifies an evaluator variant. The set is fixed; configuration
// selects from it.
type Kind string

const (
	MACross   Kind = "ma_cross"
	RSI       Kind = "rsi"
	Bollinger Kind = "bollinger"
	Breakout  Kind = "breakout"
	Momentum  Kind = "momentum"

	MACD       Kind = "macd"
	Stochastic Kind = "stochastic"
	WilliamsR  Kind = "williams_r"
)

type factory func(Config) Evaluator

// registry is built once at init; order gives evaluators a stable sequence.
var (
	order    = []Kind{MACross, RSI, Bollinger, Breakout, Momentum, MACD, Stochastic, WilliamsR}
	registry = map[Kind]factory{
		MACross:   func(c Config) Evaluator { return NewMACross(c.MACross) },
		RSI:       func(c Config) Evaluator { return NewRSI(c.RSI) },
		Bollinger: func(c Config) Evaluator { return NewBollinger(c.Bollinger) },
		Breakout:  func(c Config) Evaluator { return NewBreakout(c.Breakout) },
		Momentum:  func(c Config) Evaluator { return NewMomentum(c.Momentum) },

		MACD:       func(c Config) Evaluator { return NewMACD(c.MACD) },
		Stochastic: func(c Config) Evaluator { return NewStochastic(c.Stochastic) },
		WilliamsR:  func(c Config) Evaluator { return NewWilliamsR(c.WilliamsR) },
	}
)

// Kinds lists every known evaluator kind.
func Kinds() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := registry[k]; !ok {
		return "", fmt.Errorf("unknown evaluator %q (supported: %v)", s, order)
	}
	return k, nil
}

// Build validates cfg and returns the enabled evaluators in registry order.
func Build(cfg Config) ([]Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var evals []Evaluator
	for _, k := range order {
		if !cfg.enabled(k) {
			continue
		}
		evals = append(evals, registry[k](cfg))
	}
	if len(evals) == 0 {
		return nil, fmt.Errorf("no evaluators enabled")
	}
	return evals, nil
}
