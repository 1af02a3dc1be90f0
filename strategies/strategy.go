// Package strategies maps a bar history to directional votes. Each
// evaluator wraps one indicator family and emits exactly one Vote per cycle.
package strategies

import (
	"math"

	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// Series is the read side of a bar history, oldest value first.
// *market.BarSet satisfies it.
type Series interface {
	Closes() []float64
	Highs() []float64
	Lows() []float64
}

// Vote is one evaluator's opinion for the current cycle.
type Vote struct {
	Source    Kind             `json:"source"`
	Direction market.Direction `json:"direction"`
	Strength  float64          `json:"strength"` // in [0,1]
}

// Evaluator produces one vote from a bar history. Evaluators never fail: a
// history too short for the indicator yields a Flat vote with strength 0.
type Evaluator interface {
	Kind() Kind
	Name() string
	// Warmup is the number of bars needed before a non-Flat vote is possible.
	Warmup() int
	Evaluate(s Series) Vote
}

func flat(k Kind) Vote {
	return Vote{Source: k, Direction: market.Flat}
}

func vote(k Kind, d market.Direction, strength float64) Vote {
	if d == market.Flat || math.IsNaN(strength) {
		return flat(k)
	}
	return Vote{Source: k, Direction: d, Strength: unit(strength)}
}

// unit clips v into [0,1].
func unit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// EvaluateAll runs every evaluator against the same history.
func EvaluateAll(evals []Evaluator, s Series) []Vote {
	votes := make([]Vote, 0, len(evals))
	for _, e := range evals {
		votes = append(votes, e.Evaluate(s))
	}
	return votes
}
