// Package consensus folds evaluator votes into one directional decision.
package consensus

import (
	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/1cbyc/1cbyc-trading-bot/strategies"
)

// Decision is the aggregated call for one evaluation cycle. Confidence is
// the raw aggregate; applying a threshold is the caller's job.
type Decision struct {
	Direction  market.Direction  `json:"direction"`
	Confidence float64           `json:"confidence"`
	Up         int               `json:"up"`
	Down       int               `json:"down"`
	Votes      []strategies.Vote `json:"votes"`
}

// Tradeable reports whether the decision clears threshold.
func (d Decision) Tradeable(threshold float64) bool {
	return d.Direction != market.Flat && d.Confidence > 0 && d.Confidence >= threshold
}

// Aggregate picks the direction with the most non-Flat votes, breaking
// count ties by summed strength. Equal counts and equal strength read Flat.
//
// Confidence is the summed strength of the winning side divided by
// configured, the number of evaluators the engine runs, so abstentions
// dilute it. A non-positive configured falls back to len(votes).
func Aggregate(votes []strategies.Vote, configured int) Decision {
	d := Decision{Direction: market.Flat, Votes: votes}

	var upStrength, downStrength float64
	for _, v := range votes {
		switch v.Direction {
		case market.Up:
			d.Up++
			upStrength += v.Strength
		case market.Down:
			d.Down++
			downStrength += v.Strength
		}
	}

	var sum float64
	switch {
	case d.Up > d.Down:
		d.Direction, sum = market.Up, upStrength
	case d.Down > d.Up:
		d.Direction, sum = market.Down, downStrength
	case d.Up == 0:
		return d
	case upStrength > downStrength:
		d.Direction, sum = market.Up, upStrength
	case downStrength > upStrength:
		d.Direction, sum = market.Down, downStrength
	default:
		return d
	}

	if configured <= 0 {
		configured = len(votes)
	}
	d.Confidence = clip(sum / float64(configured))
	if d.Confidence == 0 {
		d.Direction = market.Flat
	}
	return d
}

func clip(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
