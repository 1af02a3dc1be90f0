package strategies

import (
	"fmt"

	"github.com/1cbyc/1cbyc-trading-bot/indicators"
	"github.com/1cbyc/1cbyc-trading-bot/market"
)

// BollingerEvaluator fades closes outside the bands: Up at or below the
// lower band, Down at or above the upper band. A touch reads 0.5 and a close
// a full half-band beyond the band reads 1.
type BollingerEvaluator struct {
	cfg BollingerConfig
}

func NewBollinger(cfg BollingerConfig) *BollingerEvaluator {
	return &BollingerEvaluator{cfg: cfg}
}

func (e *BollingerEvaluator) Kind() Kind { return Bollinger }

func (e *BollingerEvaluator) Name() string {
	return fmt.Sprintf("Bollinger(%d,%g)", e.cfg.Period, e.cfg.K)
}

func (e *BollingerEvaluator) Warmup() int { return e.cfg.Period }

func (e *BollingerEvaluator) Evaluate(s Series) Vote {
	closes := s.Closes()
	bands, err := indicators.Bollinger(closes, e.cfg.Period, e.cfg.K)
	if err != nil || bands.StdDev == 0 {
		// collapsed bands carry no information
		return flat(Bollinger)
	}

	last := closes[len(closes)-1]
	half := bands.Upper - bands.Middle

	switch {
	case last <= bands.Lower:
		return vote(Bollinger, market.Up, 0.5+0.5*(bands.Lower-last)/half)
	case last >= bands.Upper:
		return vote(Bollinger, market.Down, 0.5+0.5*(last-bands.Upper)/half)
	}
	return flat(Bollinger)
}
