package indicators

import (
	"fmt"
	"math"
)

// TrueRange is the largest of the bar's own span and its gaps from the
// previous close.
func TrueRange(high, low, prevClose float64) float64 {
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}

// ATR returns the mean true range of the last period bars.
func ATR(highs, lows, closes []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}
	if err := sameLen(highs, lows, closes); err != nil {
		return 0, err
	}
	if err := need(period+1, len(closes)); err != nil {
		return 0, err
	}
	n := len(closes)
	sum := 0.0
	for i := n - period; i < n; i++ {
		sum += TrueRange(highs[i], lows[i], closes[i-1])
	}
	return sum / float64(period), nil
}

// BreakoutReading compares the newest bar's true range with the mean true
// range of the period bars before it.
type BreakoutReading struct {
	Range    float64 // true range of the newest bar
	AvgRange float64 // mean true range of the preceding bars
	Ratio    float64 // Range / AvgRange; +Inf when the average is zero
	Move     float64 // close-to-close change of the newest bar
	Breakout bool
}

// Breakout flags a breakout when the newest bar's range exceeds the average
// range by more than multiplier. It needs period+2 bars so that every range
// in the comparison has a previous close.
func Breakout(highs, lows, closes []float64, period int, multiplier float64) (BreakoutReading, error) {
	if err := checkPeriod(period); err != nil {
		return BreakoutReading{}, err
	}
	if multiplier <= 0 {
		return BreakoutReading{}, fmt.Errorf("breakout multiplier must be positive, got %g", multiplier)
	}
	if err := sameLen(highs, lows, closes); err != nil {
		return BreakoutReading{}, err
	}
	if err := need(period+2, len(closes)); err != nil {
		return BreakoutReading{}, err
	}

	n := len(closes)
	last := n - 1

	avg := 0.0
	for i := last - period; i < last; i++ {
		avg += TrueRange(highs[i], lows[i], closes[i-1])
	}
	avg /= float64(period)

	r := BreakoutReading{
		Range:    TrueRange(highs[last], lows[last], closes[last-1]),
		AvgRange: avg,
		Move:     closes[last] - closes[last-1],
	}

	switch {
	case avg > 0:
		r.Ratio = r.Range / avg
	case r.Range > 0:
		r.Ratio = math.Inf(1)
	}
	r.Breakout = r.Ratio > multiplier
	return r, nil
}

func sameLen(highs, lows, closes []float64) error {
	if len(highs) != len(closes) || len(lows) != len(closes) {
		return fmt.Errorf("series length mismatch: highs %d, lows %d, closes %d", len(highs), len(lows), len(closes))
	}
	return nil
}
