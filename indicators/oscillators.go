package indicators

// percentK places closes[end] within the high/low range of the period bars
// ending at end, from 0 at the low to 100 at the high. A flat range reads 50.
func percentK(highs, lows, closes []float64, end, period int) float64 {
	hh, ll := highs[end], lows[end]
	for i := end - period + 1; i < end; i++ {
		if highs[i] > hh {
			hh = highs[i]
		}
		if lows[i] < ll {
			ll = lows[i]
		}
	}
	if hh == ll {
		return 50
	}
	return 100 * (closes[end] - ll) / (hh - ll)
}

// StochasticReading is the fast stochastic: %K and its SMA, %D.
type StochasticReading struct {
	K float64
	D float64
}

// Stochastic needs kPeriod+dPeriod-1 bars.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) (StochasticReading, error) {
	if err := checkPeriod(kPeriod); err != nil {
		return StochasticReading{}, err
	}
	if err := checkPeriod(dPeriod); err != nil {
		return StochasticReading{}, err
	}
	if err := sameLen(highs, lows, closes); err != nil {
		return StochasticReading{}, err
	}
	if err := need(kPeriod+dPeriod-1, len(closes)); err != nil {
		return StochasticReading{}, err
	}

	n := len(closes)
	var k, sum float64
	for i := n - dPeriod; i < n; i++ {
		k = percentK(highs, lows, closes, i, kPeriod)
		sum += k
	}
	return StochasticReading{K: k, D: sum / float64(dPeriod)}, nil
}

// WilliamsR returns %R in [-100, 0]: -100 at the period low, 0 at the high.
func WilliamsR(highs, lows, closes []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}
	if err := sameLen(highs, lows, closes); err != nil {
		return 0, err
	}
	if err := need(period, len(closes)); err != nil {
		return 0, err
	}
	return percentK(highs, lows, closes, len(closes)-1, period) - 100, nil
}
