package indicators

// RSI computes the relative strength index with Wilder smoothing. The first
// averages are the simple means of the first period gains and losses; each
// later change is folded in as avg = (avg*(period-1) + x) / period.
//
// The result is in [0,100]. A series with no losses reads 100; a series with
// no movement at all reads 50.
func RSI(closes []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}
	if err := need(period+1, len(closes)); err != nil {
		return 0, err
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain += gain
		avgLoss += loss
	}
	p := float64(period)
	avgGain /= p
	avgLoss /= p

	for i := period + 1; i < len(closes); i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
	}

	switch {
	case avgLoss == 0 && avgGain == 0:
		return 50, nil
	case avgLoss == 0:
		return 100, nil
	}

	rs := avgGain / avgLoss
	rsi := 100 - 100/(1+rs)
	return clamp(rsi, 0, 100), nil
}

func split(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
