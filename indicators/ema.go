package indicators

import "fmt"

// emaSeries returns the exponential moving average of xs. The first value,
// at xs index period-1, is the SMA of the first period values.
func emaSeries(xs []float64, period int) []float64 {
	k := 2 / float64(period+1)
	prev := mean(xs[:period])
	out := make([]float64, 0, len(xs)-period+1)
	out = append(out, prev)
	for _, x := range xs[period:] {
		prev += (x - prev) * k
		out = append(out, prev)
	}
	return out
}

// EMA returns the exponential moving average of closes, seeded with the SMA
// of the first period closes.
func EMA(closes []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}
	if err := need(period, len(closes)); err != nil {
		return 0, err
	}
	s := emaSeries(closes, period)
	return s[len(s)-1], nil
}

type MACDReading struct {
	MACD   float64 // EMA(fast) - EMA(slow)
	Signal float64 // EMA(signal) of the MACD line
	Hist   float64 // MACD - Signal
}

// MACD needs slow+signal-1 closes: the signal line starts at the first bar
// where both averages exist.
func MACD(closes []float64, fast, slow, signal int) (MACDReading, error) {
	for _, p := range []int{fast, slow, signal} {
		if err := checkPeriod(p); err != nil {
			return MACDReading{}, err
		}
	}
	if fast >= slow {
		return MACDReading{}, fmt.Errorf("fast period %d must be below slow period %d", fast, slow)
	}
	if err := need(slow+signal-1, len(closes)); err != nil {
		return MACDReading{}, err
	}

	f := emaSeries(closes, fast)
	s := emaSeries(closes, slow)
	off := slow - fast
	line := make([]float64, len(s))
	for i := range s {
		line[i] = f[i+off] - s[i]
	}
	sig := emaSeries(line, signal)

	m, sg := line[len(line)-1], sig[len(sig)-1]
	return MACDReading{MACD: m, Signal: sg, Hist: m - sg}, nil
}
