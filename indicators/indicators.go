// Package indicators provides technical analysis indicators computed over
// ordered price series, oldest value first.
package indicators

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientData is returned when a series is shorter than the
// indicator's lookback. Callers treat it as "no opinion", not as a fault.
var ErrInsufficientData = errors.New("insufficient data")

func need(n, got int) error {
	if got < n {
		return fmt.Errorf("%w: need %d, got %d", ErrInsufficientData, n, got)
	}
	return nil
}

func checkPeriod(period int) error {
	if period <= 0 {
		return fmt.Errorf("period must be positive, got %d", period)
	}
	return nil
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the population standard deviation of xs around m.
func stddev(xs []float64, m float64) float64 {
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}
