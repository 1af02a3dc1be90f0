package indicators

import "fmt"

// Bands holds one Bollinger reading.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
	StdDev float64
}

// Width is the distance between the upper and lower band.
func (b Bands) Width() float64 {
	return b.Upper - b.Lower
}

// Bollinger returns SMA(period) plus and minus k population standard
// deviations of the last period closes.
func Bollinger(closes []float64, period int, k float64) (Bands, error) {
	if err := checkPeriod(period); err != nil {
		return Bands{}, err
	}
	if k <= 0 {
		return Bands{}, fmt.Errorf("band multiplier must be positive, got %g", k)
	}
	if err := need(period, len(closes)); err != nil {
		return Bands{}, err
	}

	window := closes[len(closes)-period:]
	m := mean(window)
	sd := stddev(window, m)

	return Bands{
		Upper:  m + k*sd,
		Middle: m,
		Lower:  m - k*sd,
		StdDev: sd,
	}, nil
}
