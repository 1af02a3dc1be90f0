package indicators

// SMA returns the mean of the last period closes.
func SMA(closes []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}
	if err := need(period, len(closes)); err != nil {
		return 0, err
	}
	return mean(closes[len(closes)-period:]), nil
}

// ROC returns the rate of change, in percent, between the last close and
// the close period bars earlier.
func ROC(closes []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}
	if err := need(period+1, len(closes)); err != nil {
		return 0, err
	}
	last := closes[len(closes)-1]
	base := closes[len(closes)-1-period]
	if base == 0 {
		return 0, nil
	}
	return (last - base) / base * 100, nil
}
