package market

import (
	"fmt"
	"time"
)

// Bar is one OHLC sample for a fixed interval. Bars are treated as
// immutable once recorded.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Range returns the high-low span of the bar.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// Validate reports bars whose prices cannot describe a real sample.
func (b Bar) Validate() error {
	if b.Time.IsZero() {
		return fmt.Errorf("bar has zero timestamp")
	}
	if b.High < b.Low {
		return fmt.Errorf("bar %s: high %.5f below low %.5f", b.Time.Format(time.RFC3339), b.High, b.Low)
	}
	if b.Close > b.High || b.Close < b.Low || b.Open > b.High || b.Open < b.Low {
		return fmt.Errorf("bar %s: open/close outside high/low", b.Time.Format(time.RFC3339))
	}
	return nil
}
