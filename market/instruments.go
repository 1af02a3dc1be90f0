package market

// Instrument describes a synthetic index. Volatility is the annualised
// volatility the index is generated with, as a fraction.
type Instrument struct {
	Symbol      string
	Name        string
	Volatility  float64
	StartPrice  float64
	MinStake    float64
	Granularity int // seconds per bar
}

var Instruments = map[string]Instrument{
	"R_10": {
		Symbol:      "R_10",
		Name:        "Volatility 10 Index",
		Volatility:  0.10,
		StartPrice:  6000,
		MinStake:    0.35,
		Granularity: 60,
	},
	"R_25": {
		Symbol:      "R_25",
		Name:        "Volatility 25 Index",
		Volatility:  0.25,
		StartPrice:  2500,
		MinStake:    0.35,
		Granularity: 60,
	},
	"R_50": {
		Symbol:      "R_50",
		Name:        "Volatility 50 Index",
		Volatility:  0.50,
		StartPrice:  250,
		MinStake:    0.35,
		Granularity: 60,
	},
	"R_75": {
		Symbol:      "R_75",
		Name:        "Volatility 75 Index",
		Volatility:  0.75,
		StartPrice:  50000,
		MinStake:    0.35,
		Granularity: 60,
	},
	"R_100": {
		Symbol:      "R_100",
		Name:        "Volatility 100 Index",
		Volatility:  1.00,
		StartPrice:  1000,
		MinStake:    0.35,
		Granularity: 60,
	},
}

// LookupInstrument returns the instrument metadata for symbol.
func LookupInstrument(symbol string) (Instrument, bool) {
	in, ok := Instruments[symbol]
	return in, ok
}
