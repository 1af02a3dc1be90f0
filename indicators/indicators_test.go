package indicators

import (
	"math"
	"testing"

	talib "github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a choppy series with gains and losses so every reference value is defined
var closes = []float64{
	100.0, 101.2, 100.7, 102.3, 101.9, 103.4, 102.8, 104.1, 103.0, 102.2,
	103.7, 105.0, 104.6, 103.9, 105.8, 106.3, 105.1, 104.4, 106.0, 107.2,
	106.5, 108.1, 107.4, 106.8, 108.9,
}

func highsLows(cs []float64) (highs, lows []float64) {
	highs = make([]float64, len(cs))
	lows = make([]float64, len(cs))
	for i, c := range cs {
		highs[i] = c + 0.6
		lows[i] = c - 0.4
	}
	return highs, lows
}

func TestSMAMatchesTalib(t *testing.T) {
	t.Parallel()

	for _, period := range []int{5, 10, 20} {
		got, err := SMA(closes, period)
		require.NoError(t, err)
		want := talib.Sma(closes, period)
		assert.InDelta(t, want[len(want)-1], got, 1e-9, "period %d", period)
	}
}

func TestSMAInsufficientData(t *testing.T) {
	t.Parallel()

	_, err := SMA(closes[:4], 5)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), "need 5, got 4")

	_, err = SMA(closes, 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientData)
}

func TestRSIMatchesTalib(t *testing.T) {
	t.Parallel()

	got, err := RSI(closes, 14)
	require.NoError(t, err)
	want := talib.Rsi(closes, 14)
	assert.InDelta(t, want[len(want)-1], got, 1e-6)
	assert.True(t, got >= 0 && got <= 100)
}

func TestRSIEdges(t *testing.T) {
	t.Parallel()

	_, err := RSI(closes[:14], 14)
	assert.ErrorIs(t, err, ErrInsufficientData)

	rising := make([]float64, 20)
	flat := make([]float64, 20)
	for i := range rising {
		rising[i] = 100 + float64(i)
		flat[i] = 100
	}

	v, err := RSI(rising, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	v, err = RSI(flat, 14)
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	falling := make([]float64, 20)
	for i := range falling {
		falling[i] = 100 - float64(i)
	}
	v, err = RSI(falling, 14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestBollingerMatchesTalib(t *testing.T) {
	t.Parallel()

	got, err := Bollinger(closes, 20, 2)
	require.NoError(t, err)

	upper, middle, lower := talib.BBands(closes, 20, 2, 2, talib.SMA)
	n := len(closes) - 1
	assert.InDelta(t, upper[n], got.Upper, 1e-9)
	assert.InDelta(t, middle[n], got.Middle, 1e-9)
	assert.InDelta(t, lower[n], got.Lower, 1e-9)
	assert.InDelta(t, got.Upper-got.Lower, got.Width(), 1e-12)
	assert.InDelta(t, 4*got.StdDev, got.Width(), 1e-9)
}

func TestBollingerErrors(t *testing.T) {
	t.Parallel()

	_, err := Bollinger(closes[:19], 20, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Bollinger(closes, 20, 0)
	assert.Error(t, err)
}

func TestROCMatchesTalib(t *testing.T) {
	t.Parallel()

	got, err := ROC(closes, 10)
	require.NoError(t, err)
	want := talib.Roc(closes, 10)
	assert.InDelta(t, want[len(want)-1], got, 1e-9)

	_, err = ROC(closes[:10], 10)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestTrueRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10.0, TrueRange(110, 100, 104))
	assert.Equal(t, 15.0, TrueRange(110, 100, 95))  // gap down before the bar
	assert.Equal(t, 12.0, TrueRange(110, 100, 122)) // gap up before the bar
}

func TestATR(t *testing.T) {
	t.Parallel()

	highs := []float64{10, 11, 12, 11, 12, 13}
	lows := []float64{8, 9, 10, 9, 10, 11}
	cs := []float64{9, 10, 11, 10, 11, 12}

	atr, err := ATR(highs, lows, cs, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, atr, 1e-12)

	_, err = ATR(highs[:3], lows[:3], cs[:3], 3)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = ATR(highs, lows[:5], cs, 3)
	assert.Error(t, err)
}

func TestBreakout(t *testing.T) {
	t.Parallel()

	highs, lows := highsLows(closes)

	quiet, err := Breakout(highs, lows, closes, 20, 2)
	require.NoError(t, err)
	assert.False(t, quiet.Breakout)
	assert.Greater(t, quiet.AvgRange, 0.0)

	// widen the newest bar and push the close higher
	n := len(closes) - 1
	wide := append([]float64(nil), closes...)
	wide[n] = closes[n-1] + 4
	wh, wl := highsLows(wide)
	wh[n] += 3
	wl[n] -= 1

	r, err := Breakout(wh, wl, wide, 20, 2)
	require.NoError(t, err)
	assert.True(t, r.Breakout)
	assert.Greater(t, r.Move, 0.0)
	assert.InDelta(t, r.Range/r.AvgRange, r.Ratio, 1e-12)
}

func TestBreakoutFlatHistory(t *testing.T) {
	t.Parallel()

	flat := make([]float64, 22)
	for i := range flat {
		flat[i] = 50
	}
	r, err := Breakout(flat, flat, flat, 20, 1.5)
	require.NoError(t, err)
	assert.False(t, r.Breakout)
	assert.Equal(t, 0.0, r.Ratio)

	// a single move out of a dead market is an unbounded breakout
	jump := append([]float64(nil), flat...)
	jump[21] = 51
	r, err = Breakout(jump, flat, jump, 20, 1.5)
	require.NoError(t, err)
	assert.True(t, r.Breakout)
	assert.True(t, math.IsInf(r.Ratio, 1))
}

func TestBreakoutInsufficientData(t *testing.T) {
	t.Parallel()

	highs, lows := highsLows(closes)
	_, err := Breakout(highs[:21], lows[:21], closes[:21], 20, 1.5)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEMAMatchesTalib(t *testing.T) {
	t.Parallel()

	for _, period := range []int{5, 10, 20} {
		got, err := EMA(closes, period)
		require.NoError(t, err)
		want := talib.Ema(closes, period)
		assert.InDelta(t, want[len(want)-1], got, 1e-9, "period %d", period)
	}

	_, err := EMA(closes[:4], 5)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMACDMatchesTalibEMAs(t *testing.T) {
	t.Parallel()

	const fast, slow, signal = 5, 10, 4
	got, err := MACD(closes, fast, slow, signal)
	require.NoError(t, err)

	fe := talib.Ema(closes, fast)
	se := talib.Ema(closes, slow)
	line := make([]float64, 0, len(closes))
	for i := slow - 1; i < len(closes); i++ {
		line = append(line, fe[i]-se[i])
	}
	sig := talib.Ema(line, signal)

	assert.InDelta(t, line[len(line)-1], got.MACD, 1e-9)
	assert.InDelta(t, sig[len(sig)-1], got.Signal, 1e-9)
	assert.InDelta(t, got.MACD-got.Signal, got.Hist, 1e-12)
}

func TestMACDErrors(t *testing.T) {
	t.Parallel()

	_, err := MACD(closes[:12], 5, 10, 4)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Contains(t, err.Error(), "need 13, got 12")

	_, err = MACD(closes, 10, 10, 4)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientData)
}

func TestStochasticMatchesTalibWillR(t *testing.T) {
	t.Parallel()

	highs, lows := highsLows(closes)
	const kPeriod, dPeriod = 5, 3

	got, err := Stochastic(highs, lows, closes, kPeriod, dPeriod)
	require.NoError(t, err)

	// fast %K is %R shifted by 100
	wr := talib.WillR(highs, lows, closes, kPeriod)
	ks := make([]float64, len(wr))
	for i := range wr {
		ks[i] = wr[i] + 100
	}
	d := talib.Sma(ks, dPeriod)

	assert.InDelta(t, ks[len(ks)-1], got.K, 1e-9)
	assert.InDelta(t, d[len(d)-1], got.D, 1e-9)
	assert.True(t, got.K >= 0 && got.K <= 100)

	_, err = Stochastic(highs[:6], lows[:6], closes[:6], kPeriod, dPeriod)
	assert.ErrorIs(t, err, ErrInsufficientData)
	_, err = Stochastic(highs, lows[:3], closes, kPeriod, dPeriod)
	assert.Error(t, err)
}

func TestWilliamsRMatchesTalib(t *testing.T) {
	t.Parallel()

	highs, lows := highsLows(closes)
	got, err := WilliamsR(highs, lows, closes, 14)
	require.NoError(t, err)
	want := talib.WillR(highs, lows, closes, 14)
	assert.InDelta(t, want[len(want)-1], got, 1e-9)
	assert.True(t, got >= -100 && got <= 0)

	_, err = WilliamsR(highs[:13], lows[:13], closes[:13], 14)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestOscillatorsFlatRange(t *testing.T) {
	t.Parallel()

	flat := []float64{5, 5, 5, 5, 5, 5}
	st, err := Stochastic(flat, flat, flat, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 50.0, st.K)
	assert.Equal(t, 50.0, st.D)

	wr, err := WilliamsR(flat, flat, flat, 3)
	require.NoError(t, err)
	assert.Equal(t, -50.0, wr)
}
