package market

import (
	"fmt"
	"sync"
)

// DefaultLookback is the number of bars kept when no window is configured.
const DefaultLookback = 200

// BarSet is a bounded, ordered, append-only window of bars for one symbol.
// Once the window is full the oldest bar is discarded on each append.
type BarSet struct {
	mu       sync.RWMutex
	Symbol   string
	lookback int
	bars     []Bar
}

func NewBarSet(symbol string, lookback int) *BarSet {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &BarSet{
		Symbol:   symbol,
		lookback: lookback,
		bars:     make([]Bar, 0, lookback),
	}
}

// Append adds a bar strictly newer than the last one.
func (bs *BarSet) Append(b Bar) error {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if n := len(bs.bars); n > 0 && !b.Time.After(bs.bars[n-1].Time) {
		return fmt.Errorf("%s: bar %s not after last bar %s", bs.Symbol, b.Time, bs.bars[n-1].Time)
	}
	bs.push(b)
	return nil
}

// Merge appends the bars of a fetched batch that are newer than the
// current tail and returns how many were added. The batch must be ordered
// oldest first; older and duplicate bars are ignored.
func (bs *BarSet) Merge(batch []Bar) int {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	added := 0
	for _, b := range batch {
		if n := len(bs.bars); n > 0 && !b.Time.After(bs.bars[n-1].Time) {
			continue
		}
		bs.push(b)
		added++
	}
	return added
}

func (bs *BarSet) push(b Bar) {
	if len(bs.bars) == bs.lookback {
		copy(bs.bars, bs.bars[1:])
		bs.bars = bs.bars[:len(bs.bars)-1]
	}
	bs.bars = append(bs.bars, b)
}

func (bs *BarSet) Len() int {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return len(bs.bars)
}

func (bs *BarSet) Lookback() int {
	return bs.lookback
}

// Last returns the newest bar.
func (bs *BarSet) Last() (Bar, bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	if len(bs.bars) == 0 {
		return Bar{}, false
	}
	return bs.bars[len(bs.bars)-1], true
}

// Bars returns a copy of the window, oldest first.
func (bs *BarSet) Bars() []Bar {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	out := make([]Bar, len(bs.bars))
	copy(out, bs.bars)
	return out
}

func (bs *BarSet) Closes() []float64 {
	return bs.series(func(b Bar) float64 { return b.Close })
}

func (bs *BarSet) Highs() []float64 {
	return bs.series(func(b Bar) float64 { return b.High })
}

func (bs *BarSet) Lows() []float64 {
	return bs.series(func(b Bar) float64 { return b.Low })
}

func (bs *BarSet) series(pick func(Bar) float64) []float64 {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	out := make([]float64, len(bs.bars))
	for i, b := range bs.bars {
		out[i] = pick(b)
	}
	return out
}
