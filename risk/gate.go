package risk

import (
	"fmt"
	"sync"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/market"
)

type Violation struct {
	Code Reason `json:"code"`
	Msg  string `json:"msg"`
}

// Verdict is the gate's answer to one trade proposal.
type Verdict struct {
	Allowed    bool        `json:"allowed"`
	Status     Status      `json:"status"`
	Reason     Reason      `json:"reason,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
	Multiplier float64     `json:"multiplier"`
}

func (v *Verdict) add(code Reason, msg string) {
	v.Violations = append(v.Violations, Violation{Code: code, Msg: msg})
	v.Allowed = false
}

// Gate owns one account's State. Every read-modify-write happens under a
// single mutex, so concurrent outcomes from different symbols cannot
// interleave.
type Gate struct {
	mu         sync.Mutex
	limits     Limits
	loc        *time.Location
	state      State
	onRollover func(prev State)
}

type Option func(*Gate)

// WithLocation sets the time zone whose midnight ends a trading day.
func WithLocation(loc *time.Location) Option {
	return func(g *Gate) {
		if loc != nil {
			g.loc = loc
		}
	}
}

// WithDay starts the gate on the trading day containing t.
func WithDay(t time.Time) Option {
	return func(g *Gate) { g.state.Day = t }
}

// OnRollover registers fn to receive the closing state of each finished
// day. It runs after the gate's lock is released.
func OnRollover(fn func(prev State)) Option {
	return func(g *Gate) { g.onRollover = fn }
}

func NewGate(limits Limits, balance float64, opts ...Option) *Gate {
	g := &Gate{
		limits: limits,
		loc:    time.UTC,
		state: State{
			Status:          Open,
			PeakBalance:     balance,
			CurrentBalance:  balance,
			DayStartBalance: balance,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.state.Day.IsZero() {
		g.state.Day = time.Now()
	}
	g.state.Day = DayStart(g.state.Day, g.loc)
	return g
}

func (g *Gate) Limits() Limits {
	return g.limits
}

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Rollover resets the daily counters if now falls on a later trading day
// than the current one. It is idempotent, and a clock that steps backwards
// never rolls the day back.
func (g *Gate) Rollover(now time.Time) bool {
	g.mu.Lock()
	prev, rolled := g.rollover(now)
	g.mu.Unlock()

	g.notify(prev, rolled)
	return rolled
}

func (g *Gate) rollover(now time.Time) (State, bool) {
	day := DayStart(now, g.loc)
	if !day.After(g.state.Day) {
		return State{}, false
	}

	prev := g.state
	g.state = State{
		Day:             day,
		Status:          Open,
		PeakBalance:     prev.PeakBalance,
		CurrentBalance:  prev.CurrentBalance,
		DayStartBalance: prev.CurrentBalance,
	}
	return prev, true
}

func (g *Gate) notify(prev State, rolled bool) {
	if rolled && g.onRollover != nil {
		g.onRollover(prev)
	}
}

// Check decides whether a new trade may be proposed at now. Once paused,
// the gate rejects with the original reason until the day rolls over, even
// if the triggering metric recovers.
//
// Check reserves nothing: concurrent proposals are admitted against the same
// snapshot, so a day can close up to one trade per symbol past the trade cap.
func (g *Gate) Check(now time.Time) Verdict {
	g.mu.Lock()
	prev, rolled := g.rollover(now)
	v := g.check()
	g.mu.Unlock()

	g.notify(prev, rolled)
	return v
}

func (g *Gate) check() Verdict {
	v := Verdict{Allowed: true, Status: g.state.Status}

	if g.state.Status == Paused {
		v.add(g.state.Reason, fmt.Sprintf("trading paused for the day: %s", g.state.Reason))
		v.Reason = g.state.Reason
		return v
	}

	for _, viol := range breaches(g.limits, g.state) {
		v.add(viol.Code, viol.Msg)
	}
	if !v.Allowed {
		g.pause(v.Violations[0].Code)
		v.Status = Paused
		v.Reason = g.state.Reason
		return v
	}

	v.Multiplier = Multiplier(g.limits, g.state.ConsecutiveLosses)
	return v
}

func (g *Gate) pause(reason Reason) {
	g.state.Status = Paused
	g.state.Reason = reason
}

// breaches lists every limit s currently violates, in a fixed order.
func breaches(l Limits, s State) []Violation {
	var out []Violation
	if l.MaxDailyTrades > 0 && s.DailyTradeCount >= l.MaxDailyTrades {
		out = append(out, Violation{ReasonDailyTradeLimit,
			fmt.Sprintf("daily trades %d >= max %d", s.DailyTradeCount, l.MaxDailyTrades)})
	}
	if l.MaxDailyLoss > 0 && s.DailyRealizedPnL <= -l.MaxDailyLoss {
		out = append(out, Violation{ReasonDailyLossLimit,
			fmt.Sprintf("daily realized %.2f <= limit %.2f", s.DailyRealizedPnL, -l.MaxDailyLoss)})
	}
	if l.MaxConsecutiveLosses > 0 && s.ConsecutiveLosses >= l.MaxConsecutiveLosses {
		out = append(out, Violation{ReasonConsecutiveLosses,
			fmt.Sprintf("consecutive losses %d >= max %d", s.ConsecutiveLosses, l.MaxConsecutiveLosses)})
	}
	if l.MaxDrawdownFraction > 0 && s.Drawdown() >= l.MaxDrawdownFraction {
		out = append(out, Violation{ReasonMaxDrawdown,
			fmt.Sprintf("drawdown %.2f%% >= max %.2f%%", 100*s.Drawdown(), 100*l.MaxDrawdownFraction)})
	}
	return out
}

// Record applies a settled trade and returns the resulting snapshot. An
// outcome that closes on a new trading day counts toward that day.
func (g *Gate) Record(now time.Time, o market.TradeOutcome) State {
	g.mu.Lock()
	prev, rolled := g.rollover(now)

	s := &g.state
	s.DailyRealizedPnL += o.PnL
	s.CurrentBalance += o.PnL
	if s.CurrentBalance > s.PeakBalance {
		s.PeakBalance = s.CurrentBalance
	}
	if o.Win() {
		s.ConsecutiveLosses = 0
		s.DailyWins++
	} else {
		s.ConsecutiveLosses++
		s.DailyLosses++
	}
	s.DailyTradeCount++

	if s.Status == Open {
		if b := breaches(g.limits, *s); len(b) > 0 {
			g.pause(b[0].Code)
		}
	}
	snap := g.state
	g.mu.Unlock()

	g.notify(prev, rolled)
	return snap
}

// Summary returns a snapshot of the current state.
func (g *Gate) Summary() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Multiplier is the current loss-streak stake multiplier.
func (g *Gate) Multiplier() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Multiplier(g.limits, g.state.ConsecutiveLosses)
}
