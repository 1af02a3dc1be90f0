// Package engine runs the evaluation cycle for each traded symbol:
// fetch bars, evaluate, aggregate, gate, size, submit, record.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/broker"
	"github.com/1cbyc/1cbyc-trading-bot/consensus"
	"github.com/1cbyc/1cbyc-trading-bot/journal"
	"github.com/1cbyc/1cbyc-trading-bot/logger"
	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/1cbyc/1cbyc-trading-bot/metrics"
	"github.com/1cbyc/1cbyc-trading-bot/risk"
	"github.com/1cbyc/1cbyc-trading-bot/strategies"
	"go.uber.org/zap"
)

type Config struct {
	Symbols             []string
	PollInterval        time.Duration
	Lookback            int
	FetchCount          int
	ConfidenceThreshold float64
}

// Status is how a cycle ended when it did not fail.
type Status string

const (
	StatusNoSignal       Status = "no-signal"
	StatusBelowThreshold Status = "below-threshold"
	StatusBlocked        Status = "blocked"
	StatusTraded         Status = "traded"
)

type CycleResult struct {
	Symbol   string                `json:"symbol"`
	Status   Status                `json:"status"`
	Decision consensus.Decision    `json:"decision"`
	Reason   risk.Reason           `json:"reason,omitempty"`
	Proposal *market.TradeProposal `json:"proposal,omitempty"`
	Outcome  *market.TradeOutcome  `json:"outcome,omitempty"`
	Risk     risk.State            `json:"risk"`
}

// ErrUnknownSymbol is returned for symbols the engine was not configured with.
var ErrUnknownSymbol = errors.New("symbol not traded by this engine")

type symbol struct {
	mu   sync.Mutex // one cycle at a time per symbol
	bars *market.BarSet
	last atomic.Pointer[consensus.Decision] // read without mu
}

type Engine struct {
	cfg     Config
	broker  broker.Broker
	evals   []strategies.Evaluator
	gate    *risk.Gate
	sizer   *risk.Sizer
	journal journal.Journal
	log     *zap.Logger
	now     func() time.Time

	symbols map[string]*symbol
}

type Option func(*Engine)

func WithJournal(j journal.Journal) Option {
	return func(e *Engine) {
		if j != nil {
			e.journal = j
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = logger.OrNop(l) }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(cfg Config, b broker.Broker, evals []strategies.Evaluator, gate *risk.Gate, sizer *risk.Sizer, opts ...Option) (*Engine, error) {
	if b == nil || gate == nil || sizer == nil {
		return nil, fmt.Errorf("engine needs a broker, a risk gate and a sizer")
	}
	if len(evals) == 0 {
		return nil, fmt.Errorf("engine needs at least one evaluator")
	}
	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("engine needs at least one symbol")
	}
	if cfg.FetchCount <= 0 {
		cfg.FetchCount = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}

	e := &Engine{
		cfg:     cfg,
		broker:  b,
		evals:   evals,
		gate:    gate,
		sizer:   sizer,
		journal: journal.Nop{},
		log:     zap.NewNop(),
		now:     time.Now,
		symbols: make(map[string]*symbol, len(cfg.Symbols)),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, s := range cfg.Symbols {
		if _, dup := e.symbols[s]; dup {
			return nil, fmt.Errorf("duplicate symbol %s", s)
		}
		e.symbols[s] = &symbol{bars: market.NewBarSet(s, cfg.Lookback)}
	}
	return e, nil
}

func (e *Engine) Symbols() []string {
	out := make([]string, len(e.cfg.Symbols))
	copy(out, e.cfg.Symbols)
	return out
}

func (e *Engine) Threshold() float64 {
	return e.cfg.ConfidenceThreshold
}

// RiskSummary returns a snapshot of the account's risk state.
func (e *Engine) RiskSummary() risk.State {
	return e.gate.Summary()
}

// LastDecision returns the most recent decision made for symbol.
func (e *Engine) LastDecision(sym string) (consensus.Decision, bool) {
	s, ok := e.symbols[sym]
	if !ok {
		return consensus.Decision{}, false
	}
	d := s.last.Load()
	if d == nil {
		return consensus.Decision{}, false
	}
	return *d, true
}

// EvaluateOnce fetches fresh bars for symbol and returns the aggregated
// decision without trading on it.
func (e *Engine) EvaluateOnce(ctx context.Context, sym string) (consensus.Decision, error) {
	s, ok := e.symbols[sym]
	if !ok {
		return consensus.Decision{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, sym)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return e.evaluate(ctx, sym, s)
}

func (e *Engine) evaluate(ctx context.Context, sym string, s *symbol) (consensus.Decision, error) {
	bars, err := e.broker.FetchRecentBars(ctx, sym, e.cfg.FetchCount)
	if err != nil {
		metrics.CycleErrors.WithLabelValues(sym, "fetch").Inc()
		return consensus.Decision{}, fmt.Errorf("fetch %s bars: %w", sym, err)
	}
	added := s.bars.Merge(bars)

	votes := strategies.EvaluateAll(e.evals, s.bars)
	d := consensus.Aggregate(votes, len(e.evals))
	s.last.Store(&d)

	metrics.Decisions.WithLabelValues(sym, d.Direction.String()).Inc()
	metrics.Confidence.WithLabelValues(sym).Set(d.Confidence)

	if ce := e.log.Check(zap.DebugLevel, "votes"); ce != nil {
		fields := []zap.Field{zap.String("symbol", sym), zap.Int("new_bars", added), zap.Int("bars", s.bars.Len())}
		for _, v := range votes {
			fields = append(fields, zap.String(string(v.Source), fmt.Sprintf("%s/%.3f", v.Direction, v.Strength)))
		}
		ce.Write(fields...)
	}
	return d, nil
}

// RunCycle runs one full cycle for symbol. A returned error means the cycle
// was abandoned before an outcome was confirmed, and risk state is
// untouched.
func (e *Engine) RunCycle(ctx context.Context, sym string) (CycleResult, error) {
	s, ok := e.symbols[sym]
	if !ok {
		return CycleResult{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, sym)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res := CycleResult{Symbol: sym}

	d, err := e.evaluate(ctx, sym, s)
	if err != nil {
		return res, err
	}
	res.Decision = d

	if d.Direction == market.Flat {
		res.Status = StatusNoSignal
		res.Risk = e.gate.Summary()
		return res, nil
	}
	if !d.Tradeable(e.cfg.ConfidenceThreshold) {
		res.Status = StatusBelowThreshold
		res.Risk = e.gate.Summary()
		e.log.Debug("below threshold",
			zap.String("symbol", sym),
			zap.Stringer("direction", d.Direction),
			zap.Float64("confidence", d.Confidence),
			zap.Float64("threshold", e.cfg.ConfidenceThreshold))
		return res, nil
	}

	verdict := e.gate.Check(e.now())
	if !verdict.Allowed {
		res.Status = StatusBlocked
		res.Reason = verdict.Reason
		res.Risk = e.gate.Summary()
		metrics.Rejections.WithLabelValues(string(verdict.Reason)).Inc()
		e.observeRisk(res.Risk)
		e.log.Warn("blocked",
			zap.String("symbol", sym),
			zap.String("reason", string(verdict.Reason)),
			zap.Stringer("direction", d.Direction),
			zap.Float64("confidence", d.Confidence))
		return res, nil
	}

	p, err := e.sizer.Size(sym, d.Direction, d.Confidence, verdict.Multiplier, len(e.cfg.Symbols))
	if err != nil {
		if errors.Is(err, risk.ErrNoStake) {
			res.Status = StatusNoSignal
			res.Risk = e.gate.Summary()
			return res, nil
		}
		metrics.CycleErrors.WithLabelValues(sym, "size").Inc()
		return res, fmt.Errorf("size %s: %w", sym, err)
	}
	res.Proposal = &p

	o, err := e.broker.SubmitOrder(ctx, broker.FromProposal(p))
	if err != nil {
		metrics.CycleErrors.WithLabelValues(sym, "submit").Inc()
		e.log.Error("order failed",
			zap.String("symbol", sym),
			zap.Stringer("direction", p.Direction),
			zap.Float64("stake", p.Stake),
			zap.Error(err))
		return res, fmt.Errorf("submit %s order: %w", sym, err)
	}
	res.Outcome = &o
	res.Status = StatusTraded

	st := e.gate.Record(e.now(), o)
	res.Risk = st
	metrics.OrdersSubmitted.WithLabelValues(sym).Inc()
	e.observeRisk(st)

	if err := e.journal.RecordTrade(journal.NewTradeRecord(o, d.Confidence, st.CurrentBalance)); err != nil {
		e.log.Error("journal trade", zap.String("trade_id", o.TradeID), zap.Error(err))
	}

	e.log.Info("trade settled",
		zap.String("symbol", sym),
		zap.String("trade_id", o.TradeID),
		zap.Stringer("direction", o.Direction),
		zap.Float64("confidence", d.Confidence),
		zap.Float64("stake", o.Stake),
		zap.Float64("pnl", o.PnL),
		zap.Float64("balance", st.CurrentBalance),
		zap.Int("daily_trades", st.DailyTradeCount),
		zap.Int("consecutive_losses", st.ConsecutiveLosses),
		zap.String("gate", string(st.Status)))

	if st.Status == risk.Paused {
		e.log.Warn("risk gate paused", zap.String("reason", string(st.Reason)))
	}
	return res, nil
}

// DayClosed records the final state of a finished trading day. Wire it to
// the gate with risk.OnRollover.
func (e *Engine) DayClosed(prev risk.State) {
	if err := e.journal.RecordRisk(journal.NewRiskSnapshot(e.now(), prev)); err != nil {
		e.log.Error("journal risk snapshot", zap.Error(err))
	}
	e.log.Info("trading day closed",
		zap.Time("day", prev.Day),
		zap.Int("trades", prev.DailyTradeCount),
		zap.Int("wins", prev.DailyWins),
		zap.Float64("win_rate", prev.WinRate()),
		zap.Float64("pnl", prev.DailyRealizedPnL),
		zap.Float64("balance", prev.CurrentBalance),
		zap.String("status", string(prev.Status)),
		zap.String("reason", string(prev.Reason)))
	e.observeRisk(e.gate.Summary())
}

func (e *Engine) observeRisk(s risk.State) {
	metrics.Risk(s.Status == risk.Open, s.CurrentBalance, s.DailyRealizedPnL, s.DailyTradeCount, s.ConsecutiveLosses)
}
