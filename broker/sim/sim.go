// Package sim is an in-memory paper broker for synthetic volatility
// indices. Prices follow a seeded random walk scaled by each index's
// volatility, and every order settles immediately as a rise/fall contract
// over a fixed number of bars.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/broker"
	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/1cbyc/1cbyc-trading-bot/pkg/id"
)

// MaxBars is the most history a feed keeps, and so the most bars one
// fetch can return.
const MaxBars = 1000

const (
	secondsPerYear = 365 * 24 * 60 * 60
	stepsPerBar    = 12
)

type Config struct {
	AccountID string  `yaml:"account_id" json:"account_id"`
	Currency  string  `yaml:"currency" json:"currency"`
	Balance   float64 `yaml:"balance" json:"balance"`
	Seed      int64   `yaml:"seed" json:"seed"`
	// Payout is the profit per unit stake on a winning contract.
	Payout float64 `yaml:"payout" json:"payout"`
	// ContractBars is how many bars a contract runs before it settles.
	ContractBars int `yaml:"contract_bars" json:"contract_bars"`
	// Start is the timestamp of the first generated bar.
	Start time.Time `yaml:"-" json:"-"`
}

func DefaultConfig() Config {
	return Config{
		AccountID:    "paper",
		Currency:     "USD",
		Balance:      1000,
		Seed:         1,
		Payout:       0.95,
		ContractBars: 5,
	}
}

type feed struct {
	inst  market.Instrument
	price float64
	bars  []market.Bar
}

// Broker implements broker.Broker and broker.AccountReader.
type Broker struct {
	mu    sync.Mutex
	cfg   Config
	rng   *rand.Rand
	acct  broker.Account
	feeds map[string]*feed
}

func New(cfg Config) (*Broker, error) {
	if cfg.Payout <= 0 {
		return nil, fmt.Errorf("payout must be > 0")
	}
	if cfg.ContractBars <= 0 {
		return nil, fmt.Errorf("contract_bars must be > 0")
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now().UTC().Truncate(time.Minute)
	}
	return &Broker{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		acct: broker.Account{
			ID:       cfg.AccountID,
			Currency: cfg.Currency,
			Balance:  cfg.Balance,
		},
		feeds: make(map[string]*feed),
	}, nil
}

func (b *Broker) GetAccount(ctx context.Context) (broker.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.acct, nil
}

// FetchRecentBars advances the symbol's feed by one bar, as if one polling
// interval had passed, and returns the newest count bars. The first fetch
// back-fills count bars of history. count is capped at MaxBars.
func (b *Broker) FetchRecentBars(ctx context.Context, symbol string, count int) ([]market.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("bar count must be positive, got %d", count)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.feed(symbol)
	if err != nil {
		return nil, err
	}

	if count > MaxBars {
		count = MaxBars
	}
	for len(f.bars) < count {
		b.step(f)
	}
	b.step(f)

	n := len(f.bars)
	if count > n {
		count = n
	}
	out := make([]market.Bar, count)
	copy(out, f.bars[n-count:])
	return out, nil
}

// SubmitOrder runs the contract forward ContractBars bars and settles it:
// Up wins if the exit close is above the entry close, Down if below. A win
// pays stake*Payout, anything else loses the stake.
func (b *Broker) SubmitOrder(ctx context.Context, req broker.OrderRequest) (market.TradeOutcome, error) {
	if err := ctx.Err(); err != nil {
		return market.TradeOutcome{}, err
	}
	if err := req.Validate(); err != nil {
		return market.TradeOutcome{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := b.feed(req.Symbol)
	if err != nil {
		return market.TradeOutcome{}, err
	}
	if req.Stake < f.inst.MinStake {
		return market.TradeOutcome{}, fmt.Errorf("%w: %.2f below minimum %.2f for %s",
			broker.ErrInvalidStake, req.Stake, f.inst.MinStake, req.Symbol)
	}
	if req.Stake > b.acct.Balance {
		return market.TradeOutcome{}, fmt.Errorf("%w: %.2f exceeds balance %.2f",
			broker.ErrInvalidStake, req.Stake, b.acct.Balance)
	}
	if len(f.bars) == 0 {
		b.step(f)
	}

	entry := f.bars[len(f.bars)-1]
	for i := 0; i < b.cfg.ContractBars; i++ {
		b.step(f)
	}
	exit := f.bars[len(f.bars)-1]

	won := (req.Direction == market.Up && exit.Close > entry.Close) ||
		(req.Direction == market.Down && exit.Close < entry.Close)

	pnl := -req.Stake
	if won {
		pnl = math.Round(req.Stake*b.cfg.Payout*100) / 100
	}
	b.acct.Balance += pnl

	return market.TradeOutcome{
		TradeID:   id.NewAt(exit.Time),
		Symbol:    req.Symbol,
		Direction: req.Direction,
		Stake:     req.Stake,
		PnL:       pnl,
		OpenTime:  entry.Time,
		CloseTime: exit.Time,
	}, nil
}

func (b *Broker) feed(symbol string) (*feed, error) {
	if f, ok := b.feeds[symbol]; ok {
		return f, nil
	}
	inst, ok := market.LookupInstrument(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", broker.ErrUnknownSymbol, symbol)
	}
	f := &feed{inst: inst, price: inst.StartPrice}
	b.feeds[symbol] = f
	return f, nil
}

// step appends one bar built from stepsPerBar random-walk increments.
func (b *Broker) step(f *feed) {
	gran := time.Duration(f.inst.Granularity) * time.Second
	ts := b.cfg.Start
	if n := len(f.bars); n > 0 {
		ts = f.bars[n-1].Time.Add(gran)
	}

	dt := float64(f.inst.Granularity) / stepsPerBar / secondsPerYear
	sigma := f.inst.Volatility * math.Sqrt(dt)

	bar := market.Bar{Time: ts, Open: f.price, High: f.price, Low: f.price}
	for i := 0; i < stepsPerBar; i++ {
		f.price *= math.Exp(sigma*b.rng.NormFloat64() - sigma*sigma/2)
		bar.High = math.Max(bar.High, f.price)
		bar.Low = math.Min(bar.Low, f.price)
		bar.Volume++
	}
	bar.Close = f.price

	if len(f.bars) == MaxBars {
		copy(f.bars, f.bars[1:])
		f.bars = f.bars[:MaxBars-1]
	}
	f.bars = append(f.bars, bar)
}
