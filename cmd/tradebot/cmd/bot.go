package cmd

import (
	"context"
	"fmt"

	"github.com/1cbyc/1cbyc-trading-bot/broker"
	"github.com/1cbyc/1cbyc-trading-bot/broker/sim"
	"github.com/1cbyc/1cbyc-trading-bot/config"
	"github.com/1cbyc/1cbyc-trading-bot/engine"
	"github.com/1cbyc/1cbyc-trading-bot/journal"
	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/1cbyc/1cbyc-trading-bot/risk"
	"github.com/1cbyc/1cbyc-trading-bot/strategies"
	"go.uber.org/zap"
)

// bot is one account's fully wired engine.
type bot struct {
	cfg     *config.Config
	log     *zap.Logger
	broker  broker.Broker
	gate    *risk.Gate
	engine  *engine.Engine
	journal journal.Journal
}

func newBot(ctx context.Context, cfg *config.Config, log *zap.Logger) (*bot, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	poll, err := cfg.PollDuration()
	if err != nil {
		return nil, fmt.Errorf("poll interval: %w", err)
	}

	evals, err := strategies.Build(cfg.Evaluators)
	if err != nil {
		return nil, err
	}
	sizer, err := risk.NewSizer(sizerConfig(cfg.Sizing, cfg.Engine.Symbols))
	if err != nil {
		return nil, err
	}

	b, err := newBroker(cfg)
	if err != nil {
		return nil, err
	}
	balance := cfg.Account.Balance
	if ar, ok := b.(broker.AccountReader); ok {
		acct, err := ar.GetAccount(ctx)
		if err != nil {
			return nil, fmt.Errorf("get account: %w", err)
		}
		balance = acct.Balance
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return nil, err
	}

	var eng *engine.Engine
	gate := risk.NewGate(cfg.Risk, balance,
		risk.WithLocation(loc),
		risk.OnRollover(func(prev risk.State) { eng.DayClosed(prev) }),
	)

	eng, err = engine.New(engine.Config{
		Symbols:             cfg.Engine.Symbols,
		PollInterval:        poll,
		Lookback:            cfg.Engine.Lookback,
		FetchCount:          cfg.Engine.FetchCount,
		ConfidenceThreshold: cfg.Engine.ConfidenceThreshold,
	}, b, evals, gate, sizer, engine.WithLogger(log), engine.WithJournal(j))
	if err != nil {
		j.Close()
		return nil, err
	}

	return &bot{cfg: cfg, log: log, broker: b, gate: gate, engine: eng, journal: j}, nil
}

// Close records the final risk state and closes the journal.
func (b *bot) Close() error {
	b.engine.DayClosed(b.gate.Summary())
	return b.journal.Close()
}

func newBroker(cfg *config.Config) (broker.Broker, error) {
	switch cfg.Broker.Type {
	case "", "sim":
		sc := sim.DefaultConfig()
		sc.AccountID = cfg.Account.ID
		sc.Currency = cfg.Account.Currency
		sc.Balance = cfg.Account.Balance
		if cfg.Broker.Seed != 0 {
			sc.Seed = cfg.Broker.Seed
		}
		if cfg.Broker.Payout > 0 {
			sc.Payout = cfg.Broker.Payout
		}
		if cfg.Broker.ContractBars > 0 {
			sc.ContractBars = cfg.Broker.ContractBars
		}
		b, err := sim.New(sc)
		if err != nil {
			return nil, fmt.Errorf("sim broker: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported broker type %q", cfg.Broker.Type)
	}
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		j, err := journal.NewCSV(cfg.TradesFile, cfg.RiskFile)
		if err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil
	case "sqlite":
		j, err := journal.NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		return j, nil
	default:
		return nil, fmt.Errorf("unsupported journal type %q", cfg.Type)
	}
}

// sizerConfig fills per-symbol minimum stakes from instrument metadata
// where the config leaves them unset.
func sizerConfig(c risk.SizerConfig, symbols []string) risk.SizerConfig {
	mins := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		if in, ok := market.LookupInstrument(sym); ok && in.MinStake > 0 {
			mins[sym] = in.MinStake
		}
	}
	for sym, m := range c.SymbolMinStake {
		mins[sym] = m
	}
	c.SymbolMinStake = mins
	return c
}
