package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/broker/sim"
	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/1cbyc/1cbyc-trading-bot/risk"
	"github.com/1cbyc/1cbyc-trading-bot/strategies"
	"gopkg.in/yaml.v3"
)

// Config is everything one engine instance needs. Account tiers differ
// only in the values here.
type Config struct {
	Account    AccountConfig     `json:"account" yaml:"account"`
	Engine     EngineConfig      `json:"engine" yaml:"engine"`
	Risk       risk.Limits       `json:"risk" yaml:"risk"`
	Sizing     risk.SizerConfig  `json:"sizing" yaml:"sizing"`
	Evaluators strategies.Config `json:"evaluators" yaml:"evaluators"`
	Broker     BrokerConfig      `json:"broker" yaml:"broker"`
	Journal    JournalConfig     `json:"journal" yaml:"journal"`
	Log        LogConfig         `json:"log" yaml:"log"`
	Status     StatusConfig      `json:"status" yaml:"status"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID       string  `json:"id" yaml:"id"`
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
	// Timezone names the zone whose midnight starts a new trading day.
	Timezone string `json:"timezone" yaml:"timezone"`
}

type EngineConfig struct {
	Symbols             []string `json:"symbols" yaml:"symbols"`
	PollInterval        string   `json:"poll_interval" yaml:"poll_interval"` // e.g. "5s"
	Lookback            int      `json:"lookback" yaml:"lookback"`
	FetchCount          int      `json:"fetch_count" yaml:"fetch_count"`
	ConfidenceThreshold float64  `json:"confidence_threshold" yaml:"confidence_threshold"`
}

type BrokerConfig struct {
	Type         string  `json:"type" yaml:"type"` // "sim"
	Seed         int64   `json:"seed" yaml:"seed"`
	Payout       float64 `json:"payout" yaml:"payout"`
	ContractBars int     `json:"contract_bars" yaml:"contract_bars"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	RiskFile   string `json:"risk_file,omitempty" yaml:"risk_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level    string `json:"level" yaml:"level"`
	Encoding string `json:"encoding" yaml:"encoding"` // "json" or "console"
}

type StatusConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Listen  string `json:"listen" yaml:"listen"`
}

// PollDuration parses Engine.PollInterval.
func (c *Config) PollDuration() (time.Duration, error) {
	return time.ParseDuration(c.Engine.PollInterval)
}

// Location loads Account.Timezone, defaulting to UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Account.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Account.Timezone)
}

// LoadFromFile loads configuration from a file on top of the defaults, so
// a file only needs the fields it changes.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("account.timezone: %w", err)
	}

	if len(c.Engine.Symbols) == 0 {
		return fmt.Errorf("engine.symbols is required")
	}
	seen := map[string]bool{}
	for _, s := range c.Engine.Symbols {
		if seen[s] {
			return fmt.Errorf("engine.symbols: duplicate symbol %s", s)
		}
		seen[s] = true
		if c.Broker.Type == "sim" {
			if _, ok := market.LookupInstrument(s); !ok {
				return fmt.Errorf("unknown instrument: %s", s)
			}
		}
	}
	d, err := c.PollDuration()
	if err != nil {
		return fmt.Errorf("engine.poll_interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("engine.poll_interval must be positive")
	}
	if c.Engine.FetchCount <= 0 {
		return fmt.Errorf("engine.fetch_count must be positive")
	}
	if c.isSim() && c.Engine.FetchCount > sim.MaxBars {
		return fmt.Errorf("engine.fetch_count must be <= %d for the sim broker", sim.MaxBars)
	}
	if c.Engine.Lookback <= 0 {
		return fmt.Errorf("engine.lookback must be positive")
	}
	if t := c.Engine.ConfidenceThreshold; t < 0 || t > 1 {
		return fmt.Errorf("engine.confidence_threshold must be between 0 and 1")
	}

	if err := c.Risk.Validate(); err != nil {
		return fmt.Errorf("risk: %w", err)
	}
	if c.Risk.MaxDailyTrades == 0 || c.Risk.MaxDailyLoss == 0 {
		return fmt.Errorf("risk: max_daily_trades and max_daily_loss must be set")
	}
	if err := c.Sizing.Validate(); err != nil {
		return fmt.Errorf("sizing: %w", err)
	}
	if err := c.Evaluators.Validate(); err != nil {
		return fmt.Errorf("evaluators: %w", err)
	}
	if c.Evaluators.Count() == 0 {
		return fmt.Errorf("evaluators: at least one evaluator must be enabled")
	}
	if warm := c.maxWarmup(); warm > c.Engine.Lookback {
		return fmt.Errorf("engine.lookback %d shorter than the longest evaluator window %d", c.Engine.Lookback, warm)
	}

	if c.Broker.Type != "sim" {
		return fmt.Errorf("broker.type must be 'sim'")
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.RiskFile == "" {
			return fmt.Errorf("journal trades_file and risk_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	switch c.Log.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.encoding must be 'json' or 'console'")
	}
	if c.Status.Enabled && c.Status.Listen == "" {
		return fmt.Errorf("status.listen required when status is enabled")
	}
	return nil
}

func (c *Config) isSim() bool {
	return c.Broker.Type == "" || c.Broker.Type == "sim"
}

func (c *Config) maxWarmup() int {
	evals, err := strategies.Build(c.Evaluators)
	if err != nil {
		return 0
	}
	m := 0
	for _, e := range evals {
		if w := e.Warmup(); w > m {
			m = w
		}
	}
	return m
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:       "paper",
			Currency: "USD",
			Balance:  1000,
			Timezone: "UTC",
		},
		Engine: EngineConfig{
			Symbols:             []string{"R_100", "R_75"},
			PollInterval:        "5s",
			Lookback:            market.DefaultLookback,
			FetchCount:          100,
			ConfidenceThreshold: 0.4,
		},
		Risk:       risk.DefaultLimits(),
		Sizing:     risk.DefaultSizerConfig(),
		Evaluators: strategies.DefaultConfig(),
		Broker: BrokerConfig{
			Type:         "sim",
			Seed:         1,
			Payout:       0.95,
			ContractBars: 5,
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
		Status: StatusConfig{
			Listen: "127.0.0.1:8080",
		},
	}
}

// Profiles lists the account tiers Profile accepts.
var Profiles = []string{"demo", "real", "micro"}

// Profile returns the defaults for an account tier.
func Profile(name string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(name) {
	case "", "demo":
		cfg.Account.ID = "demo"
		cfg.Account.Balance = 10000
	case "real":
		cfg.Account.ID = "real"
		cfg.Journal = JournalConfig{Type: "sqlite", DBPath: "./tradebot.db"}
		cfg.Log.Encoding = "json"
	case "micro":
		cfg.Account.ID = "micro"
		cfg.Account.Balance = 50
		cfg.Engine.Symbols = []string{"R_100"}
		cfg.Risk.MaxDailyLoss = 5
		cfg.Risk.MaxDailyTrades = 10
		cfg.Risk.MaxConsecutiveLosses = 5
		cfg.Sizing.BaseStake = 0.5
		cfg.Sizing.MaxStake = 2
	default:
		return nil, fmt.Errorf("unknown profile %q (supported: %s)", name, strings.Join(Profiles, ", "))
	}
	return cfg, nil
}
