package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.4, cfg.Engine.ConfidenceThreshold)
	assert.Equal(t, 1.0, cfg.Sizing.BaseStake)
	assert.Equal(t, 50.0, cfg.Risk.MaxDailyLoss)
	assert.Equal(t, 20, cfg.Risk.MaxDailyTrades)
	assert.Equal(t, 10, cfg.Risk.MaxConsecutiveLosses)
	assert.Equal(t, 0.2, cfg.Risk.MaxDrawdownFraction)
	assert.Equal(t, []string{"R_100", "R_75"}, cfg.Engine.Symbols)
	assert.Equal(t, 4, cfg.Evaluators.Count())

	d, err := cfg.PollDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"missing currency", func(c *Config) { c.Account.Currency = "" }, "account.currency is required"},
		{"negative balance", func(c *Config) { c.Account.Balance = -1 }, "account.balance must be positive"},
		{"bad timezone", func(c *Config) { c.Account.Timezone = "Mars/Olympus" }, "account.timezone"},
		{"no symbols", func(c *Config) { c.Engine.Symbols = nil }, "engine.symbols is required"},
		{"duplicate symbol", func(c *Config) { c.Engine.Symbols = []string{"R_100", "R_100"} }, "duplicate symbol"},
		{"unknown instrument", func(c *Config) { c.Engine.Symbols = []string{"EUR_USD"} }, "unknown instrument: EUR_USD"},
		{"bad poll interval", func(c *Config) { c.Engine.PollInterval = "soon" }, "engine.poll_interval"},
		{"fetch beyond sim history", func(c *Config) { c.Engine.FetchCount = 1001 }, "engine.fetch_count must be <= 1000"},
		{"threshold above one", func(c *Config) { c.Engine.ConfidenceThreshold = 1.2 }, "confidence_threshold"},
		{"drawdown fraction", func(c *Config) { c.Risk.MaxDrawdownFraction = 2 }, "max_drawdown_fraction"},
		{"unset daily trades", func(c *Config) { c.Risk.MaxDailyTrades = 0 }, "max_daily_trades"},
		{"base stake", func(c *Config) { c.Sizing.BaseStake = 0 }, "base_stake_amount"},
		{"evaluator window", func(c *Config) { c.Evaluators.MACross.Short = 30 }, "ma_cross"},
		{"lookback too short", func(c *Config) { c.Engine.Lookback = 15 }, "engine.lookback 15"},
		{"broker type", func(c *Config) { c.Broker.Type = "mt5" }, "broker.type"},
		{"csv journal files", func(c *Config) { c.Journal.Type = "csv" }, "trades_file and risk_file"},
		{"sqlite journal path", func(c *Config) { c.Journal.Type = "sqlite" }, "db_path"},
		{"journal type", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"status listen", func(c *Config) { c.Status.Enabled = true; c.Status.Listen = "" }, "status.listen"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bot.yaml")
	cfg := Default()
	cfg.Engine.Symbols = []string{"R_50"}
	cfg.Risk.MaxDailyTrades = 7
	cfg.Evaluators.Momentum.Enabled = true
	cfg.Sizing.SymbolMinStake = map[string]float64{"R_50": 4}
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveAndLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bot.json")
	cfg := Default()
	cfg.Engine.ConfidenceThreshold = 0.55
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.55, loaded.Engine.ConfidenceThreshold)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  confidence_threshold: 0.5
risk:
  max_daily_trades: 3
evaluators:
  rsi:
    period: 21
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Engine.ConfidenceThreshold)
	assert.Equal(t, 3, cfg.Risk.MaxDailyTrades)
	assert.Equal(t, 50.0, cfg.Risk.MaxDailyLoss)
	assert.Equal(t, 21, cfg.Evaluators.RSI.Period)
	assert.True(t, cfg.Evaluators.RSI.Enabled)
	assert.Equal(t, "5s", cfg.Engine.PollInterval)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [unclosed"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("account:\n  balance: -5\n"), 0644))
	_, err = LoadFromFile(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"BOT_CONFIDENCE_THRESHOLD":   "0.6",
		"BOT_MAX_DAILY_LOSS":         "25",
		"BOT_MAX_DAILY_TRADES":       "8",
		"BOT_MAX_CONSECUTIVE_LOSSES": "4",
		"BOT_MAX_DRAWDOWN_FRACTION":  "0.1",
		"BOT_BASE_STAKE_AMOUNT":      "2.5",
		"BOT_SYMBOLS":                " R_10, R_25 ,",
		"BOT_POLL_INTERVAL":          "2s",
		"BOT_LOG_LEVEL":              "debug",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, 0.6, cfg.Engine.ConfidenceThreshold)
	assert.Equal(t, 25.0, cfg.Risk.MaxDailyLoss)
	assert.Equal(t, 8, cfg.Risk.MaxDailyTrades)
	assert.Equal(t, 4, cfg.Risk.MaxConsecutiveLosses)
	assert.Equal(t, 0.1, cfg.Risk.MaxDrawdownFraction)
	assert.Equal(t, 2.5, cfg.Sizing.BaseStake)
	assert.Equal(t, []string{"R_10", "R_25"}, cfg.Engine.Symbols)
	assert.Equal(t, "2s", cfg.Engine.PollInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())

	env = map[string]string{"BOT_MAX_DAILY_TRADES": "lots"}
	assert.Error(t, Default().applyEnv(lookup))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOT_TEST_ONLY_KEY=from-file\n"), 0644))

	require.NoError(t, LoadEnv(path))
	t.Cleanup(func() { os.Unsetenv("BOT_TEST_ONLY_KEY") })
	assert.Equal(t, "from-file", os.Getenv("BOT_TEST_ONLY_KEY"))

	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")))
	assert.NoError(t, LoadEnv(""))
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("BOT_MAX_DAILY_TRADES", "9")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Risk.MaxDailyTrades)
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	for _, name := range Profiles {
		cfg, err := Profile(name)
		require.NoError(t, err, name)
		assert.NoError(t, cfg.Validate(), name)
		assert.Equal(t, name, cfg.Account.ID)
	}

	micro, err := Profile("micro")
	require.NoError(t, err)
	assert.Equal(t, 0.5, micro.Sizing.BaseStake)
	assert.Equal(t, []string{"R_100"}, micro.Engine.Symbols)

	_, err = Profile("vip")
	assert.Error(t, err)
}
