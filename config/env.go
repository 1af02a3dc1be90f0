package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BOT_"

// LoadEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays BOT_* variables from the process environment.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = f
		return nil
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	for _, err := range []error{
		float("CONFIDENCE_THRESHOLD", &c.Engine.ConfidenceThreshold),
		float("MAX_DAILY_LOSS", &c.Risk.MaxDailyLoss),
		integer("MAX_DAILY_TRADES", &c.Risk.MaxDailyTrades),
		integer("MAX_CONSECUTIVE_LOSSES", &c.Risk.MaxConsecutiveLosses),
		float("MAX_DRAWDOWN_FRACTION", &c.Risk.MaxDrawdownFraction),
		float("BASE_STAKE_AMOUNT", &c.Sizing.BaseStake),
		float("STARTING_BALANCE", &c.Account.Balance),
	} {
		if err != nil {
			return err
		}
	}

	str("POLL_INTERVAL", &c.Engine.PollInterval)
	str("LOG_LEVEL", &c.Log.Level)
	str("TIMEZONE", &c.Account.Timezone)

	if v, ok := lookup(EnvPrefix + "SYMBOLS"); ok && v != "" {
		var syms []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				syms = append(syms, s)
			}
		}
		c.Engine.Symbols = syms
	}
	return nil
}

// Load builds the effective configuration: the file at path (or the
// defaults when path is empty), then the env file, then BOT_* variables.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := LoadEnv(envFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
