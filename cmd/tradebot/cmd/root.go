package cmd

import (
	"github.com/1cbyc/1cbyc-trading-bot/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradebot",
	Short: "Signal-aggregating trading bot with a daily risk gate",
	Long: `Tradebot polls recent bars for a set of instruments, runs a panel of
technical evaluators over them and trades the consensus direction when its
confidence clears the threshold.

Every proposal passes a per-account risk gate first:
  - daily trade count and realized loss limits
  - a consecutive loss limit and a stake multiplier that shrinks with the streak
  - a maximum drawdown from the peak balance

A paused gate stays paused until the next trading day.`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	envFile  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, YAML or JSON (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with BOT_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// loadConfig builds the effective configuration for a command.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile, envFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}
