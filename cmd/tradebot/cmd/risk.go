package cmd

import (
	"fmt"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/journal"
	"github.com/1cbyc/1cbyc-trading-bot/risk"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show risk limits and the last recorded risk state",
	Long: `Print the configured daily limits and the stake multiplier for each
loss streak length. With a sqlite journal the latest risk snapshot and
today's trade statistics are printed too.`,
	Args: cobra.NoArgs,
	RunE: runRisk,
}

func init() {
	rootCmd.AddCommand(riskCmd)
}

func runRisk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	l := cfg.Risk

	fmt.Fprintf(w, "Limits\n")
	fmt.Fprintf(w, "  max daily trades:        %s\n", limit(float64(l.MaxDailyTrades), "%.0f"))
	fmt.Fprintf(w, "  max daily loss:          %s\n", limit(l.MaxDailyLoss, "%.2f"))
	fmt.Fprintf(w, "  max consecutive losses:  %s\n", limit(float64(l.MaxConsecutiveLosses), "%.0f"))
	fmt.Fprintf(w, "  max drawdown:            %s\n", limit(100*l.MaxDrawdownFraction, "%.1f%%"))

	fmt.Fprintf(w, "Stake multiplier by loss streak\n")
	for n := 0; ; n++ {
		m := risk.Multiplier(l, n)
		fmt.Fprintf(w, "  %2d  %.2f\n", n, m)
		if m <= l.LossScaleFloor || (l.MaxConsecutiveLosses > 0 && n >= l.MaxConsecutiveLosses) || n >= 10 {
			break
		}
	}

	if cfg.Journal.Type != "sqlite" {
		return nil
	}
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if snap, err := j.LatestRisk(); err == nil {
		fmt.Fprintf(w, "Last snapshot (%s)\n", snap.Time.Format(time.RFC3339))
		fmt.Fprintf(w, "  status %s %s, trades %d, pnl %.2f, losses in a row %d, balance %.2f, drawdown %.2f%%\n",
			snap.Status, snap.Reason, snap.DailyTradeCount, snap.DailyRealizedPnL,
			snap.ConsecutiveLosses, snap.Balance, 100*snap.Drawdown)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	st, err := j.DailyStats(time.Now(), loc)
	if err != nil {
		return fmt.Errorf("daily stats: %w", err)
	}
	fmt.Fprintf(w, "Today\n")
	printStats(w, st)
	return nil
}

func limit(v float64, format string) string {
	if v <= 0 {
		return "off"
	}
	return fmt.Sprintf(format, v)
}
