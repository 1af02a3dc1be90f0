package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the trade journal",
	Long: `Query trade records from the SQLite journal.

Subcommands:
  trade  - Get details of a specific trade by ID
  today  - List trades closed today
  day    - List trades closed on a specific day
  stats  - Win rate and P/L for a day

Examples:
  tradebot journal trade <trade-id>
  tradebot journal day 2025-03-10
  tradebot journal stats --day 2025-03-10`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades closed today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listDay(cmd, time.Now())
	},
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}
		return listDay(cmd, day)
	},
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the trades closed on a day",
	Args:  cobra.NoArgs,
	RunE:  runJournalStats,
}

var (
	journalDBPath string
	journalDay    string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd, journalTodayCmd, journalDayCmd, journalStatsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default: journal.db_path from config)")
	journalStatsCmd.Flags().StringVar(&journalDay, "day", "", "day as YYYY-MM-DD (default today)")
}

func openSQLite() (*journal.SQLite, *time.Location, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no journal database: pass --db or set journal.db_path")
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return j, loc, nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, _, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Trade %s\n", rec.TradeID)
	fmt.Fprintf(w, "  symbol:     %s\n", rec.Symbol)
	fmt.Fprintf(w, "  direction:  %s\n", rec.Direction)
	fmt.Fprintf(w, "  confidence: %.3f\n", rec.Confidence)
	fmt.Fprintf(w, "  stake:      %.2f\n", rec.Stake)
	fmt.Fprintf(w, "  pnl:        %.2f\n", rec.PnL)
	fmt.Fprintf(w, "  opened:     %s\n", rec.OpenTime.Format(time.RFC3339))
	fmt.Fprintf(w, "  closed:     %s\n", rec.CloseTime.Format(time.RFC3339))
	fmt.Fprintf(w, "  balance:    %.2f\n", rec.BalanceAfter)
	return nil
}

func listDay(cmd *cobra.Command, day time.Time) error {
	j, loc, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	trades, err := j.ListTradesClosedBetween(start, start.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(trades) == 0 {
		fmt.Fprintf(w, "No trades closed on %s\n", start.Format("2006-01-02"))
		return nil
	}
	printTrades(w, trades)
	printStats(w, journal.Summarize(trades))
	return nil
}

func runJournalStats(cmd *cobra.Command, args []string) error {
	j, loc, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	day := time.Now()
	if journalDay != "" {
		if day, err = time.ParseInLocation("2006-01-02", journalDay, loc); err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}
	}
	st, err := j.DailyStats(day, loc)
	if err != nil {
		return fmt.Errorf("daily stats: %w", err)
	}
	printStats(cmd.OutOrStdout(), st)
	return nil
}

func printTrades(w io.Writer, trades []journal.TradeRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLOSED\tID\tSYMBOL\tDIR\tCONF\tSTAKE\tPNL\tBALANCE")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.3f\t%.2f\t%.2f\t%.2f\n",
			t.CloseTime.Format("15:04:05"), t.TradeID, t.Symbol, t.Direction,
			t.Confidence, t.Stake, t.PnL, t.BalanceAfter)
	}
	tw.Flush()
}

func printStats(w io.Writer, s journal.Stats) {
	fmt.Fprintf(w, "  trades %d (won %d, lost %d), win rate %.1f%%, net %.2f, profit factor %.2f\n",
		s.Trades, s.Wins, s.Losses, 100*s.WinRate, s.NetPnL, s.ProfitFactor)
}
