package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/1cbyc/1cbyc-trading-bot/consensus"
	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/1cbyc/1cbyc-trading-bot/strategies"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [symbol...]",
	Short: "Evaluate symbols once without trading",
	Long: `Fetch recent bars and print each evaluator's vote and the aggregated
decision. Without symbols every configured symbol is evaluated. With --csv
the bars are read from a file instead of the broker.

Examples:
  tradebot evaluate R_50
  tradebot evaluate --csv bars.csv --json`,
	RunE: runEvaluate,
}

var (
	evaluateCSV  string
	evaluateJSON bool
)

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evaluateCSV, "csv", "", "read bars from a CSV file (time,open,high,low,close[,volume])")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "print decisions as JSON")
}

type evaluation struct {
	Symbol    string             `json:"symbol"`
	Decision  consensus.Decision `json:"decision"`
	Tradeable bool               `json:"tradeable"`
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	threshold := cfg.Engine.ConfidenceThreshold

	var out []evaluation
	if evaluateCSV != "" {
		evals, err := strategies.Build(cfg.Evaluators)
		if err != nil {
			return err
		}
		sym := evaluateCSV
		if len(args) > 0 {
			sym = args[0]
		}
		d, err := evaluateFile(evaluateCSV, sym, evals, cfg.Engine.Lookback)
		if err != nil {
			return err
		}
		out = append(out, evaluation{Symbol: sym, Decision: d, Tradeable: d.Tradeable(threshold)})
	} else {
		if len(args) > 0 {
			cfg.Engine.Symbols = args
		}
		b, err := newBot(cmd.Context(), cfg, zap.NewNop())
		if err != nil {
			return err
		}
		defer b.journal.Close()

		for _, sym := range cfg.Engine.Symbols {
			d, err := b.engine.EvaluateOnce(cmd.Context(), sym)
			if err != nil {
				return err
			}
			out = append(out, evaluation{Symbol: sym, Decision: d, Tradeable: d.Tradeable(threshold)})
		}
	}

	if evaluateJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printEvaluations(cmd.OutOrStdout(), out, threshold)
	return nil
}

// evaluateFile runs evals over the newest lookback bars of a CSV file.
func evaluateFile(path, symbol string, evals []strategies.Evaluator, lookback int) (consensus.Decision, error) {
	bars, err := market.LoadBarsFile(path)
	if err != nil {
		return consensus.Decision{}, err
	}
	bs := market.NewBarSet(symbol, lookback)
	bs.Merge(bars)
	votes := strategies.EvaluateAll(evals, bs)
	return consensus.Aggregate(votes, len(evals)), nil
}

func printEvaluations(w io.Writer, evs []evaluation, threshold float64) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, ev := range evs {
		d := ev.Decision
		fmt.Fprintf(tw, "%s\t%s\tconfidence %.3f\tup %d\tdown %d\t", ev.Symbol, d.Direction, d.Confidence, d.Up, d.Down)
		if ev.Tradeable {
			fmt.Fprintf(tw, "trade\n")
		} else {
			fmt.Fprintf(tw, "hold (threshold %.2f)\n", threshold)
		}
		for _, v := range d.Votes {
			fmt.Fprintf(tw, "  %s\t%s\t%.3f\t\t\t\n", v.Source, v.Direction, v.Strength)
		}
	}
	tw.Flush()
}
