package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/logger"
	"github.com/1cbyc/1cbyc-trading-bot/status"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trading loop",
	Long: `Poll every configured symbol, evaluate, and trade approved decisions
until interrupted. With status.enabled the HTTP status server runs alongside.

Examples:
  tradebot run -c tradebot.yaml
  tradebot run --for 10m`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var runFor time.Duration

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().DurationVar(&runFor, "for", 0, "stop after this long (0 runs until interrupted)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runFor)
		defer cancel()
	}

	b, err := newBot(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Error("close journal", zap.Error(err))
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.engine.Run(ctx) })
	if cfg.Status.Enabled {
		if cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := status.New(b.engine, log)
		g.Go(func() error { return srv.Run(ctx, cfg.Status.Listen) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run: %w", err)
	}

	st := b.engine.RiskSummary()
	fmt.Fprintf(cmd.OutOrStdout(), "stopped: %d trades today, pnl %.2f, balance %.2f, gate %s\n",
		st.DailyTradeCount, st.DailyRealizedPnL, st.CurrentBalance, st.Status)
	return nil
}
