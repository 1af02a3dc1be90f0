package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run polls every symbol on its own loop until ctx is done. Symbols share
// nothing but the risk gate. A failed cycle is logged and retried on the
// next tick; ticks that arrive while a cycle is still running are dropped.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("engine starting",
		zap.Strings("symbols", e.cfg.Symbols),
		zap.Duration("poll_interval", e.cfg.PollInterval),
		zap.Float64("threshold", e.cfg.ConfidenceThreshold),
		zap.Int("evaluators", len(e.evals)))
	e.observeRisk(e.gate.Summary())

	g, ctx := errgroup.WithContext(ctx)
	for _, sym := range e.cfg.Symbols {
		sym := sym
		g.Go(func() error {
			e.poll(ctx, sym)
			return nil
		})
	}
	g.Go(func() error {
		e.clock(ctx)
		return nil
	})

	err := g.Wait()
	e.log.Info("engine stopped")
	return err
}

func (e *Engine) poll(ctx context.Context, sym string) {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := e.RunCycle(ctx, sym); err != nil && ctx.Err() == nil {
			e.log.Error("cycle abandoned", zap.String("symbol", sym), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// clock drives the day rollover so a quiet gate still resets at midnight.
func (e *Engine) clock(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.gate.Rollover(e.now())
		}
	}
}
