// Package status serves a read-only HTTP view of a running engine.
package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/consensus"
	"github.com/1cbyc/1cbyc-trading-bot/logger"
	"github.com/1cbyc/1cbyc-trading-bot/risk"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Source is what the server reports on. *engine.Engine satisfies it.
type Source interface {
	Symbols() []string
	Threshold() float64
	RiskSummary() risk.State
	LastDecision(symbol string) (consensus.Decision, bool)
	EvaluateOnce(ctx context.Context, symbol string) (consensus.Decision, error)
}

type Server struct {
	src     Source
	log     *zap.Logger
	router  *gin.Engine
	started time.Time
	http    *http.Server
}

func New(src Source, log *zap.Logger) *Server {
	s := &Server{
		src:     src,
		log:     logger.OrNop(log),
		router:  gin.New(),
		started: time.Now(),
	}
	s.router.Use(gin.Recovery(), s.accessLog())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/risk", s.handleRisk)
	s.router.GET("/decisions", s.handleDecisions)
	s.router.GET("/decisions/:symbol", s.handleDecision)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("status server listening", zap.String("addr", addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("status server: %w", err)
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("status server shutdown: %w", err)
	}
	return <-errc
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	st := s.src.RiskSummary()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"gate":    st.Status,
		"symbols": s.src.Symbols(),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

type riskResponse struct {
	risk.State
	Drawdown float64 `json:"drawdown"`
	WinRate  float64 `json:"win_rate"`
}

func (s *Server) handleRisk(c *gin.Context) {
	st := s.src.RiskSummary()
	c.JSON(http.StatusOK, riskResponse{State: st, Drawdown: st.Drawdown(), WinRate: st.WinRate()})
}

type decisionResponse struct {
	Symbol    string             `json:"symbol"`
	Decision  consensus.Decision `json:"decision"`
	Tradeable bool               `json:"tradeable"`
	Threshold float64            `json:"threshold"`
}

func (s *Server) respond(symbol string, d consensus.Decision) decisionResponse {
	th := s.src.Threshold()
	return decisionResponse{Symbol: symbol, Decision: d, Tradeable: d.Tradeable(th), Threshold: th}
}

func (s *Server) handleDecisions(c *gin.Context) {
	out := []decisionResponse{}
	for _, sym := range s.src.Symbols() {
		if d, ok := s.src.LastDecision(sym); ok {
			out = append(out, s.respond(sym, d))
		}
	}
	c.JSON(http.StatusOK, out)
}

// handleDecision returns the last decision for a symbol. With ?fresh=true
// it evaluates now instead, without trading.
func (s *Server) handleDecision(c *gin.Context) {
	sym := c.Param("symbol")
	if !s.known(sym) {
		errorResponse(c, http.StatusNotFound, fmt.Sprintf("symbol %s is not traded", sym))
		return
	}

	if c.Query("fresh") == "true" {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		d, err := s.src.EvaluateOnce(ctx, sym)
		if err != nil {
			s.log.Warn("fresh evaluation failed", zap.String("symbol", sym), zap.Error(err))
			errorResponse(c, http.StatusBadGateway, err.Error())
			return
		}
		c.JSON(http.StatusOK, s.respond(sym, d))
		return
	}

	d, ok := s.src.LastDecision(sym)
	if !ok {
		errorResponse(c, http.StatusNotFound, fmt.Sprintf("no decision yet for %s", sym))
		return
	}
	c.JSON(http.StatusOK, s.respond(sym, d))
}

func (s *Server) known(sym string) bool {
	for _, v := range s.src.Symbols() {
		if v == sym {
			return true
		}
	}
	return false
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"error":   true,
		"message": message,
	})
}
