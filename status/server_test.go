package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/1cbyc/1cbyc-trading-bot/consensus"
	"github.com/1cbyc/1cbyc-trading-bot/market"
	"github.com/1cbyc/1cbyc-trading-bot/risk"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSource struct {
	state    risk.State
	last     map[string]consensus.Decision
	fresh    consensus.Decision
	freshErr error
}

func (f *fakeSource) Symbols() []string       { return []string{"R_10", "R_50"} }
func (f *fakeSource) Threshold() float64      { return 0.4 }
func (f *fakeSource) RiskSummary() risk.State { return f.state }

func (f *fakeSource) LastDecision(sym string) (consensus.Decision, bool) {
	d, ok := f.last[sym]
	return d, ok
}

func (f *fakeSource) EvaluateOnce(context.Context, string) (consensus.Decision, error) {
	return f.fresh, f.freshErr
}

func newSource() *fakeSource {
	return &fakeSource{
		state: risk.State{
			Day:               time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Status:            risk.Paused,
			Reason:            risk.ReasonConsecutiveLosses,
			DailyTradeCount:   4,
			DailyWins:         1,
			ConsecutiveLosses: 3,
			PeakBalance:       1000,
			CurrentBalance:    900,
		},
		last: map[string]consensus.Decision{
			"R_50": {Direction: market.Up, Confidence: 0.55, Up: 3},
		},
		fresh: consensus.Decision{Direction: market.Down, Confidence: 0.2, Down: 1},
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	s := New(newSource(), zaptest.NewLogger(t))
	w := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "paused", body["gate"])
}

func TestRisk(t *testing.T) {
	s := New(newSource(), zaptest.NewLogger(t))
	w := get(t, s, "/risk")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "paused", body["status"])
	assert.Equal(t, "consecutive-loss-limit", body["reason"])
	assert.EqualValues(t, 4, body["daily_trade_count"])
	assert.InDelta(t, 0.1, body["drawdown"], 1e-9)
	assert.InDelta(t, 0.25, body["win_rate"], 1e-9)
}

func TestDecision(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		freshErr  error
		code      int
		direction string
		tradeable bool
	}{
		{"last", "/decisions/R_50", nil, http.StatusOK, "UP", true},
		{"fresh", "/decisions/R_10?fresh=true", nil, http.StatusOK, "DOWN", false},
		{"no decision yet", "/decisions/R_10", nil, http.StatusNotFound, "", false},
		{"unknown symbol", "/decisions/R_99", nil, http.StatusNotFound, "", false},
		{"fresh fails", "/decisions/R_10?fresh=true", errors.New("feed down"), http.StatusBadGateway, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSource()
			src.freshErr = tt.freshErr
			w := get(t, New(src, zaptest.NewLogger(t)), tt.path)
			require.Equal(t, tt.code, w.Code)
			if tt.code != http.StatusOK {
				return
			}

			var body decisionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.direction, body.Decision.Direction.String())
			assert.Equal(t, tt.tradeable, body.Tradeable)
			assert.Equal(t, 0.4, body.Threshold)
		})
	}
}

func TestDecisions(t *testing.T) {
	w := get(t, New(newSource(), zaptest.NewLogger(t)), "/decisions")
	require.Equal(t, http.StatusOK, w.Code)

	var body []decisionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "R_50", body[0].Symbol)
}

func TestMetrics(t *testing.T) {
	w := get(t, New(newSource(), zaptest.NewLogger(t)), "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
}
