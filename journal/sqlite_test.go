package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','risk_snapshots')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())
	assert.True(t, found["trades"])
	assert.True(t, found["risk_snapshots"])
}

func trade(id string, closeT time.Time, pnl float64) TradeRecord {
	return TradeRecord{
		TradeID:      id,
		Symbol:       "R_100",
		Direction:    "UP",
		Stake:        1,
		PnL:          pnl,
		Confidence:   0.5,
		OpenTime:     closeT.Add(-5 * time.Minute),
		CloseTime:    closeT,
		BalanceAfter: 1000 + pnl,
	}
}

func TestSQLiteRecordAndGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	closeT := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	want := trade("T1", closeT, -1)
	require.NoError(t, j.RecordTrade(want))

	got, err := j.GetTrade("T1")
	require.NoError(t, err)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.Direction, got.Direction)
	assert.Equal(t, want.PnL, got.PnL)
	assert.True(t, want.CloseTime.Equal(got.CloseTime))
	assert.True(t, want.OpenTime.Equal(got.OpenTime))

	_, err = j.GetTrade("missing")
	assert.Error(t, err)

	assert.Error(t, j.RecordTrade(want), "duplicate trade id")
}

func TestSQLiteDailyStats(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	recs := []TradeRecord{
		trade("A", day.Add(1*time.Hour), 0.95),
		trade("B", day.Add(2*time.Hour), -1),
		trade("C", day.Add(23*time.Hour), 1.90),
		trade("D", day.Add(25*time.Hour), -1), // next day
	}
	for _, r := range recs {
		require.NoError(t, j.RecordTrade(r))
	}

	list, err := j.ListTradesClosedBetween(day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].TradeID)
	assert.Equal(t, "C", list[2].TradeID)

	s, err := j.DailyStats(day.Add(12*time.Hour), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Trades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 2.0/3.0, s.WinRate, 1e-12)
	assert.InDelta(t, 1.85, s.NetPnL, 1e-9)
	assert.InDelta(t, 2.85, s.ProfitFactor, 1e-9)
}

func TestSQLiteRiskSnapshots(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.LatestRisk()
	assert.Error(t, err)

	t1 := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	require.NoError(t, j.RecordRisk(RiskSnapshot{Time: t1, Day: t1.Truncate(24 * time.Hour), Status: "open", DailyTradeCount: 3, Balance: 998}))
	require.NoError(t, j.RecordRisk(RiskSnapshot{Time: t1.Add(time.Minute), Day: t1.Add(time.Minute).Truncate(24 * time.Hour), Status: "paused", Reason: "daily-loss-limit", Balance: 950}))

	s, err := j.LatestRisk()
	require.NoError(t, err)
	assert.Equal(t, "paused", s.Status)
	assert.Equal(t, "daily-loss-limit", s.Reason)
	assert.Equal(t, 950.0, s.Balance)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Stats{}, Summarize(nil))
}
