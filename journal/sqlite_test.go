package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/positions"
	"github.com/rustyeddy/tradebook/trade"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func samplePosition(symbol string, closed time.Time, net float64) positions.Position {
	return positions.Position{
		ID:          symbol + "-LONG-x-1",
		Symbol:      symbol,
		Side:        trade.SideLong,
		OpenedAt:    closed.Add(-time.Hour),
		ClosedAt:    closed,
		Quantity:    2,
		EntryPrice:  100,
		ExitPrice:   110,
		RealizedPnl: net,
		NetProfit:   net,
		Fills:       []positions.Fill{{SliceQuantity: 2}, {SliceQuantity: 2}},
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	_, path := newTestSQLite(t)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','positions')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["positions"])
}

func TestSQLiteRecordAndQuery(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	closed := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	run := Run{
		RunID:     "run-1",
		Created:   time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC),
		Source:    "trades.json",
		Events:    10,
		Positions: 2,
		OpenLots:  1,
		Errors:    0,
	}
	require.NoError(t, j.RecordRun(run))

	ps := []positions.Position{
		samplePosition("BTCUSDT", closed, 25),
		samplePosition("ETHUSDT", closed.Add(time.Hour), -10),
	}
	require.NoError(t, j.RecordPositions(run.RunID, ps))

	rec, err := j.GetPosition("BTCUSDT-LONG-x-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, "BTCUSDT", rec.Symbol)
	assert.Equal(t, "LONG", rec.Side)
	assert.True(t, rec.ClosedAt.Equal(closed))
	assert.InDelta(t, 25.0, rec.NetProfit, 1e-9)
	assert.Equal(t, 2, rec.Fills)
	assert.False(t, rec.NetProfitApprox)

	bySymbol, err := j.ListBySymbol("ETHUSDT")
	require.NoError(t, err)
	require.Len(t, bySymbol, 1)
	assert.InDelta(t, -10.0, bySymbol[0].NetProfit, 1e-9)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	day, err := j.ListClosedBetween(start, end)
	require.NoError(t, err)
	assert.Len(t, day, 2)

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "trades.json", runs[0].Source)
	assert.Equal(t, 10, runs[0].Events)
}

func TestSQLiteGetPositionNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	_, err := j.GetPosition("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteNetProfitApproxRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	p := samplePosition("BTCUSDT", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 5)
	p.NetProfitApprox = true
	require.NoError(t, j.RecordPositions("run-x", []positions.Position{p}))

	rec, err := j.GetPosition(p.ID)
	require.NoError(t, err)
	assert.True(t, rec.NetProfitApprox)
}
