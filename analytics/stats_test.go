package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/positions"
)

func closedSeq(pnls ...float64) []positions.Position {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	out := make([]positions.Position, len(pnls))
	for i, pnl := range pnls {
		closed := start.Add(time.Duration(i) * time.Hour)
		out[i] = positions.Position{
			ID:        "p" + string(rune('0'+i)),
			Symbol:    "BTCUSDT",
			OpenedAt:  closed.Add(-30 * time.Minute),
			ClosedAt:  closed,
			NetProfit: pnl,
		}
	}
	return out
}

func TestBuildPositionStats(t *testing.T) {
	t.Parallel()

	stats := BuildPositionStats(closedSeq(100, -50, 20, -10))

	assert.Equal(t, 4, stats.Positions)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.InDelta(t, 0.5, stats.WinRate, 1e-9)
	assert.InDelta(t, 60.0, stats.TotalNetProfit, 1e-9)
	assert.InDelta(t, 120.0, stats.GrossProfit, 1e-9)
	assert.InDelta(t, -60.0, stats.GrossLoss, 1e-9)
	assert.InDelta(t, 2.0, stats.ProfitFactor, 1e-9)
	assert.InDelta(t, 60.0, stats.AvgWin, 1e-9)
	assert.InDelta(t, -30.0, stats.AvgLoss, 1e-9)
	assert.InDelta(t, 30.0, stats.AvgHoldMinutes, 1e-9)
}

func TestBuildPositionStatsIgnoresOpenPositions(t *testing.T) {
	t.Parallel()

	list := closedSeq(10, -5)
	list = append(list, positions.Position{
		Symbol:    "BTCUSDT",
		OpenedAt:  time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		NetProfit: 999,
	})

	stats := BuildPositionStats(list)
	assert.Equal(t, 2, stats.Positions)
	assert.InDelta(t, 5.0, stats.TotalNetProfit, 1e-9)
}

func TestProfitFactorEdgeCases(t *testing.T) {
	t.Parallel()

	allWins := BuildPositionStats(closedSeq(10, 20))
	assert.True(t, math.IsInf(allWins.ProfitFactor, 1))

	empty := BuildPositionStats(nil)
	assert.Equal(t, 0, empty.Positions)
	assert.InDelta(t, 0.0, empty.ProfitFactor, 1e-9)
	assert.InDelta(t, 0.0, empty.WinRate, 1e-9)
	assert.InDelta(t, 0.0, empty.AvgWin, 1e-9)
	assert.InDelta(t, 0.0, empty.AvgLoss, 1e-9)

	allLosses := BuildPositionStats(closedSeq(-10, -20))
	assert.InDelta(t, 0.0, allLosses.ProfitFactor, 1e-9)
}

func TestNegativeHoldTimeClampedToZero(t *testing.T) {
	t.Parallel()

	closed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p := positions.Position{
		Symbol:    "BTCUSDT",
		OpenedAt:  closed.Add(time.Hour), // malformed: opened after close
		ClosedAt:  closed,
		NetProfit: 5,
	}

	stats := BuildPositionStats([]positions.Position{p})
	assert.InDelta(t, 0.0, stats.AvgHoldMinutes, 1e-9)
}

func TestMaxDrawdownSequence(t *testing.T) {
	t.Parallel()

	list := closedSeq(10, -30, 5, -5)

	curve := EquityCurve(list)
	require.Len(t, curve, 4)

	wantEquity := []float64{10, -20, -15, -20}
	wantPeak := []float64{10, 10, 10, 10}
	for i, pt := range curve {
		assert.InDelta(t, wantEquity[i], pt.Equity, 1e-9, "equity step %d", i)
		assert.InDelta(t, wantPeak[i], pt.Peak, 1e-9, "peak step %d", i)
	}

	stats := BuildPositionStats(list)
	assert.InDelta(t, -30.0, stats.MaxDrawdown, 1e-9)
}

func TestDrawdownMonotonicity(t *testing.T) {
	t.Parallel()

	curve := EquityCurve(closedSeq(7, -3, 12, -20, 4, 4, -1, 0, 9, -30))

	for i := 1; i < len(curve); i++ {
		assert.GreaterOrEqual(t, curve[i].Peak, curve[i-1].Peak, "peak must never fall")
		assert.LessOrEqual(t, curve[i].Drawdown, 0.0, "drawdown is never positive")
	}
}

func TestMaxDrawdownEmptyAndAllWinning(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, BuildPositionStats(nil).MaxDrawdown, 1e-9)
	assert.InDelta(t, 0.0, BuildPositionStats(closedSeq(1, 2, 3)).MaxDrawdown, 1e-9)
}
