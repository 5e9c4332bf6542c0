package analytics

import (
	"math"
	"sort"

	"github.com/rustyeddy/tradebook/positions"
)

// PositionStats are the scalar metrics over closed positions only.
// AvgLoss and MaxDrawdown are negative (or zero); ProfitFactor is +Inf for
// an all-winning population and 0 for an empty or all-losing one.
type PositionStats struct {
	Positions int     `json:"positions"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"winRate"`

	TotalNetProfit float64 `json:"totalNetProfit"`

	GrossProfit  float64 `json:"grossProfit"`
	GrossLoss    float64 `json:"grossLoss"` // negative
	ProfitFactor float64 `json:"profitFactor"`

	AvgWin  float64 `json:"avgWin"`
	AvgLoss float64 `json:"avgLoss"` // negative

	AvgHoldMinutes float64 `json:"avgHoldMinutes"`
	MaxDrawdown    float64 `json:"maxDrawdown"` // negative, in PnL units
}

// BuildPositionStats computes PositionStats over the closed subset of the
// given positions. Degenerate populations never divide by zero: every
// average falls back to 0 and the profit factor to 0 or +Inf.
func BuildPositionStats(list []positions.Position) PositionStats {
	closed := make([]positions.Position, 0, len(list))
	for _, p := range list {
		if !p.ClosedAt.IsZero() {
			closed = append(closed, p)
		}
	}

	var s PositionStats
	s.Positions = len(closed)

	var holdSum float64
	for _, p := range closed {
		pnl := p.NetProfit
		s.TotalNetProfit += pnl

		if pnl > 0 {
			s.Wins++
			s.GrossProfit += pnl
		}
		if pnl < 0 {
			s.Losses++
			s.GrossLoss += pnl
		}

		// Negative hold times mean malformed upstream timestamps; clamp
		// rather than let them drag the average below zero.
		hold := p.ClosedAt.Sub(p.OpenedAt).Minutes()
		if hold < 0 {
			hold = 0
		}
		holdSum += hold
	}

	if s.Positions > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Positions)
		s.AvgHoldMinutes = holdSum / float64(s.Positions)
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.ProfitFactor = profitFactor(s.GrossProfit, s.GrossLoss)

	s.MaxDrawdown = maxDrawdown(closed)

	return s
}

func profitFactor(grossProfit, grossLoss float64) float64 {
	if math.Abs(grossLoss) > 0 {
		return grossProfit / math.Abs(grossLoss)
	}
	if grossProfit > 0 {
		return math.Inf(1)
	}
	return 0
}

// maxDrawdown walks the closed positions in close-time order, tracking the
// running equity and its peak. One linear pass: peak only ever rises,
// drawdown only ever falls.
func maxDrawdown(closed []positions.Position) float64 {
	sorted := make([]positions.Position, len(closed))
	copy(sorted, closed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ClosedAt.Before(sorted[j].ClosedAt)
	})

	var equity, peak, drawdown float64
	for _, p := range sorted {
		equity += p.NetProfit
		if equity > peak {
			peak = equity
		}
		if dd := equity - peak; dd < drawdown {
			drawdown = dd
		}
	}
	return drawdown
}

// EquityPoint is one step of the cumulative net-profit curve.
type EquityPoint struct {
	PositionID string  `json:"positionId"`
	Equity     float64 `json:"equity"`
	Peak       float64 `json:"peak"`
	Drawdown   float64 `json:"drawdown"` // equity - peak, never positive
}

// EquityCurve returns the running equity curve over the closed positions in
// close-time order. Useful for charting and for checking the drawdown walk.
func EquityCurve(list []positions.Position) []EquityPoint {
	closed := make([]positions.Position, 0, len(list))
	for _, p := range list {
		if !p.ClosedAt.IsZero() {
			closed = append(closed, p)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].ClosedAt.Before(closed[j].ClosedAt)
	})

	out := make([]EquityPoint, 0, len(closed))
	var equity, peak float64
	for _, p := range closed {
		equity += p.NetProfit
		if equity > peak {
			peak = equity
		}
		out = append(out, EquityPoint{
			PositionID: p.ID,
			Equity:     equity,
			Peak:       peak,
			Drawdown:   equity - peak,
		})
	}
	return out
}
