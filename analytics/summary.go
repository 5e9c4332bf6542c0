package analytics

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradebook/positions"
)

// PositionRef points at a notable position without dragging its fills along.
type PositionRef struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	NetProfit float64 `json:"netProfit"`
}

// Summary is the full per-population report: the win-rate family plus
// expectancy, streaks, and the best and worst single positions.
type Summary struct {
	Positions int     `json:"positions"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"winRate"`

	TotalNetProfit float64 `json:"totalNetProfit"`

	GrossProfit  float64 `json:"grossProfit"`
	GrossLoss    float64 `json:"grossLoss"` // negative
	ProfitFactor float64 `json:"profitFactor"`

	AvgWin     float64 `json:"avgWin"`
	AvgLoss    float64 `json:"avgLoss"` // negative
	Expectancy float64 `json:"expectancy"`

	MaxDrawdown float64 `json:"maxDrawdown"` // negative

	BestPosition  *PositionRef `json:"bestPosition"`
	WorstPosition *PositionRef `json:"worstPosition"`

	MaxWinStreak  int `json:"maxWinStreak"`
	MaxLossStreak int `json:"maxLossStreak"`
}

// summaryTime orders positions for streak and drawdown walks: close time
// when closed, open time otherwise.
func summaryTime(p positions.Position) time.Time {
	if !p.ClosedAt.IsZero() {
		return p.ClosedAt
	}
	return p.OpenedAt
}

// BuildSummary folds a position list into a Summary in one chronological
// pass. A breakeven position (net profit exactly zero) breaks both the win
// and the loss streak. Ties for best/worst keep the earlier position.
func BuildSummary(list []positions.Position) Summary {
	sorted := make([]positions.Position, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return summaryTime(sorted[i]).Before(summaryTime(sorted[j]))
	})

	var s Summary
	s.Positions = len(sorted)

	var (
		curWin, curLoss int
		equity, peak    float64
		best, worst     *PositionRef
	)

	for _, p := range sorted {
		pnl := p.NetProfit

		if pnl > 0 {
			s.Wins++
			s.GrossProfit += pnl
		}
		if pnl < 0 {
			s.Losses++
			s.GrossLoss += pnl
		}
		s.TotalNetProfit += pnl

		if best == nil || pnl > best.NetProfit {
			best = &PositionRef{ID: p.ID, Symbol: p.Symbol, NetProfit: pnl}
		}
		if worst == nil || pnl < worst.NetProfit {
			worst = &PositionRef{ID: p.ID, Symbol: p.Symbol, NetProfit: pnl}
		}

		switch {
		case pnl > 0:
			curWin++
			curLoss = 0
			if curWin > s.MaxWinStreak {
				s.MaxWinStreak = curWin
			}
		case pnl < 0:
			curLoss++
			curWin = 0
			if curLoss > s.MaxLossStreak {
				s.MaxLossStreak = curLoss
			}
		default:
			curWin = 0
			curLoss = 0
		}

		equity += pnl
		if equity > peak {
			peak = equity
		}
		if dd := equity - peak; dd < s.MaxDrawdown {
			s.MaxDrawdown = dd
		}
	}

	if s.Positions > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Positions)
		s.Expectancy = s.TotalNetProfit / float64(s.Positions)
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.ProfitFactor = profitFactor(s.GrossProfit, s.GrossLoss)

	s.BestPosition = best
	s.WorstPosition = worst

	return s
}
