// Package analytics folds a reconstructed position list into grouped
// summaries and scalar performance metrics. Every function here is a pure
// reduction: same positions in, byte-identical rows out.
package analytics

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradebook/positions"
)

// DaySummary is the per-calendar-day reduction of a position list.
type DaySummary struct {
	Day string `json:"day"` // YYYY-MM-DD

	Positions int     `json:"positions"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"winRate"`

	TotalNetProfit   float64 `json:"totalNetProfit"`
	TotalRealizedPnl float64 `json:"totalRealizedPnl"`
	TotalNotional    float64 `json:"totalNotional"`
}

// MonthSummary is the per-calendar-month reduction of a position list.
type MonthSummary struct {
	Month string `json:"month"` // YYYY-MM

	Positions int     `json:"positions"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"winRate"`

	TotalNetProfit   float64 `json:"totalNetProfit"`
	TotalRealizedPnl float64 `json:"totalRealizedPnl"`
	TotalNotional    float64 `json:"totalNotional"`
}

// SymbolSummary is the per-symbol reduction of a position list.
type SymbolSummary struct {
	Symbol string `json:"symbol"`

	Positions int     `json:"positions"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"winRate"`

	TotalNetProfit   float64 `json:"totalNetProfit"`
	TotalRealizedPnl float64 `json:"totalRealizedPnl"`

	// TotalNotional is entry-side only (qty * entry price), not turnover.
	TotalNotional float64 `json:"totalNotional"`
}

// bucket holds the running reduction shared by all three groupings.
type bucket struct {
	positions int
	wins      int
	losses    int
	net       float64
	realized  float64
	notional  float64
}

func (b *bucket) add(p positions.Position) {
	b.positions++
	if p.NetProfit > 0 {
		b.wins++
	}
	if p.NetProfit < 0 {
		b.losses++
	}
	b.net += p.NetProfit
	b.realized += p.RealizedPnl
	b.notional += p.Quantity * p.EntryPrice
}

func (b *bucket) winRate() float64 {
	if b.positions == 0 {
		return 0
	}
	return float64(b.wins) / float64(b.positions)
}

// groupTime is the calendar anchor of a position: close time when closed,
// otherwise open time.
func groupTime(p positions.Position) time.Time {
	if !p.ClosedAt.IsZero() {
		return p.ClosedAt
	}
	return p.OpenedAt
}

// GroupByDay reduces positions into one row per calendar day (UTC),
// sorted ascending by day.
func GroupByDay(list []positions.Position) []DaySummary {
	buckets := map[string]*bucket{}
	for _, p := range list {
		key := groupTime(p).UTC().Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.add(p)
	}

	out := make([]DaySummary, 0, len(buckets))
	for day, b := range buckets {
		out = append(out, DaySummary{
			Day:              day,
			Positions:        b.positions,
			Wins:             b.wins,
			Losses:           b.losses,
			WinRate:          b.winRate(),
			TotalNetProfit:   b.net,
			TotalRealizedPnl: b.realized,
			TotalNotional:    b.notional,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// GroupByMonth reduces positions into one row per calendar month (UTC),
// sorted ascending by month.
func GroupByMonth(list []positions.Position) []MonthSummary {
	buckets := map[string]*bucket{}
	for _, p := range list {
		key := groupTime(p).UTC().Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.add(p)
	}

	out := make([]MonthSummary, 0, len(buckets))
	for month, b := range buckets {
		out = append(out, MonthSummary{
			Month:            month,
			Positions:        b.positions,
			Wins:             b.wins,
			Losses:           b.losses,
			WinRate:          b.winRate(),
			TotalNetProfit:   b.net,
			TotalRealizedPnl: b.realized,
			TotalNotional:    b.notional,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// GroupBySymbol reduces positions into one row per symbol, sorted by total
// net profit descending so the first row is the best performer. Ties fall
// back to the symbol string to keep the order reproducible.
func GroupBySymbol(list []positions.Position) []SymbolSummary {
	buckets := map[string]*bucket{}
	for _, p := range list {
		b, ok := buckets[p.Symbol]
		if !ok {
			b = &bucket{}
			buckets[p.Symbol] = b
		}
		b.add(p)
	}

	out := make([]SymbolSummary, 0, len(buckets))
	for symbol, b := range buckets {
		out = append(out, SymbolSummary{
			Symbol:           symbol,
			Positions:        b.positions,
			Wins:             b.wins,
			Losses:           b.losses,
			WinRate:          b.winRate(),
			TotalNetProfit:   b.net,
			TotalRealizedPnl: b.realized,
			TotalNotional:    b.notional,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalNetProfit != out[j].TotalNetProfit {
			return out[i].TotalNetProfit > out[j].TotalNetProfit
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
