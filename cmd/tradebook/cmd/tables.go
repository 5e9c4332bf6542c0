package cmd

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/rustyeddy/tradebook/analytics"
	"github.com/rustyeddy/tradebook/trade"
)

func printOverview(w io.Writer, ov trade.Overview) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Trade Export Overview")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Rows:          %d (%d executed, %d cancelled)\n", ov.TotalRows, ov.Executed, ov.Cancelled)
	fmt.Fprintf(w, "Symbols:       %d\n", ov.Symbols)
	if ov.From != nil && ov.To != nil {
		fmt.Fprintf(w, "Period:        %s .. %s\n",
			ov.From.UTC().Format(time.RFC3339), ov.To.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Notional:      %.2f\n", ov.TotalNotional)
	fmt.Fprintf(w, "Realized PnL:  %.2f\n", ov.TotalRealizedPnl)
	fmt.Fprintf(w, "Net Profit:    %.2f\n", ov.TotalNetProfit)
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, s analytics.Summary) {
	fmt.Fprintln(w, "Performance Summary")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Positions:     %d\n", s.Positions)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate*100)
	fmt.Fprintf(w, "Net Profit:    %.2f\n", s.TotalNetProfit)
	fmt.Fprintf(w, "Expectancy:    %.2f\n", s.Expectancy)
	fmt.Fprintf(w, "Profit Factor: %s\n", pf(s.ProfitFactor))
	fmt.Fprintf(w, "Max Drawdown:  %.2f\n", s.MaxDrawdown)
	fmt.Fprintf(w, "Streaks:       %d win / %d loss\n", s.MaxWinStreak, s.MaxLossStreak)
	if s.BestPosition != nil {
		fmt.Fprintf(w, "Best:          %s %+.2f\n", s.BestPosition.Symbol, s.BestPosition.NetProfit)
	}
	if s.WorstPosition != nil {
		fmt.Fprintf(w, "Worst:         %s %+.2f\n", s.WorstPosition.Symbol, s.WorstPosition.NetProfit)
	}
	fmt.Fprintln(w)
}

func printStats(w io.Writer, s analytics.PositionStats) {
	fmt.Fprintln(w, "Closed Position Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Closed:        %d\n", s.Positions)
	fmt.Fprintf(w, "Avg Win:       %.2f\n", s.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", s.AvgLoss)
	fmt.Fprintf(w, "Avg Hold:      %.1f min\n", s.AvgHoldMinutes)
	fmt.Fprintf(w, "Profit Factor: %s\n", pf(s.ProfitFactor))
	fmt.Fprintf(w, "Max Drawdown:  %.2f\n", s.MaxDrawdown)
	fmt.Fprintln(w)
}

func printDayTable(w io.Writer, rows []analytics.DaySummary) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, "By Day")
	table := tablewriter.NewWriter(w)
	table.Header("Day", "Pos", "W", "L", "WinRate", "Net", "Realized", "Notional")
	for _, r := range rows {
		table.Append(
			r.Day,
			fmt.Sprintf("%d", r.Positions),
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%d", r.Losses),
			fmt.Sprintf("%.0f%%", r.WinRate*100),
			fmt.Sprintf("%.2f", r.TotalNetProfit),
			fmt.Sprintf("%.2f", r.TotalRealizedPnl),
			fmt.Sprintf("%.2f", r.TotalNotional),
		)
	}
	table.Render()
	fmt.Fprintln(w)
}

func printMonthTable(w io.Writer, rows []analytics.MonthSummary) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, "By Month")
	table := tablewriter.NewWriter(w)
	table.Header("Month", "Pos", "W", "L", "WinRate", "Net", "Realized", "Notional")
	for _, r := range rows {
		table.Append(
			r.Month,
			fmt.Sprintf("%d", r.Positions),
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%d", r.Losses),
			fmt.Sprintf("%.0f%%", r.WinRate*100),
			fmt.Sprintf("%.2f", r.TotalNetProfit),
			fmt.Sprintf("%.2f", r.TotalRealizedPnl),
			fmt.Sprintf("%.2f", r.TotalNotional),
		)
	}
	table.Render()
	fmt.Fprintln(w)
}

func printSymbolTable(w io.Writer, rows []analytics.SymbolSummary) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, "By Symbol")
	table := tablewriter.NewWriter(w)
	table.Header("Symbol", "Pos", "W", "L", "WinRate", "Net", "Realized", "Notional")
	for _, r := range rows {
		table.Append(
			r.Symbol,
			fmt.Sprintf("%d", r.Positions),
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%d", r.Losses),
			fmt.Sprintf("%.0f%%", r.WinRate*100),
			fmt.Sprintf("%.2f", r.TotalNetProfit),
			fmt.Sprintf("%.2f", r.TotalRealizedPnl),
			fmt.Sprintf("%.2f", r.TotalNotional),
		)
	}
	table.Render()
	fmt.Fprintln(w)
}

// pf renders a profit factor, where +Inf means no losing positions.
func pf(v float64) string {
	if math.IsInf(v, 1) {
		return "INF"
	}
	return fmt.Sprintf("%.2f", v)
}
