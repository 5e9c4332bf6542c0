package cmd

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled positions",
	Long: `Query positions recorded by earlier analyze runs.

Subcommands:
  position - Get one position by its ID
  day      - List positions closed on a specific day
  symbol   - List positions for a symbol
  runs     - List recorded analyze runs

Examples:
  tradebook journal position BTCUSDT-LONG-184-1
  tradebook journal day 2024-01-15
  tradebook journal symbol ETHUSDT`,
}

var journalPositionCmd = &cobra.Command{
	Use:   "position <position-id>",
	Short: "Get one position by its ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalPosition,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List positions closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalSymbolCmd = &cobra.Command{
	Use:   "symbol <symbol>",
	Short: "List positions for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSymbol,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analyze runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalPositionCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalSymbolCmd)
	journalCmd.AddCommand(journalRunsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./tradebook.sqlite", "path to SQLite journal DB")
}

func openJournal() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalPosition(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetPosition(args[0])
	if err != nil {
		return fmt.Errorf("get position: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Position:      %s\n", rec.PositionID)
	fmt.Fprintf(w, "Symbol:        %s %s\n", rec.Symbol, rec.Side)
	fmt.Fprintf(w, "Opened:        %s\n", rec.OpenedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Closed:        %s\n", rec.ClosedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Quantity:      %v\n", rec.Quantity)
	fmt.Fprintf(w, "Entry Price:   %.5f\n", rec.EntryPrice)
	fmt.Fprintf(w, "Exit Price:    %.5f\n", rec.ExitPrice)
	fmt.Fprintf(w, "Realized PnL:  %.2f\n", rec.RealizedPnl)
	fmt.Fprintf(w, "Net Profit:    %.2f", rec.NetProfit)
	if rec.NetProfitApprox {
		fmt.Fprintf(w, " (approx, backfilled from realized)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Fills:         %d\n", rec.Fills)
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := dayBounds(time.UTC, args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListClosedBetween(start, end)
	if err != nil {
		return fmt.Errorf("query positions: %w", err)
	}

	printRecords(cmd, recs)
	return nil
}

func runJournalSymbol(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListBySymbol(args[0])
	if err != nil {
		return fmt.Errorf("query positions: %w", err)
	}

	printRecords(cmd, recs)
	return nil
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Run", "Created", "Source", "Events", "Pos", "Open", "Errors")
	for _, r := range runs {
		table.Append(
			shortRunID(r.RunID),
			r.Created.UTC().Format("2006-01-02 15:04"),
			r.Source,
			fmt.Sprintf("%d", r.Events),
			fmt.Sprintf("%d", r.Positions),
			fmt.Sprintf("%d", r.OpenLots),
			fmt.Sprintf("%d", r.Errors),
		)
	}
	table.Render()
	return nil
}

func printRecords(cmd *cobra.Command, recs []journal.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no positions found")
		return
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Position", "Symbol", "Side", "Closed", "Qty", "Entry", "Exit", "Net")
	for _, r := range recs {
		table.Append(
			r.PositionID,
			r.Symbol,
			r.Side,
			r.ClosedAt.UTC().Format("2006-01-02 15:04"),
			fmt.Sprintf("%v", r.Quantity),
			fmt.Sprintf("%.5f", r.EntryPrice),
			fmt.Sprintf("%.5f", r.ExitPrice),
			fmt.Sprintf("%.2f", r.NetProfit),
		)
	}
	table.Render()
}

func shortRunID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
