package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/analytics"
	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/loader"
	"github.com/rustyeddy/tradebook/positions"
	"github.com/rustyeddy/tradebook/trade"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <events.json>",
	Short: "Rebuild positions from a trade export and print analytics",
	Long: `Load a JSON trade export, match close fills against open inventory
(FIFO per exchange/market/symbol/side), and print the resulting positions,
grouped summaries and performance statistics.

Examples:
  tradebook analyze trades.json
  tradebook analyze trades.json --symbol BTCUSDT
  tradebook analyze trades.json --db ./tradebook.sqlite
  tradebook analyze trades.json --org positions.org`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeSymbol string
	analyzeDB     string
	analyzeCSV    string
	analyzeOrg    string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeSymbol, "symbol", "", "restrict statistics to one symbol")
	analyzeCmd.Flags().StringVar(&analyzeDB, "db", "", "persist the run to this SQLite journal")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "export positions to this CSV file")
	analyzeCmd.Flags().StringVar(&analyzeOrg, "org", "", "write positions as an Org-mode journal to this file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogger(cfg.Log)

	events, err := loader.LoadFile(args[0])
	if err != nil {
		return err
	}

	overview := trade.BuildOverview(events)
	result := positions.Build(events, cfg.Matcher.Options())

	slog.Info("matching complete",
		"events", len(events),
		"positions", len(result.Positions),
		"open_lots", len(result.OpenLots),
		"errors", len(result.Errors))

	population := result.Positions
	if analyzeSymbol != "" {
		population = filterBySymbol(population, analyzeSymbol)
	}

	out := cmd.OutOrStdout()
	printOverview(out, overview)
	printSummary(out, analytics.BuildSummary(population))
	printStats(out, analytics.BuildPositionStats(population))

	printDayTable(out, analytics.GroupByDay(population))
	printMonthTable(out, analytics.GroupByMonth(population))
	printSymbolTable(out, analytics.GroupBySymbol(population))

	if len(result.OpenLots) > 0 {
		fmt.Fprintf(out, "\nStill open: %d lot(s)\n", len(result.OpenLots))
		for _, lot := range result.OpenLots {
			fmt.Fprintf(out, "  %s %s remaining %v @ %.5f (opened %s)\n",
				lot.Symbol, lot.Side, lot.Remaining, lot.EntryPrice(),
				lot.OpenedAt.UTC().Format(time.RFC3339))
		}
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\nMatch errors: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  %s\n", e)
		}
	}

	return persistRun(cfg.Journal, args[0], events, result)
}

func filterBySymbol(ps []positions.Position, symbol string) []positions.Position {
	out := make([]positions.Position, 0, len(ps))
	for _, p := range ps {
		if p.Symbol == symbol {
			out = append(out, p)
		}
	}
	return out
}

// persistRun writes the run to the sinks requested by flags. Flags beat the
// config file; with neither, nothing is persisted.
func persistRun(jcfg config.JournalConfig, source string, events []trade.Event, result positions.Result) error {
	dbPath := analyzeDB
	if dbPath == "" && jcfg.Type == "sqlite" && cfgFile != "" {
		dbPath = jcfg.DBPath
	}
	csvPath := analyzeCSV
	if csvPath == "" && jcfg.Type == "csv" && cfgFile != "" {
		csvPath = jcfg.File
	}

	runID := uuid.NewString()
	run := journal.Run{
		RunID:     runID,
		Created:   time.Now().UTC(),
		Source:    source,
		Events:    len(events),
		Positions: len(result.Positions),
		OpenLots:  len(result.OpenLots),
		Errors:    len(result.Errors),
	}

	if dbPath != "" {
		j, err := journal.NewSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("open journal db: %w", err)
		}
		defer j.Close()

		if err := j.RecordRun(run); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		if err := j.RecordPositions(runID, result.Positions); err != nil {
			return fmt.Errorf("record positions: %w", err)
		}
		slog.Info("run persisted", "db", dbPath, "run_id", runID)
	}

	if csvPath != "" {
		c, err := journal.NewCSV(csvPath)
		if err != nil {
			return fmt.Errorf("open csv export: %w", err)
		}
		if err := c.RecordPositions(runID, result.Positions); err != nil {
			c.Close()
			return fmt.Errorf("write csv export: %w", err)
		}
		if err := c.Close(); err != nil {
			return err
		}
		slog.Info("csv export written", "path", csvPath)
	}

	if analyzeOrg != "" {
		org := journal.FormatPositionsOrg(result.Positions)
		if err := os.WriteFile(analyzeOrg, []byte(org), 0644); err != nil {
			return fmt.Errorf("write org export: %w", err)
		}
		slog.Info("org export written", "path", analyzeOrg)
	}

	return nil
}
