package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/config"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "Reconstruct positions and performance stats from trade exports",
	Long: `Tradebook rebuilds round-trip positions from exchange trade exports and
derives performance analytics from them.

It provides tools for:
  - FIFO matching of close fills against open inventory
  - Day, month and symbol performance summaries
  - Win rate, profit factor, drawdown and streak statistics
  - Journaling reconstructed positions to SQLite or CSV`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}

// loadConfig returns the file config when --config was given, defaults
// otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

// setupLogger installs the process-wide slog handler per the log config.
func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
