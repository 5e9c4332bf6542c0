package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradebook/positions"
)

// Config is the complete tradebook configuration.
type Config struct {
	Matcher MatcherConfig `json:"matcher" yaml:"matcher"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// MatcherConfig tunes the lot matcher.
type MatcherConfig struct {
	// Epsilon is the absolute tolerance for quantity comparisons.
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`

	// NetProfitFallback substitutes realized PnL for a position's net
	// profit when the export never populated the net profit column.
	NetProfitFallback bool `json:"net_profit_fallback" yaml:"net_profit_fallback"`
}

// Options converts the matcher section into positions.Options.
func (m MatcherConfig) Options() positions.Options {
	return positions.Options{
		Epsilon:           m.Epsilon,
		NetProfitFallback: m.NetProfitFallback,
	}
}

// JournalConfig controls where reconstructed positions are persisted.
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug | info | warn | error
	Format string `json:"format" yaml:"format"` // text | json
}

// LoadFromFile loads configuration from a YAML or JSON file, applying
// defaults for anything the file leaves out. A .env file in the working
// directory is loaded first and TRADEBOOK_* variables override the file.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv lets the environment win over the config file for the handful of
// knobs that change per machine.
func (c *Config) applyEnv() {
	if v := os.Getenv("TRADEBOOK_DB"); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv("TRADEBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TRADEBOOK_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Matcher.Epsilon < 0 {
		return fmt.Errorf("matcher.epsilon must not be negative")
	}
	switch c.Journal.Type {
	case "", "csv", "sqlite":
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.File == "" {
		return fmt.Errorf("journal.file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required for SQLite type")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Matcher: MatcherConfig{
			Epsilon:           positions.DefaultEpsilon,
			NetProfitFallback: true,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradebook.sqlite",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
