package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/positions"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.InDelta(t, positions.DefaultEpsilon, cfg.Matcher.Epsilon, 1e-12)
	assert.True(t, cfg.Matcher.NetProfitFallback)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
matcher:
  epsilon: 1e-6
  net_profit_fallback: false
journal:
  type: csv
  file: ./out.csv
log:
  level: debug
  format: json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.InDelta(t, 1e-6, cfg.Matcher.Epsilon, 1e-12)
	assert.False(t, cfg.Matcher.NetProfitFallback)
	assert.Equal(t, "csv", cfg.Journal.Type)
	assert.Equal(t, "./out.csv", cfg.Journal.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "journal": {"type": "sqlite", "db_path": "./x.sqlite"}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "./x.sqlite", cfg.Journal.DBPath)
	// Omitted sections keep their defaults.
	assert.True(t, cfg.Matcher.NetProfitFallback)
}

func TestLoadFromFileDefaultsSurvivePartialConfig(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
log:
  level: warn
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.InDelta(t, positions.DefaultEpsilon, cfg.Matcher.Epsilon, 1e-12)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
journal:
  type: sqlite
  db_path: ./from-file.sqlite
`)

	t.Setenv("TRADEBOOK_DB", "./from-env.sqlite")
	t.Setenv("TRADEBOOK_LOG_LEVEL", "error")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "./from-env.sqlite", cfg.Journal.DBPath)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative_epsilon",
			mutate:  func(c *Config) { c.Matcher.Epsilon = -1 },
			wantErr: "epsilon",
		},
		{
			name:    "bad_journal_type",
			mutate:  func(c *Config) { c.Journal.Type = "postgres" },
			wantErr: "journal.type",
		},
		{
			name:    "csv_without_file",
			mutate:  func(c *Config) { c.Journal.Type = "csv"; c.Journal.File = "" },
			wantErr: "journal.file",
		},
		{
			name:    "sqlite_without_path",
			mutate:  func(c *Config) { c.Journal.DBPath = "" },
			wantErr: "journal.db_path",
		},
		{
			name:    "bad_log_level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "log.level",
		},
		{
			name:    "bad_log_format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatcherOptions(t *testing.T) {
	t.Parallel()

	m := MatcherConfig{Epsilon: 1e-6, NetProfitFallback: true}
	opts := m.Options()

	assert.InDelta(t, 1e-6, opts.Epsilon, 1e-12)
	assert.True(t, opts.NetProfitFallback)
}
