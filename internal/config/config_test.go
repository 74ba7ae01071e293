package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacharyc/tridiff"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tridiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "word", cfg.Mode)
	assert.Equal(t, tridiff.ModeWord, cfg.DiffMode())
	assert.Equal(t, "matcher", cfg.Align.Algorithm)
	assert.False(t, cfg.Align.AutoJunk)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(4<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, tridiff.DefaultTitle, cfg.Report.Title)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
mode: char
align:
  algorithm: histogram
  autojunk: true
summary:
  distinguish_missing: true
server:
  addr: "127.0.0.1:9000"
  cors_origins: ["https://example.com"]
  shutdown_timeout: 2s
log:
  level: debug
  format: json
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, tridiff.ModeChar, cfg.DiffMode())
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "json", cfg.Log.Format)

	opts := cfg.ReportOptions()
	assert.Equal(t, tridiff.AlgorithmHistogram, opts.Align.Algorithm)
	assert.True(t, opts.Align.AutoJunk)
	assert.True(t, opts.Summary.DistinguishMissing)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "mode: char\nserver:\n  addr: \":7000\"\n")
	t.Setenv("TRIDIFF_SERVER_ADDR", ":7500")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("mode", "word", "")
	fs.String("addr", ":8080", "")
	require.NoError(t, fs.Parse([]string{"--mode", "line"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "line", cfg.Mode, "flag set on the command line wins")
	assert.Equal(t, ":7500", cfg.Server.Addr, "environment beats config file")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"mode", func(c *Config) { c.Mode = "sentence" }},
		{"algorithm", func(c *Config) { c.Align.Algorithm = "patience" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
