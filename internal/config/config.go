// Package config loads tridiff settings from defaults, a YAML config file,
// TRIDIFF_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dacharyc/tridiff"
	"github.com/dacharyc/tridiff/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
// TRIDIFF_SERVER_ADDR sets server.addr, for example.
const EnvPrefix = "TRIDIFF"

// Config holds all settings.
type Config struct {
	Mode    string        `mapstructure:"mode"`
	Align   AlignConfig   `mapstructure:"align"`
	Summary SummaryConfig `mapstructure:"summary"`
	Report  ReportConfig  `mapstructure:"report"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

type AlignConfig struct {
	Algorithm string `mapstructure:"algorithm"`
	AutoJunk  bool   `mapstructure:"autojunk"`
}

type SummaryConfig struct {
	DistinguishMissing bool `mapstructure:"distinguish_missing"`
}

type ReportConfig struct {
	Title string `mapstructure:"title"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// defaults are applied before any other source.
var defaults = map[string]any{
	"mode":                        tridiff.DefaultMode.String(),
	"align.algorithm":             tridiff.AlgorithmMatcher.String(),
	"align.autojunk":              false,
	"summary.distinguish_missing": false,
	"report.title":                tridiff.DefaultTitle,
	"server.addr":                 ":8080",
	"server.max_body_bytes":       int64(4 << 20),
	"server.cors_origins":         []string{},
	"server.shutdown_timeout":     5 * time.Second,
	"log.level":                   "info",
	"log.format":                  logging.FormatText,
}

// FlagKeys maps command-line flag names onto config keys.
var FlagKeys = map[string]string{
	"mode":                "mode",
	"algorithm":           "align.algorithm",
	"autojunk":            "align.autojunk",
	"distinguish-missing": "summary.distinguish_missing",
	"title":               "report.title",
	"addr":                "server.addr",
	"log-level":           "log.level",
	"log-format":          "log.format",
}

// Default returns the configuration used when no other source is set.
func Default() *Config {
	cfg := &Config{}
	if err := newViper().Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config: decoding defaults: %v", err))
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// Load reads configuration. If path is empty, tridiff.yaml is looked up
// in the working directory, ./config and $XDG_CONFIG_HOME/tridiff; a
// missing file is not an error. Flags present in fs and listed in
// FlagKeys override every other source when set on the command line.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := newViper()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range FlagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tridiff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir := xdgConfigDir(); dir != "" {
			v.AddConfigPath(filepath.Join(dir, "tridiff"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func xdgConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// Validate checks that every enumerated setting has a known value.
func (c *Config) Validate() error {
	if _, err := tridiff.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if _, err := tridiff.ParseAlgorithm(c.Align.Algorithm); err != nil {
		return fmt.Errorf("align.algorithm: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("log.format: unknown format %q (use json or text)", c.Log.Format)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}

// DiffMode returns the configured default granularity.
func (c *Config) DiffMode() tridiff.Mode {
	mode, err := tridiff.ParseMode(c.Mode)
	if err != nil {
		return tridiff.DefaultMode
	}
	return mode
}

// ReportOptions converts the config into report generation options.
func (c *Config) ReportOptions() tridiff.Options {
	algorithm, err := tridiff.ParseAlgorithm(c.Align.Algorithm)
	if err != nil {
		algorithm = tridiff.AlgorithmMatcher
	}
	return tridiff.Options{
		Align: tridiff.AlignOptions{
			Algorithm: algorithm,
			AutoJunk:  c.Align.AutoJunk,
		},
		Summary: tridiff.SummaryOptions{
			DistinguishMissing: c.Summary.DistinguishMissing,
		},
		Title: c.Report.Title,
	}
}
