package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/redislight-go/internal/cli/output"
	"github.com/yndnr/redislight-go/internal/telemetry/logger"
	"github.com/yndnr/redislight-go/pkg/cmap"
)

// Config is the configuration for the redislight CLI.
type Config struct {
	Log     LogConfig     `koanf:"log" yaml:"log" json:"log"`
	REPL    REPLConfig    `koanf:"repl" yaml:"repl" json:"repl"`
	Output  OutputConfig  `koanf:"output" yaml:"output" json:"output"`
	Store   StoreConfig   `koanf:"store" yaml:"store" json:"store"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics" json:"metrics"`
}

// LogConfig controls the diagnostic logger on stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`    // debug, info, warn, error
	Format string `koanf:"format" yaml:"format" json:"format"` // text, json
}

// REPLConfig controls interactive mode.
type REPLConfig struct {
	Prompt      string `koanf:"prompt" yaml:"prompt" json:"prompt"`
	HistoryFile string `koanf:"history_file" yaml:"history_file" json:"history_file"`
	HistorySize int    `koanf:"history_size" yaml:"history_size" json:"history_size"`
}

// OutputConfig selects the reply format.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format" json:"format"` // text, json, yaml
}

// StoreConfig sizes the in-memory keyspace.
type StoreConfig struct {
	Shards int `koanf:"shards" yaml:"shards" json:"shards"` // power of 2
}

// MetricsConfig controls the Prometheus textfile written on exit.
type MetricsConfig struct {
	Textfile string `koanf:"textfile" yaml:"textfile" json:"textfile"`
}

// Default returns the default CLI configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		REPL: REPLConfig{
			Prompt:      ">> ",
			HistoryFile: DefaultHistoryPath(),
			HistorySize: 1000,
		},
		Output: OutputConfig{
			Format: string(output.FormatText),
		},
		Store: StoreConfig{
			Shards: cmap.DefaultShardCount,
		},
	}
}

// DefaultHistoryPath returns ~/.redislight/history, or "" when the home
// directory is unknown.
func DefaultHistoryPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".redislight", "history")
}

// Verify checks the configuration and reports every problem found.
func (c *Config) Verify() error {
	var errs []error

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}

	if c.REPL.HistorySize < 0 {
		errs = append(errs, fmt.Errorf("repl.history_size: must not be negative, got %d", c.REPL.HistorySize))
	}

	if n := c.Store.Shards; n <= 0 || n&(n-1) != 0 {
		errs = append(errs, fmt.Errorf("store.shards: must be a positive power of 2, got %d", n))
	}

	return errors.Join(errs...)
}
