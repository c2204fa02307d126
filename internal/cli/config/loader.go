package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yndnr/redislight-go/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".redislight", "config.yaml")
}

// Result is a loaded configuration and where its values came from.
type Result struct {
	Config *Config
	// Path is the config file read, or "" when only defaults,
	// environment and flags were used.
	Path string
	// Origins maps each key some source set to "file", "env" or "flag".
	Origins map[string]string
}

// Load builds the configuration from defaults, the config file,
// REDISLIGHT_* environment variables and flags, in rising priority.
//
// An empty path selects DefaultConfigPath, which may be absent. An
// explicit path must exist. flags uses dotted keys ("log.level").
func Load(path string, flags map[string]any) (*Result, error) {
	if path == "" {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}

	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithFlags(flags),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Verify(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	res := &Result{Config: cfg, Path: path, Origins: make(map[string]string)}
	for _, key := range loader.Overrides() {
		res.Origins[key] = loader.Origin(key)
	}
	return res, nil
}
