package confloader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "REDISLIGHT_"

// Source names, lowest priority first.
const (
	SourceFile = "file"
	SourceEnv  = "env"
	SourceFlag = "flag"
)

// Loader layers configuration sources over the defaults already set on
// the target and records which source set each key.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	flags     map[string]any
	origins   map[string]string
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the YAML file to load. Empty means none.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithFlags sets command-line values, applied last. Keys are dotted
// ("log.level").
func WithFlags(values map[string]any) Option {
	return func(l *Loader) {
		l.flags = values
	}
}

// NewLoader creates a configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
		origins:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load applies the file, then the environment, then the flags, and
// unmarshals the result into target. Keys no source sets keep the
// value target already holds.
func (l *Loader) Load(target any) error {
	steps := []struct {
		name string
		load func() error
	}{
		{SourceFile, func() error { return l.LoadFile(l.filePath) }},
		{SourceEnv, l.LoadEnv},
		{SourceFlag, func() error { return l.LoadMap(l.flags) }},
	}
	for _, s := range steps {
		if err := s.load(); err != nil {
			return err
		}
	}

	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadFile merges a YAML file. An empty path is a no-op.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if err := l.merge(SourceFile, file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadEnv merges prefixed environment variables. The first underscore
// after the prefix separates section from key, so
// REDISLIGHT_REPL_HISTORY_FILE sets repl.history_file.
func (l *Loader) LoadEnv() error {
	if err := l.merge(SourceEnv, env.Provider(l.envPrefix, ".", l.envKey), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func (l *Loader) envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// LoadMap merges a map of dotted keys, recorded as flag values.
func (l *Loader) LoadMap(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	if err := l.merge(SourceFlag, mapProvider(data), nil); err != nil {
		return fmt.Errorf("load flags: %w", err)
	}
	return nil
}

// merge loads one source into its own koanf instance first, so the keys
// it sets can be attributed before they are folded into l.k.
func (l *Loader) merge(source string, p koanf.Provider, pa koanf.Parser) error {
	layer := koanf.New(".")
	if err := layer.Load(p, pa); err != nil {
		return err
	}
	for _, key := range layer.Keys() {
		l.origins[key] = source
	}
	return l.k.Merge(layer)
}

// Unmarshal decodes the merged configuration into target using koanf tags.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// Origin reports which source last set key, or "" if none did.
func (l *Loader) Origin(key string) string {
	return l.origins[key]
}

// Overrides lists the keys set by any source, sorted.
func (l *Loader) Overrides() []string {
	keys := make([]string, 0, len(l.origins))
	for key := range l.origins {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
