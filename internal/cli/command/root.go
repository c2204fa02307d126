package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redislight-go/internal/cli/config"
	"github.com/yndnr/redislight-go/internal/cli/output"
	"github.com/yndnr/redislight-go/internal/cli/repl"
	"github.com/yndnr/redislight-go/internal/core/service"
	"github.com/yndnr/redislight-go/internal/infra/buildinfo"
	"github.com/yndnr/redislight-go/internal/infra/confloader"
	"github.com/yndnr/redislight-go/internal/infra/shutdown"
	"github.com/yndnr/redislight-go/internal/storage/memory"
	"github.com/yndnr/redislight-go/internal/telemetry/logger"
	"github.com/yndnr/redislight-go/internal/telemetry/metric"
)

const (
	envPrefix       = confloader.DefaultEnvPrefix
	metadataKey     = "state"
	shutdownTimeout = 5 * time.Second
)

// flagKeys maps global flags onto configuration keys.
var flagKeys = map[string]string{
	"output":       "output.format",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"prompt":       "repl.prompt",
	"history-file": "repl.history_file",
	"metrics-file": "metrics.textfile",
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "redislight",
		Usage:   "In-memory key-value store with a Redis-like command language",
		Version: buildinfo.Version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ExecCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Action: runREPL,
		Before: setup,
		After:  teardown,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default ~/.redislight/config.yaml)",
			EnvVars: []string{envPrefix + "CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json, yaml",
			EnvVars: []string{envPrefix + "OUTPUT_FORMAT"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error",
			EnvVars: []string{envPrefix + "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format: text, json",
			EnvVars: []string{envPrefix + "LOG_FORMAT"},
		},
		&cli.StringFlag{
			Name:    "prompt",
			Usage:   "REPL prompt",
			EnvVars: []string{envPrefix + "REPL_PROMPT"},
		},
		&cli.StringFlag{
			Name:    "history-file",
			Usage:   "REPL history file (empty disables persistence)",
			EnvVars: []string{envPrefix + "REPL_HISTORY_FILE"},
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "Write Prometheus metrics to this file on exit",
			EnvVars: []string{envPrefix + "METRICS_TEXTFILE"},
		},
	}
}

// appState is the per-invocation state built by setup.
type appState struct {
	ctx        context.Context
	stop       context.CancelFunc
	cfg        *config.Config
	configPath string
	origins    map[string]string
	flags      map[string]any
	log        logger.Logger
	metrics    *metric.Registry
	eval       *service.Evaluator
	formatter  output.Formatter
	shutdown   *shutdown.Handler
}

// flagOverrides collects the flags set on the command line or through
// their environment variables.
func flagOverrides(c *cli.Context) map[string]any {
	values := make(map[string]any)
	for name, key := range flagKeys {
		if c.IsSet(name) {
			values[key] = c.String(name)
		}
	}
	return values
}

func setup(c *cli.Context) error {
	flags := flagOverrides(c)
	res, err := config.Load(c.String("config"), flags)
	if err != nil {
		return err
	}
	cfg, path := res.Config, res.Path

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	metrics := metric.NewRegistry()
	store := memory.New(memory.WithShardCount(cfg.Store.Shards))
	eval := service.NewEvaluator(store, memory.NewRegistry(),
		service.WithLogger(log),
		service.WithMetrics(metrics),
	)

	rt := &appState{
		cfg:        cfg,
		configPath: path,
		origins:    res.Origins,
		flags:      flags,
		log:        log,
		metrics:    metrics,
		eval:       eval,
		formatter:  output.NewFormatter(format),
		shutdown:   shutdown.NewHandler(shutdownTimeout),
	}
	rt.ctx, rt.stop = rt.shutdown.Context(c.Context)

	if cfg.Metrics.Textfile != "" {
		rt.shutdown.OnShutdown(func(context.Context) error {
			if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
			log.Debug("metrics written", "path", cfg.Metrics.Textfile)
			return nil
		})
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metadataKey] = rt

	log.Debug("redislight started",
		"version", buildinfo.Version,
		"config", path,
		"output", format,
	)
	return nil
}

func teardown(c *cli.Context) error {
	rt := getState(c)
	if rt == nil {
		return nil
	}
	rt.stop()
	return rt.shutdown.Shutdown()
}

func getState(c *cli.Context) *appState {
	if rt, ok := c.App.Metadata[metadataKey].(*appState); ok {
		return rt
	}
	return nil
}

func mustState(c *cli.Context) (*appState, error) {
	rt := getState(c)
	if rt == nil {
		return nil, errors.New("redislight: not initialized")
	}
	return rt, nil
}

// newREPL builds a REPL over the shared evaluator writing to the app's
// writers.
func (rt *appState) newREPL(c *cli.Context, opts ...repl.Option) *repl.REPL {
	base := []repl.Option{
		repl.WithOutput(c.App.Writer),
		repl.WithErrorOutput(c.App.ErrWriter),
		repl.WithFormatter(rt.formatter),
		repl.WithLogger(rt.log),
	}
	return repl.New(rt.eval, append(base, opts...)...)
}

func runREPL(c *cli.Context) error {
	rt, err := mustState(c)
	if err != nil {
		return err
	}
	if c.Args().Present() {
		return fmt.Errorf("unknown command %q, use 'exec' to run a single command", c.Args().First())
	}

	history := repl.NewHistory(rt.cfg.REPL.HistoryFile, rt.cfg.REPL.HistorySize)
	if err := history.Load(); err != nil {
		rt.log.Warn("load history failed", "path", rt.cfg.REPL.HistoryFile, "error", err)
	}
	rt.shutdown.OnShutdown(func(context.Context) error {
		if err := history.Save(); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		return nil
	})

	if rt.configPath != "" {
		rt.watchConfig()
	}

	r := rt.newREPL(c,
		repl.WithInput(c.App.Reader),
		repl.WithPrompt(rt.cfg.REPL.Prompt),
		repl.WithHistory(history),
	)
	return r.Run(rt.ctx)
}

// watchConfig reloads the log level when the config file changes.
// Failures are logged; the REPL keeps running without reloads.
func (rt *appState) watchConfig() {
	w, err := confloader.NewWatcher(rt.reloadConfig, confloader.WithWatcherLogger(rt.log))
	if err != nil {
		rt.log.Warn("config watcher unavailable", "error", err)
		return
	}
	if err := w.Watch(rt.configPath); err != nil {
		rt.log.Warn("config watcher unavailable", "path", rt.configPath, "error", err)
		_ = w.Close()
		return
	}

	go func() {
		if err := w.Run(rt.ctx); err != nil {
			rt.log.Warn("config watcher stopped", "error", err)
		}
	}()
	rt.shutdown.OnShutdown(func(context.Context) error {
		return w.Close()
	})
}

func (rt *appState) reloadConfig(path string) {
	res, err := config.Load(path, rt.flags)
	if err != nil {
		rt.log.Warn("config reload failed", "path", path, "error", err)
		return
	}
	if cfg := res.Config; cfg.Log.Level != logger.GetLevel() {
		logger.SetLevel(cfg.Log.Level)
		rt.log.Info("log level reloaded", "level", cfg.Log.Level)
	}
}
