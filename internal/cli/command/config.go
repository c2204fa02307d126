package command

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redislight-go/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration file",
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt, err := mustState(c)
	if err != nil {
		return err
	}

	f := rt.formatter
	if _, ok := f.(*output.TextFormatter); ok {
		f = output.NewFormatter(output.FormatYAML)
	}
	return f.Format(c.App.Writer, rt.cfg)
}

// configValidate reports success and lists the keys that differ from
// the defaults. Invalid files already fail in setup.
func configValidate(c *cli.Context) error {
	rt, err := mustState(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if rt.configPath == "" {
		fmt.Fprintln(w, "No configuration file found, using defaults.")
	} else {
		fmt.Fprintf(w, "Configuration file is valid: %s\n", rt.configPath)
	}

	keys := make([]string, 0, len(rt.origins))
	for key := range rt.origins {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "  %-20s from %s\n", key, rt.origins[key])
	}
	return nil
}
