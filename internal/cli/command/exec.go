package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/redislight-go/internal/cli/parser"
)

// ExecCommand returns the one-shot exec command.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Evaluate one command line and exit",
		ArgsUsage: "CMD [ARGS...]",
		Description: `Arguments are quoted back into a single line, so
   redislight exec SET greeting "hello world"
stores the value with its space. A quoted "|" inside one argument
separates commands: redislight exec 'SET a 1 | GET a'.`,
		Action: runExec,
	}
}

func runExec(c *cli.Context) error {
	rt, err := mustState(c)
	if err != nil {
		return err
	}
	if !c.Args().Present() {
		return cli.Exit("exec: missing command", 2)
	}

	args := c.Args().Slice()
	line := parser.Quote(args)
	if len(args) == 1 {
		// A single argument is taken as a complete line.
		line = args[0]
	}

	if err := rt.newREPL(c).Execute(rt.ctx, line); err != nil {
		rt.log.Debug("exec failed", "error", err)
		// cli.Exit terminates before After runs.
		if err := teardown(c); err != nil {
			rt.log.Warn("shutdown failed", "error", err)
		}
		return cli.Exit("", 1)
	}
	return nil
}
