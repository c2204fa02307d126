// Package command provides the redislight CLI built on urfave/cli/v2.
//
//   - root.go: application, global flags, engine setup and teardown
//   - exec.go: one-shot evaluation of a single command line
//   - config.go: config show and config validate
//   - version.go: build information
//
// Without a subcommand the application starts the interactive REPL.
package command
