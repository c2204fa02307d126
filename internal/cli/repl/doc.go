// Package repl provides the interactive mode of the redislight CLI.
//
//   - repl.go: read-eval-print loop, meta commands and reply output
//   - completer.go: command name lookup backing help
//   - history.go: bounded command history persisted to a file
//
// Every line may hold several commands separated by "|". Each command
// is evaluated with its own ULID request ID in the logging context.
package repl
