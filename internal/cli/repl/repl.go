package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/redislight-go/internal/cli/output"
	"github.com/yndnr/redislight-go/internal/cli/parser"
	"github.com/yndnr/redislight-go/internal/core/domain"
	"github.com/yndnr/redislight-go/internal/telemetry/logger"
)

// DefaultPrompt is printed before every line read.
const DefaultPrompt = ">> "

// Evaluator applies one command and returns its reply.
type Evaluator interface {
	Evaluate(ctx context.Context, cmd domain.Command) domain.Reply
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
	prompt    string

	eval      Evaluator
	formatter output.Formatter
	completer *Completer
	history   *History
	logger    logger.Logger
}

// Option configures the REPL.
type Option func(*REPL)

// WithInput sets the line source (default stdin).
func WithInput(r io.Reader) Option {
	return func(repl *REPL) { repl.input = r }
}

// WithOutput sets the writer for prompts and replies (default stdout).
func WithOutput(w io.Writer) Option {
	return func(repl *REPL) { repl.output = w }
}

// WithErrorOutput sets the writer for failures (default stderr).
func WithErrorOutput(w io.Writer) Option {
	return func(repl *REPL) { repl.errOutput = w }
}

// WithPrompt overrides DefaultPrompt.
func WithPrompt(p string) Option {
	return func(repl *REPL) { repl.prompt = p }
}

// WithFormatter sets the reply formatter (default text).
func WithFormatter(f output.Formatter) Option {
	return func(repl *REPL) { repl.formatter = f }
}

// WithHistory replaces the in-memory history.
func WithHistory(h *History) Option {
	return func(repl *REPL) { repl.history = h }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(repl *REPL) { repl.logger = l }
}

// New creates a new REPL instance.
func New(eval Evaluator, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
		prompt:    DefaultPrompt,
		eval:      eval,
		formatter: output.NewFormatter(output.FormatText),
		completer: NewCompleter(),
		history:   NewHistory("", DefaultHistorySize),
		logger:    logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// History returns the REPL history.
func (r *REPL) History() *History {
	return r.history
}

// Run starts the REPL loop. It returns nil on EOF, exit, quit or
// context cancellation.
func (r *REPL) Run(ctx context.Context) error {
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go r.readLines(readCtx, lines, readErr)

	for {
		fmt.Fprint(r.output, r.prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.output)
			return nil
		case err := <-readErr:
			if err != nil {
				return err
			}
			fmt.Fprintln(r.output)
			return nil
		case line = <-lines:
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if handled, stop := r.handleMeta(line); handled {
			if stop {
				return nil
			}
			continue
		}
		_ = r.Execute(ctx, line)
	}
}

// readLines feeds lines until EOF or error, then reports on errc
// (nil for EOF). A final line without a newline is still delivered.
func (r *REPL) readLines(ctx context.Context, lines chan<- string, errc chan<- error) {
	reader := bufio.NewReader(r.input)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err == io.EOF {
			errc <- nil
			return
		}
		if err != nil {
			errc <- err
			return
		}
	}
}

// handleMeta runs REPL-level commands. It reports whether line was a
// meta command and whether the loop should stop.
func (r *REPL) handleMeta(line string) (handled, stop bool) {
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])

	switch {
	case (name == metaExit || name == metaQuit) && len(fields) == 1:
		return true, true
	case name == metaHelp && len(fields) <= 2:
		prefix := ""
		if len(fields) == 2 {
			prefix = fields[1]
		}
		r.printHelp(prefix)
		return true, false
	case name == metaHistory && len(fields) == 1:
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%5d  %s\n", i+1, entry)
		}
		return true, false
	}
	return false, false
}

func (r *REPL) printHelp(prefix string) {
	matches := r.completer.Complete(prefix)
	if len(matches) == 0 {
		fmt.Fprintf(r.errOutput, "no command matches %q\n", prefix)
		return
	}
	for _, name := range matches {
		fmt.Fprintln(r.output, r.completer.Usage(name))
	}
}

// Execute parses line and evaluates every command on it in order,
// writing each reply. It returns the parse error, or the first command
// error, so one-shot callers can set an exit status.
func (r *REPL) Execute(ctx context.Context, line string) error {
	cmds, err := parser.ParseLine(line)
	if err != nil {
		r.logger.Debug("parse failed", "error", err)
		r.write(output.Invalid(err))
		return err
	}

	var firstErr error
	for _, cmd := range cmds {
		cctx := logger.WithRequestID(ctx, ulid.Make().String())
		reply := r.eval.Evaluate(cctx, cmd)
		if er, ok := reply.(domain.ErrorReply); ok && firstErr == nil {
			firstErr = er.Err
		}
		r.write(output.FromReply(reply))
	}
	return firstErr
}

func (r *REPL) write(doc output.Document) {
	w := r.output
	if doc.IsFailure() {
		w = r.errOutput
	}
	if err := r.formatter.Format(w, doc); err != nil {
		r.logger.Warn("write reply failed", "error", err)
	}
}
