package repl

import (
	"strings"

	"github.com/yndnr/redislight-go/internal/cli/parser"
)

// Meta commands handled by the REPL itself.
const (
	metaHelp    = "help"
	metaHistory = "history"
	metaExit    = "exit"
	metaQuit    = "quit"
)

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
	usage    map[string]string
}

// NewCompleter creates a new Completer over the parser's commands and
// the REPL meta commands.
func NewCompleter() *Completer {
	c := &Completer{usage: make(map[string]string)}
	for _, spec := range parser.Commands {
		c.add(spec.Name, spec.Synopsis)
	}
	c.add(metaHelp, "help [prefix]  list commands")
	c.add(metaHistory, "history  show previous lines")
	c.add(metaExit, "exit  leave the REPL")
	c.add(metaQuit, "quit  leave the REPL")
	return c
}

func (c *Completer) add(name, usage string) {
	c.commands = append(c.commands, name)
	c.usage[name] = usage
}

// Complete returns the commands starting with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if len(cmd) >= len(prefix) && strings.EqualFold(cmd[:len(prefix)], prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Usage returns the synopsis for a command name.
func (c *Completer) Usage(name string) string {
	return c.usage[name]
}
