package repl

import (
	"reflect"
	"testing"
)

func TestNewCompleter(t *testing.T) {
	c := NewCompleter()
	if len(c.commands) == 0 {
		t.Fatal("commands should be initialized")
	}
	for _, name := range c.commands {
		if c.Usage(name) == "" {
			t.Errorf("Usage(%q) is empty", name)
		}
	}
}

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"L prefix", "L", []string{"LPOP", "LPUSH", "LRANGE"}},
		{"lower case", "lp", []string{"LPOP", "LPUSH"}},
		{"exact", "SET", []string{"SET"}},
		{"meta", "h", []string{"help", "history"}},
		{"exit", "ex", []string{"exit"}},
		{"no match", "nonexistent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_EmptyPrefixMatchesAll(t *testing.T) {
	c := NewCompleter()
	if got := c.Complete(""); len(got) != len(c.commands) {
		t.Errorf("Complete(\"\") returned %d items, want %d", len(got), len(c.commands))
	}
}
