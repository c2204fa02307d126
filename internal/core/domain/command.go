package domain

import (
	"strconv"
	"strings"
)

// Command is a parsed command ready for evaluation. The concrete types
// are Set, Del, Get, LPush, LPop and LRange.
type Command interface {
	// Name returns the upper-case command name.
	Name() string
	isCommand()
}

// Set stores a string value, optionally qualified by a modifier.
type Set struct {
	Key      string
	Value    string
	Modifier Modifier
}

// Del removes keys. Duplicates are processed each time they appear.
type Del struct {
	Keys []string
}

// Get reads the value at a key.
type Get struct {
	Key string
}

// LPush prepends elements to a list.
type LPush struct {
	Key      string
	Elements []string
}

// LPop removes elements from the head of a list.
// When HasCount is false a single element is popped.
type LPop struct {
	Key      string
	Count    int
	HasCount bool
}

// LRange reads an inclusive slice of a list.
type LRange struct {
	Key   string
	Start int
	Stop  int
}

func (Set) Name() string    { return "SET" }
func (Del) Name() string    { return "DEL" }
func (Get) Name() string    { return "GET" }
func (LPush) Name() string  { return "LPUSH" }
func (LPop) Name() string   { return "LPOP" }
func (LRange) Name() string { return "LRANGE" }

func (Set) isCommand()    {}
func (Del) isCommand()    {}
func (Get) isCommand()    {}
func (LPush) isCommand()  {}
func (LPop) isCommand()   {}
func (LRange) isCommand() {}

// Modifier qualifies a SET. NoModifier is the explicit "plain SET" case.
type Modifier interface {
	// String renders the modifier as it appears on a command line.
	String() string
	isModifier()
}

type (
	// NoModifier is a plain SET.
	NoModifier struct{}

	// Ex expires the key after Seconds (fractions allowed).
	Ex struct{ Seconds float64 }

	// Px expires the key after Millis milliseconds.
	Px struct{ Millis int64 }

	// ExAt expires the key at the given Unix time in seconds.
	ExAt struct{ Seconds float64 }

	// PxAt expires the key at the given Unix time in milliseconds.
	PxAt struct{ Millis int64 }

	// Nx only sets the key if it does not exist.
	Nx struct{}

	// Xx only sets the key if it already exists.
	Xx struct{}

	// KeepTTL retains the existing time to live.
	KeepTTL struct{}

	// GetOld returns the previous string before writing the new one.
	GetOld struct{}
)

func (NoModifier) String() string { return "" }
func (m Ex) String() string       { return "EX " + strconv.FormatFloat(m.Seconds, 'f', -1, 64) }
func (m Px) String() string       { return "PX " + strconv.FormatInt(m.Millis, 10) }
func (m ExAt) String() string     { return "EXAT " + strconv.FormatFloat(m.Seconds, 'f', -1, 64) }
func (m PxAt) String() string     { return "PXAT " + strconv.FormatInt(m.Millis, 10) }
func (Nx) String() string         { return "NX" }
func (Xx) String() string         { return "XX" }
func (KeepTTL) String() string    { return "KEEPTTL" }
func (GetOld) String() string     { return "GET" }

func (NoModifier) isModifier() {}
func (Ex) isModifier()         {}
func (Px) isModifier()         {}
func (ExAt) isModifier()       {}
func (PxAt) isModifier()       {}
func (Nx) isModifier()         {}
func (Xx) isModifier()         {}
func (KeepTTL) isModifier()    {}
func (GetOld) isModifier()     {}

// Keys returns the keys a command touches, in argument order.
func Keys(cmd Command) []string {
	switch c := cmd.(type) {
	case Set:
		return []string{c.Key}
	case Del:
		return c.Keys
	case Get:
		return []string{c.Key}
	case LPush:
		return []string{c.Key}
	case LPop:
		return []string{c.Key}
	case LRange:
		return []string{c.Key}
	default:
		return nil
	}
}

// Describe renders a short, value-free summary of a command for logs.
func Describe(cmd Command) string {
	var b strings.Builder
	b.WriteString(cmd.Name())
	for _, k := range Keys(cmd) {
		b.WriteByte(' ')
		b.WriteString(k)
	}
	if s, ok := cmd.(Set); ok && s.Modifier != nil {
		if m := s.Modifier.String(); m != "" {
			b.WriteByte(' ')
			b.WriteString(m)
		}
	}
	return b.String()
}
