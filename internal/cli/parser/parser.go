package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/yndnr/redislight-go/internal/core/domain"
)

// CommandSpec describes one command for help output.
type CommandSpec struct {
	Name     string
	Synopsis string
}

// Commands lists the supported commands in alphabetical order.
var Commands = []CommandSpec{
	{Name: "DEL", Synopsis: "DEL key [key ...]"},
	{Name: "GET", Synopsis: "GET key"},
	{Name: "LPOP", Synopsis: "LPOP key [count]"},
	{Name: "LPUSH", Synopsis: "LPUSH key element [element ...]"},
	{Name: "LRANGE", Synopsis: "LRANGE key start stop"},
	{Name: "SET", Synopsis: "SET key value [NX | XX | GET | KEEPTTL | EX seconds | PX milliseconds | EXAT unix-time-seconds | PXAT unix-time-milliseconds]"},
}

// ParseLine tokenizes line and parses each "|"-separated command.
// A blank or comment-only line yields no commands. If any command fails
// to parse, none are returned.
func ParseLine(line string) ([]domain.Command, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		cmds []domain.Command
		args []string
	)
	for i, tok := range tokens {
		if !tok.IsSeparator() {
			args = append(args, tok.Text)
			if i < len(tokens)-1 {
				continue
			}
		}

		cmd, err := Parse(args)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
		args = nil

		if tok.IsSeparator() && i == len(tokens)-1 {
			return nil, domain.ErrInvalidCommand.WithDetails("empty command after '|'")
		}
	}
	return cmds, nil
}

// Parse builds a command from its arguments. The command name and SET
// modifiers are matched case-insensitively.
func Parse(args []string) (domain.Command, error) {
	if len(args) == 0 {
		return nil, domain.ErrInvalidCommand.WithDetails("empty command")
	}

	name := strings.ToUpper(args[0])
	rest := args[1:]

	switch name {
	case "SET":
		return parseSet(rest)
	case "GET":
		if len(rest) != 1 {
			return nil, wrongArity(name)
		}
		return domain.Get{Key: rest[0]}, nil
	case "DEL":
		if len(rest) < 1 {
			return nil, wrongArity(name)
		}
		return domain.Del{Keys: append([]string(nil), rest...)}, nil
	case "LPUSH":
		if len(rest) < 2 {
			return nil, wrongArity(name)
		}
		return domain.LPush{Key: rest[0], Elements: append([]string(nil), rest[1:]...)}, nil
	case "LPOP":
		return parseLPop(rest)
	case "LRANGE":
		return parseLRange(rest)
	case "HSET", "HGET":
		return nil, domain.ErrUnsupportedCommand.WithDetails(name)
	default:
		return nil, domain.ErrUnknownCommand.WithDetails(args[0])
	}
}

func parseSet(args []string) (domain.Command, error) {
	if len(args) < 2 {
		return nil, wrongArity("SET")
	}
	cmd := domain.Set{Key: args[0], Value: args[1], Modifier: domain.NoModifier{}}

	opts := args[2:]
	if len(opts) == 0 {
		return cmd, nil
	}

	var (
		mod    domain.Modifier
		needed = 1
	)
	switch opt := strings.ToUpper(opts[0]); opt {
	case "NX":
		mod = domain.Nx{}
	case "XX":
		mod = domain.Xx{}
	case "GET":
		mod = domain.GetOld{}
	case "KEEPTTL":
		mod = domain.KeepTTL{}
	case "EX", "EXAT":
		needed = 2
		if len(opts) < 2 {
			return nil, domain.ErrInvalidCommand.WithDetails(opt + " requires a value")
		}
		secs, err := parseSeconds(opts[1])
		if err != nil {
			return nil, err
		}
		if opt == "EX" {
			mod = domain.Ex{Seconds: secs}
		} else {
			mod = domain.ExAt{Seconds: secs}
		}
	case "PX", "PXAT":
		needed = 2
		if len(opts) < 2 {
			return nil, domain.ErrInvalidCommand.WithDetails(opt + " requires a value")
		}
		ms, err := parseInt64(opts[1])
		if err != nil {
			return nil, err
		}
		if opt == "PX" {
			mod = domain.Px{Millis: ms}
		} else {
			mod = domain.PxAt{Millis: ms}
		}
	default:
		return nil, domain.ErrInvalidCommand.WithDetails("unknown SET option '" + opts[0] + "'")
	}

	if len(opts) > needed {
		return nil, domain.ErrInvalidCommand.WithDetails("SET accepts a single option")
	}
	cmd.Modifier = mod
	return cmd, nil
}

func parseLPop(args []string) (domain.Command, error) {
	switch len(args) {
	case 1:
		return domain.LPop{Key: args[0]}, nil
	case 2:
		n, err := parseInt(args[1])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, domain.ErrInvalidCommand.WithCause(
				domain.ErrNotInteger.WithDetails("count must be positive"))
		}
		return domain.LPop{Key: args[0], Count: n, HasCount: true}, nil
	default:
		return nil, wrongArity("LPOP")
	}
}

func parseLRange(args []string) (domain.Command, error) {
	if len(args) != 3 {
		return nil, wrongArity("LRANGE")
	}
	start, err := parseInt(args[1])
	if err != nil {
		return nil, err
	}
	stop, err := parseInt(args[2])
	if err != nil {
		return nil, err
	}
	return domain.LRange{Key: args[0], Start: start, Stop: stop}, nil
}

func wrongArity(name string) error {
	return domain.ErrInvalidCommand.WithDetails("wrong number of arguments for '" + strings.ToLower(name) + "' command")
}

func notInteger(s string) error {
	return domain.ErrInvalidCommand.WithCause(domain.ErrNotInteger.WithDetails(s))
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, notInteger(s)
	}
	return n, nil
}

func parseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, notInteger(s)
	}
	return n, nil
}

func parseSeconds(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, domain.ErrInvalidCommand.WithCause(domain.ErrInvalidExpire.WithDetails(s))
	}
	return f, nil
}
