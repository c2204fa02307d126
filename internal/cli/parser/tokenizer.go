package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yndnr/redislight-go/internal/core/domain"
)

// Separator is the token that splits a line into several commands.
const Separator = "|"

// Token is one word of a command line.
type Token struct {
	Text string
	// Quoted is set when any part of the token came from quotes, so a
	// quoted "|" is a literal argument rather than a separator.
	Quoted bool
}

// IsSeparator reports whether t splits commands.
func (t Token) IsSeparator() bool {
	return !t.Quoted && t.Text == Separator
}

// Tokenize splits line into tokens.
//
// Whitespace separates tokens. Double quotes group text and honour the
// escapes \" \\ \n and \t; single quotes group text literally. Adjacent
// quoted and bare parts join into one token. An unquoted "|" is always
// its own token. A "//" at the start of a token comments out the rest
// of the line. Bytes that are not valid UTF-8 are copied through as is.
func Tokenize(line string) ([]Token, error) {
	var (
		tokens []Token
		cur    strings.Builder
		inTok  bool
		quoted bool
	)

	flush := func() {
		if inTok {
			tokens = append(tokens, Token{Text: cur.String(), Quoted: quoted})
		}
		cur.Reset()
		inTok = false
		quoted = false
	}

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		next := i + size

		switch {
		case r == utf8.RuneError && size == 1:
			cur.WriteByte(line[i])
			inTok = true

		case unicode.IsSpace(r):
			flush()

		case r == '|':
			flush()
			tokens = append(tokens, Token{Text: Separator})

		case r == '/' && !inTok && strings.HasPrefix(line[i:], "//"):
			return tokens, nil

		case r == '"':
			end, err := readDoubleQuoted(line, i+1, &cur)
			if err != nil {
				return nil, err
			}
			next = end + 1
			inTok, quoted = true, true

		case r == '\'':
			end := strings.IndexByte(line[i+1:], '\'')
			if end < 0 {
				return nil, domain.ErrInvalidCommand.WithDetails("unterminated single quote")
			}
			cur.WriteString(line[i+1 : i+1+end])
			next = i + end + 2
			inTok, quoted = true, true

		default:
			cur.WriteString(line[i:next])
			inTok = true
		}
		i = next
	}
	flush()

	return tokens, nil
}

// readDoubleQuoted consumes a double-quoted body starting at from and
// returns the index of the closing quote. Every delimiter and escape is
// ASCII, so the body is scanned byte by byte.
func readDoubleQuoted(line string, from int, out *strings.Builder) (int, error) {
	for i := from; i < len(line); i++ {
		switch c := line[i]; c {
		case '"':
			return i, nil
		case '\\':
			if i+1 >= len(line) {
				return 0, domain.ErrInvalidCommand.WithDetails("unterminated double quote")
			}
			switch esc := line[i+1]; esc {
			case 'n':
				out.WriteByte('\n')
				i++
			case 't':
				out.WriteByte('\t')
				i++
			case '"', '\\':
				out.WriteByte(esc)
				i++
			default:
				// unknown escape: keep the backslash, the next byte is read as usual
				out.WriteByte('\\')
			}
		default:
			out.WriteByte(c)
		}
	}
	return 0, domain.ErrInvalidCommand.WithDetails("unterminated double quote")
}

// Quote renders args as a line that Tokenize splits back into the same
// arguments. Arguments that need it are double-quoted.
func Quote(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = quoteArg(a)
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0 &&
		!strings.ContainsAny(s, "\"'\\|") && !strings.HasPrefix(s, "//") {
		return s
	}

	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
