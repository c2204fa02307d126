package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yndnr/redislight-go/internal/core/domain"
)

func texts(tokens []Token) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   \t ", nil},
		{"words", "SET a 1", []string{"SET", "a", "1"}},
		{"extra spaces", "  GET   a  ", []string{"GET", "a"}},
		{"double quotes", `SET a "hello world"`, []string{"SET", "a", "hello world"}},
		{"escapes", `SET a "say \"hi\"\n\tback\\slash"`, []string{"SET", "a", "say \"hi\"\n\tback\\slash"}},
		{"unknown escape kept", `SET a "x\qy"`, []string{"SET", "a", `x\qy`}},
		{"single quotes literal", `SET a 'no \n escape'`, []string{"SET", "a", `no \n escape`}},
		{"empty quoted", `SET a ""`, []string{"SET", "a", ""}},
		{"joined parts", `SET a pre"mid dle"'post'`, []string{"SET", "a", "premid dlepost"}},
		{"pipe", "SET a 1|GET a", []string{"SET", "a", "1", "|", "GET", "a"}},
		{"comment", "GET a // trailing note", []string{"GET", "a"}},
		{"comment only", "// nothing here", nil},
		{"slashes inside token", "SET url http://host", []string{"SET", "url", "http://host"}},
		{"unicode", "SET ключ значение", []string{"SET", "ключ", "значение"}},
		{"unicode space", "GET a\u00a0b", []string{"GET", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.line)
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.line, err)
			}
			if !reflect.DeepEqual(texts(got), tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.line, texts(got), tt.want)
			}
		})
	}
}

func TestTokenize_QuotedPipeIsLiteral(t *testing.T) {
	tokens, err := Tokenize(`SET a "|" | GET a`)
	if err != nil {
		t.Fatalf("Tokenize error = %v", err)
	}
	if len(tokens) != 6 {
		t.Fatalf("got %d tokens, want 6", len(tokens))
	}
	if tokens[2].IsSeparator() {
		t.Error("quoted pipe treated as separator")
	}
	if !tokens[3].IsSeparator() {
		t.Error("bare pipe not treated as separator")
	}
}

func TestTokenize_Unterminated(t *testing.T) {
	for _, line := range []string{`SET a "open`, `SET a 'open`, `SET a "trailing\`} {
		_, err := Tokenize(line)
		if !errors.Is(err, domain.ErrInvalidCommand) {
			t.Errorf("Tokenize(%q) error = %v, want ErrInvalidCommand", line, err)
		}
	}
}

func TestTokenize_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"bare", "SET k \xff\xfe", []string{"SET", "k", "\xff\xfe"}},
		{"mixed with text", "SET k caf\xe9!", []string{"SET", "k", "caf\xe9!"}},
		{"double quoted", "SET k \"a \xff b\"", []string{"SET", "k", "a \xff b"}},
		{"after backslash", "SET k \"\\\xff\"", []string{"SET", "k", "\\\xff"}},
		{"single quoted", "SET k '\xc3'", []string{"SET", "k", "\xc3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.line)
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.line, err)
			}
			if !reflect.DeepEqual(texts(got), tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.line, texts(got), tt.want)
			}
		})
	}
}

func TestQuote_RoundTrip(t *testing.T) {
	tests := [][]string{
		{"SET", "a", "1"},
		{"SET", "a", "hello world"},
		{"SET", "a", ""},
		{"SET", "a", `with "quotes" and \ slash`},
		{"SET", "a", "line\nbreak\ttab"},
		{"SET", "a", "|"},
		{"SET", "a", "it's"},
		{"SET", "a", "//not-a-comment"},
		{"SET", "a", "raw \xff\xfe bytes"},
		{"SET", "a", "nb\u00a0space"},
	}

	for _, args := range tests {
		line := Quote(args)
		tokens, err := Tokenize(line)
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", line, err)
		}
		if !reflect.DeepEqual(texts(tokens), args) {
			t.Errorf("Quote(%q) = %q, tokenized back to %q", args, line, texts(tokens))
		}
		for _, tok := range tokens {
			if tok.IsSeparator() {
				t.Errorf("Quote(%q) produced a separator", args)
			}
		}
	}
}
