package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/redislight-go/internal/core/domain"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TextFormatter{}
	}
}

// Document types.
const (
	TypeStatus  = "status"
	TypeNil     = "nil"
	TypeInteger = "integer"
	TypeString  = "string"
	TypeList    = "list"
	TypeError   = "error"
	TypeInvalid = "invalid"
)

// Document is the format-neutral form of a reply. Code carries the
// RL-* error code of failures.
type Document struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
	Code  string `json:"code,omitempty" yaml:"code,omitempty"`
}

// FromReply converts an evaluator reply into a Document.
func FromReply(r domain.Reply) Document {
	switch v := r.(type) {
	case domain.StatusReply:
		return Document{Type: TypeStatus, Value: v.Status}
	case domain.NilReply:
		return Document{Type: TypeNil}
	case domain.IntegerReply:
		return Document{Type: TypeInteger, Value: v.N}
	case domain.BulkReply:
		return Document{Type: TypeString, Value: v.Text}
	case domain.MultiReply:
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return Document{Type: TypeList, Value: items}
	case domain.ErrorReply:
		return Document{Type: TypeError, Value: ErrorMessage(v.Err), Code: domain.CodeOf(v.Err)}
	default:
		return Document{Type: TypeError, Value: fmt.Sprintf("unrecognized reply %T", r)}
	}
}

// Invalid wraps a parse failure.
func Invalid(err error) Document {
	return Document{Type: TypeInvalid, Value: ErrorMessage(err), Code: domain.CodeOf(err)}
}

// IsFailure reports whether doc belongs on the error writer.
func (d Document) IsFailure() bool {
	return d.Type == TypeError || d.Type == TypeInvalid
}

// ErrorMessage renders an error for users, without the internal code
// prefix DomainError.Error carries.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *domain.DomainError
	if !errors.As(err, &de) {
		return err.Error()
	}

	msg := de.Message
	if de.Details != "" {
		msg += ": " + de.Details
	}
	if de.Cause != nil {
		msg += ": " + ErrorMessage(de.Cause)
	}
	return msg
}
