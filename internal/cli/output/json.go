package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes one indented JSON document per reply.
type JSONFormatter struct{}

// Format encodes data. Stored values are written verbatim, so HTML
// escaping is off.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}
