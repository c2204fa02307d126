package output

import (
	"fmt"
	"io"
)

// TextFormatter renders documents the way redis-cli does.
type TextFormatter struct{}

// Format writes doc as one or more lines.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	doc, ok := data.(Document)
	if !ok {
		_, err := fmt.Fprintln(w, data)
		return err
	}

	switch doc.Type {
	case TypeNil:
		_, err := fmt.Fprintln(w, "(nil)")
		return err
	case TypeInteger:
		_, err := fmt.Fprintf(w, "(integer) %v\n", doc.Value)
		return err
	case TypeList:
		items, _ := doc.Value.([]string)
		for i, item := range items {
			if _, err := fmt.Fprintf(w, "%d) %s\n", i+1, item); err != nil {
				return err
			}
		}
		return nil
	case TypeError:
		_, err := fmt.Fprintf(w, "(error) %v\n", doc.Value)
		return err
	case TypeInvalid:
		_, err := fmt.Fprintln(w, "(Invalid Command)")
		return err
	default:
		_, err := fmt.Fprintln(w, doc.Value)
		return err
	}
}
