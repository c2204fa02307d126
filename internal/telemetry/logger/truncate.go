package logger

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// truncateAttr shortens string and error attributes longer than limit
// bytes, cutting on a rune boundary. The message, level and time keys
// are left alone.
func truncateAttr(limit int) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if limit < 0 {
			return a
		}
		if len(groups) == 0 && (a.Key == slog.MessageKey || a.Key == slog.LevelKey || a.Key == slog.TimeKey) {
			return a
		}

		var s string
		switch a.Value.Kind() {
		case slog.KindString:
			s = a.Value.String()
		case slog.KindAny:
			err, ok := a.Value.Any().(error)
			if !ok {
				return a
			}
			s = err.Error()
		default:
			return a
		}
		if len(s) <= limit {
			return a
		}
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return slog.String(a.Key, fmt.Sprintf("%s...(%d more bytes)", s[:cut], len(s)-cut))
	}
}
