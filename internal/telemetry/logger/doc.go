// Package logger provides structured logging for redislight on top of
// log/slog.
//
// All loggers built with New share one level, so SetLevel takes effect
// everywhere at once. Long string attributes are truncated. Request IDs
// travel through context.Context and are attached by L or Enrich.
//
// Command output goes to stdout; logs go to their own writer (stderr by
// default) so the two never interleave on one stream.
package logger
