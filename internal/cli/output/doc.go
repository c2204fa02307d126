// Package output renders command replies for the redislight CLI.
//
// Replies are first converted to a Document, a small tagged value that
// every format can encode:
//
//   - text: redis-cli style lines ("OK", "(nil)", "(integer) 3", "1) a")
//   - json: {"type": ..., "value": ...}
//   - yaml: the same document as YAML
//
// Formatters also accept arbitrary data (for example build info), which
// json and yaml encode directly and text prints with %v.
package output
