// Package parser turns command lines into domain commands.
//
// A line is first split into tokens by Tokenize, which understands
// double-quoted strings with escapes, single-quoted literals, the "|"
// command separator and "//" comments. Parse then builds one
// domain.Command from the tokens of a single command. ParseLine does
// both and splits pipelines.
package parser
