// Package main provides the entry point for redislight.
//
// redislight is an in-memory key-value store driven by a small
// Redis-like command language. It supports strings, lists and key
// expiry, either interactively or one command line at a time:
//
//	redislight
//	redislight exec SET greeting "hello world" EX 60
//	redislight -o json exec 'LPUSH l a b | LRANGE l 0 -1'
//	redislight config show
package main
