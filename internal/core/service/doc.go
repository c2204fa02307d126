// Package service provides the command evaluation engine for redislight.
//
// The Evaluator owns no data itself. It applies parsed domain.Command
// values to a Keyspace (normally memory.Store) and an Expirer (normally
// memory.Registry), sweeping expired keys before every command.
//
// Evaluation is serialized by a single lock; callers may share one
// Evaluator across goroutines.
package service
