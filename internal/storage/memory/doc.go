// Package memory provides the in-memory keyspace for redislight.
//
//   - store.go: Store, the key to Value mapping on a sharded map
//   - expiry.go: Registry, per-key deadlines with lazy sweep eviction
//
// Deadlines live beside the Store, not inside it: an entry references
// its key by name and the Store never looks at the Registry. The
// Registry itself is not synchronized; callers serialize access to a
// Store+Registry pair (the evaluator holds one lock per command).
package memory
