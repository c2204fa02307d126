// Package cmap provides a sharded map keyed by string.
//
// Keys are spread over a power-of-two number of shards using
// MurmurHash3, each shard guarded by its own RWMutex. Conditional
// writes check and store under one shard lock.
//
// Usage:
//
//	m := cmap.NewWithShards[domain.Value](cmap.DefaultShardCount)
//	m.Set("key", domain.NewStr("v"))
//	val, ok := m.Get("key")
package cmap
