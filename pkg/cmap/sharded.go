package cmap

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is used when a requested shard count is not a power of 2.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map from string keys to V.
type Map[V any] struct {
	shards    []*shard[V]
	shardMask uint32
}

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// NewWithShards creates a map split into shardCount shards.
// shardCount must be a power of 2; any other value falls back to the default.
func NewWithShards[V any](shardCount int) *Map[V] {
	if shardCount <= 0 || shardCount&(shardCount-1) != 0 {
		shardCount = DefaultShardCount
	}

	m := &Map[V]{
		shards:    make([]*shard[V], shardCount),
		shardMask: uint32(shardCount - 1),
	}
	for i := range m.shards {
		m.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return m
}

func (m *Map[V]) shardFor(key string) *shard[V] {
	return m.shards[murmur3.Sum32([]byte(key))&m.shardMask]
}

// Get retrieves a value by key.
func (m *Map[V]) Get(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.items[key]
	return val, ok
}

// Set stores value under key.
func (m *Map[V]) Set(key string, value V) {
	s := m.shardFor(key)
	s.mu.Lock()
	s.items[key] = value
	s.mu.Unlock()
}

// SetIfAbsent stores value only when key is missing and reports whether
// it wrote.
func (m *Map[V]) SetIfAbsent(key string, value V) bool {
	return m.setWhen(key, value, false)
}

// SetIfPresent stores value only when key exists and reports whether it
// wrote.
func (m *Map[V]) SetIfPresent(key string, value V) bool {
	return m.setWhen(key, value, true)
}

func (m *Map[V]) setWhen(key string, value V, present bool) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; ok != present {
		return false
	}
	s.items[key] = value
	return true
}

// Pop removes key and returns the value it held.
func (m *Map[V]) Pop(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return val, ok
}

// Count returns the total number of items. Shards are read one at a
// time, so concurrent writers may make the total approximate.
func (m *Map[V]) Count() int {
	count := 0
	for _, s := range m.shards {
		s.mu.RLock()
		count += len(s.items)
		s.mu.RUnlock()
	}
	return count
}
