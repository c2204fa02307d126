// Package memory provides the in-memory keyspace for redislight.
package memory

import (
	"github.com/yndnr/redislight-go/internal/core/domain"
	"github.com/yndnr/redislight-go/pkg/cmap"
)

// Store maps keys to values.
type Store struct {
	values *cmap.Map[domain.Value]
}

// Option configures the Store.
type Option func(*storeOptions)

type storeOptions struct {
	shards int
}

// WithShardCount sets the number of shards of the backing map.
func WithShardCount(n int) Option {
	return func(o *storeOptions) {
		o.shards = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := storeOptions{shards: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		values: cmap.NewWithShards[domain.Value](o.shards),
	}
}

// Get returns the value stored at key.
func (s *Store) Get(key string) (domain.Value, bool) {
	return s.values.Get(key)
}

// Set stores v at key, replacing any previous value of either kind.
func (s *Store) Set(key string, v domain.Value) {
	s.values.Set(key, v)
}

// SetIfAbsent stores v only when key is not present.
func (s *Store) SetIfAbsent(key string, v domain.Value) bool {
	return s.values.SetIfAbsent(key, v)
}

// SetIfPresent stores v only when key is already present.
func (s *Store) SetIfPresent(key string, v domain.Value) bool {
	return s.values.SetIfPresent(key, v)
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	_, ok := s.values.Pop(key)
	return ok
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return s.values.Count()
}
