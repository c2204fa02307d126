package memory

import (
	"sort"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// Evictor removes keys from a keyspace. *Store satisfies it.
type Evictor interface {
	Delete(key string) bool
}

// Registry tracks one expiry deadline per key.
type Registry struct {
	deadlines map[string]time.Time
	now       Clock
}

// RegistryOption configures the Registry.
type RegistryOption func(*Registry)

// WithClock sets the time source used for deadlines and sweeps.
func WithClock(c Clock) RegistryOption {
	return func(r *Registry) {
		r.now = c
	}
}

// NewRegistry creates an empty expiry registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		deadlines: make(map[string]time.Time),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the registry's current time.
func (r *Registry) Now() time.Time {
	return r.now()
}

// Register sets key to expire d from now, replacing any earlier entry.
// A non-positive d makes the key due at the next sweep.
func (r *Registry) Register(key string, d time.Duration) time.Time {
	if d < 0 {
		d = 0
	}
	deadline := r.now().Add(d)
	r.deadlines[key] = deadline
	return deadline
}

// Clear removes the entry for key, if any.
func (r *Registry) Clear(key string) {
	delete(r.deadlines, key)
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	return len(r.deadlines)
}

// Sweep evicts every key whose deadline is at or before now, removing
// both the value from store and the entry. Due keys are collected
// before any removal so each entry is handled exactly once. The evicted
// keys are returned sorted.
func (r *Registry) Sweep(store Evictor) []string {
	now := r.now()

	var due []string
	for key, deadline := range r.deadlines {
		if !deadline.After(now) {
			due = append(due, key)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sort.Strings(due)
	for _, key := range due {
		store.Delete(key)
		delete(r.deadlines, key)
	}
	return due
}
