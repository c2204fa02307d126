package memory

import (
	"reflect"
	"testing"
	"time"

	"github.com/yndnr/redislight-go/internal/core/domain"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func has(s *Store, key string) bool {
	_, ok := s.Get(key)
	return ok
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(WithClock(clock.Now))

	r.Register("k", 10*time.Second)
	r.Register("k", time.Minute)

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 entry per key", r.Len())
	}
	d, ok := r.deadlines["k"]
	if !ok || !d.Equal(clock.Now().Add(time.Minute)) {
		t.Errorf("deadline = (%v, %v), want last registration", d, ok)
	}
}

func TestRegistry_NegativeDurationIsDue(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(WithClock(clock.Now))

	if d := r.Register("k", -time.Second); !d.Equal(clock.Now()) {
		t.Errorf("Register = %v, want now", d)
	}
	store := New()
	store.Set("k", domain.NewStr("v"))
	if evicted := r.Sweep(store); !reflect.DeepEqual(evicted, []string{"k"}) {
		t.Errorf("Sweep evicted %v, want [k]", evicted)
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry()

	r.Register("k", time.Hour)
	r.Clear("k")
	r.Clear("never-registered")

	if _, ok := r.deadlines["k"]; ok {
		t.Error("deadline should be gone after Clear")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_Sweep(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(WithClock(clock.Now))
	store := New()

	for _, k := range []string{"a", "b", "c", "d"} {
		store.Set(k, domain.NewStr(k))
	}
	r.Register("a", 0)
	r.Register("b", time.Second)
	r.Register("c", 2*time.Second)
	r.Register("gone", 0) // value already removed by other means

	evicted := r.Sweep(store)
	if !reflect.DeepEqual(evicted, []string{"a", "gone"}) {
		t.Fatalf("first Sweep evicted %v, want [a gone]", evicted)
	}

	clock.Advance(time.Second)
	evicted = r.Sweep(store)
	if !reflect.DeepEqual(evicted, []string{"b"}) {
		t.Fatalf("second Sweep evicted %v, want [b] (deadline == now is due)", evicted)
	}

	if has(store, "a") || has(store, "b") {
		t.Error("expired keys should be removed from the store")
	}
	if !has(store, "c") || !has(store, "d") {
		t.Error("live keys must survive the sweep")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	if evicted := r.Sweep(store); evicted != nil {
		t.Errorf("idle Sweep evicted %v, want nothing", evicted)
	}
}

func TestRegistry_SweepManyEntries(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(WithClock(clock.Now))
	store := New()

	const n = 500
	for i := 0; i < n; i++ {
		key := string(rune('A'+i%26)) + time.Duration(i).String()
		store.Set(key, domain.NewStr("v"))
		r.Register(key, time.Duration(i%2)*time.Second)
	}

	evicted := r.Sweep(store)
	if len(evicted) != n/2 {
		t.Fatalf("Sweep evicted %d keys, want %d", len(evicted), n/2)
	}
	if store.Len() != n/2 || r.Len() != n/2 {
		t.Errorf("after sweep store=%d registry=%d, want %d each", store.Len(), r.Len(), n/2)
	}
}
