package cart

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestRegistry(ttl time.Duration) (*sessionRegistry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	r := newSessionRegistry(ttl)
	r.now = clock.now
	return r, clock
}

func TestRegistryLookupExtendsExpiry(t *testing.T) {
	r, clock := newTestRegistry(time.Minute)
	s := r.open()

	clock.t = clock.t.Add(50 * time.Second)
	if _, ok := r.lookup(s.id); !ok {
		t.Fatal("expected live session")
	}
	clock.t = clock.t.Add(50 * time.Second)
	if _, ok := r.lookup(s.id); !ok {
		t.Fatal("expected lookup to have extended expiry")
	}
}

func TestRegistryLookupDropsExpired(t *testing.T) {
	r, clock := newTestRegistry(time.Minute)
	s := r.open()

	clock.t = clock.t.Add(2 * time.Minute)
	if _, ok := r.lookup(s.id); ok {
		t.Fatal("expected expired session to be rejected")
	}
	if r.len() != 0 {
		t.Fatalf("expected expired session to be removed, have %d", r.len())
	}
}

func TestRegistrySweep(t *testing.T) {
	r, clock := newTestRegistry(time.Minute)
	r.open()
	r.open()
	clock.t = clock.t.Add(30 * time.Second)
	fresh := r.open()

	clock.t = clock.t.Add(45 * time.Second)
	if removed := r.sweep(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, ok := r.lookup(fresh.id); !ok {
		t.Fatal("expected fresh session to survive sweep")
	}
}

func TestRegistryClose(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)
	s := r.open()
	if !r.close(s.id) {
		t.Fatal("expected close to report removal")
	}
	if r.close(s.id) {
		t.Fatal("expected second close to report nothing removed")
	}
}
