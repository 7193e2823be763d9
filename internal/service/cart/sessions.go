package cart

import (
	"sync"
	"time"

	"github.com/fullstackvinod/krishAlignUser/internal/cart"
	"github.com/google/uuid"
)

// session owns one shopper's cart. mu serializes every access to store;
// expiresAt belongs to the registry lock.
type session struct {
	mu        sync.Mutex
	id        string
	store     *cart.Store
	expiresAt time.Time
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *sessionRegistry) open() *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &session{
		id:        uuid.NewString(),
		store:     cart.New(),
		expiresAt: r.now().Add(r.ttl),
	}
	r.sessions[s.id] = s
	return s
}

// lookup returns a live session and extends its expiry.
func (r *sessionRegistry) lookup(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if now.After(s.expiresAt) {
		delete(r.sessions, id)
		return nil, false
	}
	s.expiresAt = now.Add(r.ttl)
	return s, true
}

func (r *sessionRegistry) close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// sweep drops expired sessions and reports how many were removed.
func (r *sessionRegistry) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if now.After(s.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
