// Package chat implements the two conversational modes of the helper API:
// server-held sessions (tutors and specialist consultants) and stateless
// turns where the caller replays history on every request.
package chat

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrSessionNotFound is returned for any session id not produced by Start
// (or already evicted).
var ErrSessionNotFound = errors.New("chat session not found")

// Conversation roles, matching the backend's wire values.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one conversation entry.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Session is server-owned conversation state. History is mutated only by
// appending one user turn and one model turn per send, in that order; mu
// serializes sends so two concurrent sends on the same session can never
// interleave their history mutations.
type Session struct {
	ID                uuid.UUID
	SystemInstruction string

	mu      sync.Mutex
	history []Turn
}

// History returns a copy of the accumulated turns.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Store is a concurrency-safe mapping from session id to live session.
// Sessions expire after the configured TTL (refreshed on every successful
// send) and are purged periodically; there is no explicit close operation.
type Store struct {
	cache  *cache.Cache
	logger *slog.Logger
}

// NewStore creates a session store with the given TTL and purge interval.
func NewStore(ttl, purgeInterval time.Duration, logger *slog.Logger) *Store {
	c := cache.New(ttl, purgeInterval)
	c.OnEvicted(func(id string, _ any) {
		logger.Debug("chat session evicted", "session_id", id)
	})
	return &Store{cache: c, logger: logger}
}

// Put inserts or refreshes a session under its id.
func (st *Store) Put(sess *Session) {
	st.cache.Set(sess.ID.String(), sess, cache.DefaultExpiration)
}

// Get looks up a live session.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	v, found := st.cache.Get(id.String())
	if !found {
		return nil, false
	}
	return v.(*Session), true
}

// Count reports the number of live sessions (including not-yet-purged
// expired entries, per the underlying cache semantics).
func (st *Store) Count() int {
	return st.cache.ItemCount()
}
