package state

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sandevgo/edagent/internal/core"
)

const (
	DefaultMaxUsers = 1024
	DefaultTTL      = 30 * time.Minute
)

type entry struct {
	// gate admits one turn at a time; it is never held by bookkeeping code.
	gate chan struct{}
	refs atomic.Int32

	mu   sync.Mutex
	conv Conversation
	gen  uint64
}

// EvictFunc is called when an idle conversation leaves the store.
type EvictFunc func(c Conversation)

// Store keeps conversations in a size-bounded LRU with an inactivity TTL.
// Entries with a turn in flight are pinned and cannot be lost to eviction.
type Store struct {
	mu      sync.Mutex
	cache   *expirable.LRU[string, *entry]
	pinned  map[string]*entry
	now     func() time.Time
	onEvict EvictFunc
}

type StoreOption func(*Store)

func WithEvictFunc(fn EvictFunc) StoreOption {
	return func(s *Store) { s.onEvict = fn }
}

func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(maxUsers int, ttl time.Duration, opts ...StoreOption) *Store {
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		pinned: make(map[string]*entry),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = expirable.NewLRU[string, *entry](maxUsers, s.evicted, ttl)
	return s
}

// evicted may run on the cache's expiry goroutine, so it touches only the entry.
func (s *Store) evicted(_ string, e *entry) {
	if s.onEvict == nil || e.refs.Load() > 0 {
		return
	}
	e.mu.Lock()
	c := e.conv.Clone()
	e.mu.Unlock()
	if c.Assessment != nil && c.Assessment.Status == core.AssessmentActive {
		c.Assessment.Status = core.AssessmentAbandoned
	}
	s.onEvict(c)
}

func (s *Store) lookup(userID string) *entry {
	if e, ok := s.pinned[userID]; ok {
		return e
	}
	if e, ok := s.cache.Get(userID); ok {
		return e
	}
	e := &entry{
		gate: make(chan struct{}, 1),
		conv: NewConversation(userID),
	}
	s.cache.Add(userID, e)
	return e
}

// Turn is exclusive access to one user's conversation for one message.
type Turn struct {
	store  *Store
	userID string
	e      *entry
	gen    uint64
	done   bool
}

// Acquire waits until no other turn for userID is in flight.
func (s *Store) Acquire(ctx context.Context, userID string) (*Turn, error) {
	s.mu.Lock()
	e := s.lookup(userID)
	e.refs.Add(1)
	s.pinned[userID] = e
	s.mu.Unlock()

	select {
	case e.gate <- struct{}{}:
	case <-ctx.Done():
		s.unpin(userID, e)
		return nil, ctx.Err()
	}

	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()

	return &Turn{store: s, userID: userID, e: e, gen: gen}, nil
}

// Snapshot returns a private copy of the conversation.
func (t *Turn) Snapshot() Conversation {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	return t.e.conv.Clone()
}

// Commit stores c unless the conversation was reset while the turn ran.
func (t *Turn) Commit(c Conversation) bool {
	t.e.mu.Lock()
	defer t.e.mu.Unlock()
	if t.e.gen != t.gen {
		return false
	}
	c.UserID = t.userID
	c.LastActivity = t.store.now()
	t.e.conv = c.Clone()
	return true
}

func (t *Turn) Release() {
	if t.done {
		return
	}
	t.done = true
	<-t.e.gate
	t.store.unpin(t.userID, t.e)
}

func (s *Store) unpin(userID string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.refs.Add(-1) == 0 {
		delete(s.pinned, userID)
	}
	// Re-adding refreshes the TTL and restores an entry evicted mid-turn.
	s.cache.Add(userID, e)
}

// Peek returns a copy of the conversation without refreshing its TTL.
func (s *Store) Peek(userID string) (Conversation, bool) {
	s.mu.Lock()
	e, ok := s.pinned[userID]
	if !ok {
		e, ok = s.cache.Peek(userID)
	}
	s.mu.Unlock()
	if !ok {
		return Conversation{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conv.Clone(), true
}

// Reset returns the user to a fresh IDLE conversation. A turn already in
// flight for the user will not be able to commit.
func (s *Store) Reset(userID string) {
	s.mu.Lock()
	e, ok := s.pinned[userID]
	if !ok {
		e, ok = s.cache.Peek(userID)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	e.mu.Lock()
	e.gen++
	e.conv = NewConversation(userID)
	e.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
