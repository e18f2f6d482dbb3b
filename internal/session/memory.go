package session

import (
	"context"
	"sync"
	"time"
)

// MemoryRegistry is a process-local registry guarded by an RWMutex.
// When the capacity cap is hit, the least recently active session is
// evicted to make room, so the registry never grows without bound.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	capacity int
	now      func() time.Time
}

const DefaultCapacity = 10000

func NewMemoryRegistry(capacity int) *MemoryRegistry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryRegistry{
		sessions: make(map[string]*Session),
		capacity: capacity,
		now:      time.Now,
	}
}

func (r *MemoryRegistry) Put(ctx context.Context, token string, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[token]; !exists && len(r.sessions) >= r.capacity {
		r.evictOldestLocked()
	}
	r.sessions[token] = s
	return nil
}

func (r *MemoryRegistry) Get(ctx context.Context, token string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	if s.Expired(r.now()) {
		r.mu.Lock()
		delete(r.sessions, token)
		r.mu.Unlock()
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRegistry) Touch(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil
	}
	if s.Expired(r.now()) {
		delete(r.sessions, token)
		return nil
	}
	s.LastActivity = r.now()
	return nil
}

func (r *MemoryRegistry) Remove(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) RemoveAll(ctx context.Context) error {
	r.mu.Lock()
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) Sweep(ctx context.Context) error {
	now := r.now()
	r.mu.Lock()
	for token, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, token)
		}
	}
	r.mu.Unlock()
	return nil
}

// Len reports the number of held sessions, expired or not.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *MemoryRegistry) evictOldestLocked() {
	var oldestToken string
	var oldest time.Time
	first := true
	for token, s := range r.sessions {
		if first || s.LastActivity.Before(oldest) {
			oldestToken = token
			oldest = s.LastActivity
			first = false
		}
	}
	if oldestToken != "" {
		delete(r.sessions, oldestToken)
	}
}

var _ Registry = (*MemoryRegistry)(nil)
