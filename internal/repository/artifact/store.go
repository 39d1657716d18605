// Package artifact holds short-lived generation artifacts (quiz and mock
// test answer keys) between the generate and submit calls. Entries expire
// after a TTL so abandoned quizzes do not accumulate.
package artifact

import (
	"sync"
	"time"
)

// DefaultTTL is how long an artifact stays retrievable.
const DefaultTTL = 2 * time.Hour

const janitorInterval = time.Minute

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Store is a keyed in-memory TTL store.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

// New creates a store with the given TTL (DefaultTTL when ttl <= 0) and
// starts the expiry janitor.
func New[T any](ttl time.Duration) *Store[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store[T]{
		items: make(map[string]entry[T]),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put stores a value under key, resetting its TTL.
func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = entry[T]{value: value, expiresAt: time.Now().Add(s.ttl)}
}

// Get returns the value for key if present and not expired.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Delete removes a key.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Clear drops every entry.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]entry[T])
}

// Len returns the number of stored entries, including not-yet-swept expired ones.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close stops the janitor. Safe to call more than once.
func (s *Store[T]) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Store[T]) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for k, e := range s.items {
				if now.After(e.expiresAt) {
					delete(s.items, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
