// Package cache is the client-side query cache: one entry per logical
// resource, read-through by the services, invalidated after confirmed
// mutations. The one optimistic consumer (unban) snapshots an entry,
// mutates it in place and rolls back on failure.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// Well-known resource keys.
const (
	KeyBannedUsers = "bannedUsers"
	KeyUserReports = "userReports"
)

// KeySessionRequests keys one mentor service's request groups.
func KeySessionRequests(serviceID string) string {
	return fmt.Sprintf("sessionRequests:%s", serviceID)
}

type entry struct {
	data      any
	updatedAt time.Time
	stale     bool
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Get returns the cached value for key. ok is false when the entry is
// missing or has been invalidated, which tells the caller to refetch.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists || e.stale {
		return nil, false
	}
	return e.data, true
}

// Peek returns the cached value even when stale. Used for optimistic
// snapshots and for rendering while a refetch is outstanding.
func (s *Store) Peek(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists {
		return nil, false
	}
	return e.data, true
}

// Set stores a fresh value for key.
func (s *Store) Set(key string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{data: data, updatedAt: time.Now()}
}

// Invalidate marks key stale so the next Get forces an authoritative refetch.
// The data itself stays around for Peek.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, exists := s.entries[key]; exists {
		e.stale = true
		s.entries[key] = e
	}
}

// Drop removes the entry entirely.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Age returns how long ago key was last set, and whether it exists at all.
func (s *Store) Age(key string) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists {
		return 0, false
	}
	return time.Since(e.updatedAt), true
}
