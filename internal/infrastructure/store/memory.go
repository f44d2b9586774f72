// Package store holds the in-memory token store and the persistence
// capability fact the startup probe produces.
package store

import (
	"context"
	"sync"
)

// Capability is the typed result of the one-time persistence probe. It is
// decided at startup and never re-checked.
type Capability struct {
	Persistent bool
}

type sessionState struct {
	token       string
	userID      int64
	displayName string
}

// MemoryTokenStore keeps per-session credentials in process memory. It backs
// the console when Redis is unavailable: sessions work normally but do not
// survive a restart. Also used throughout the test suite.
type MemoryTokenStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{sessions: make(map[string]*sessionState)}
}

func (s *MemoryTokenStore) SaveToken(_ context.Context, sid, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sid).token = token
}

func (s *MemoryTokenStore) Token(_ context.Context, sid string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sessions[sid]; ok {
		return st.token
	}
	return ""
}

func (s *MemoryTokenStore) SaveUserID(_ context.Context, sid string, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sid).userID = userID
}

func (s *MemoryTokenStore) UserID(_ context.Context, sid string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sessions[sid]; ok {
		return st.userID
	}
	return 0
}

func (s *MemoryTokenStore) SaveDisplayName(_ context.Context, sid, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sid).displayName = name
}

func (s *MemoryTokenStore) DisplayName(_ context.Context, sid string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sessions[sid]; ok {
		return st.displayName
	}
	return ""
}

func (s *MemoryTokenStore) Clear(_ context.Context, sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
}

// state returns the mutable entry for sid, creating it when absent.
// Callers must hold the write lock.
func (s *MemoryTokenStore) state(sid string) *sessionState {
	st, ok := s.sessions[sid]
	if !ok {
		st = &sessionState{}
		s.sessions[sid] = st
	}
	return st
}
