package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Used when REDIS_URL is unset
// so development boots without Redis; expiry is checked on read.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	data      AdminSession
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]memorySession{}}
}

func (s *MemoryStore) Create(_ context.Context, sess AdminSession) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sid := newSessionID()
	s.sessions[sid] = memorySession{data: sess, expiresAt: time.Now().Add(TTL)}
	return sid, nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (AdminSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sid]
	if !ok {
		return AdminSession{}, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, sid)
		return AdminSession{}, ErrNotFound
	}
	return entry.data, nil
}

func (s *MemoryStore) Refresh(_ context.Context, sid string, sess AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sid]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, sid)
		return ErrNotFound
	}
	entry.data = sess
	s.sessions[sid] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sid)
	return nil
}
