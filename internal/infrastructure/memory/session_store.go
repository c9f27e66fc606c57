package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

type sessionValue struct {
	value     string
	expiresAt time.Time
}

// SessionStore is an in-process SessionStore with a fixed TTL per entry.
// A zero TTL keeps entries until they are deleted.
type SessionStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]sessionValue
	now  func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, data: make(map[string]sessionValue), now: time.Now}
}

func (s *SessionStore) Get(_ context.Context, token string) (string, bool, error) {
	s.mu.RLock()
	v, ok := s.data[token]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !v.expiresAt.IsZero() && !s.now().Before(v.expiresAt) {
		s.mu.Lock()
		if cur, still := s.data[token]; still && cur == v {
			delete(s.data, token)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return v.value, true, nil
}

func (s *SessionStore) Set(_ context.Context, token, value string) error {
	v := sessionValue{value: value}
	if s.ttl > 0 {
		v.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.data[token] = v
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
	return nil
}

var _ repository.SessionStore = (*SessionStore)(nil)
