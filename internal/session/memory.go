package session

import "sync"

var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage keeps the identity for the process lifetime.
type MemoryStorage struct {
	mu sync.Mutex
	v  string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.v == "" {
		return "", ErrNoSession
	}
	return s.v, nil
}

func (s *MemoryStorage) Save(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = v
	return nil
}
