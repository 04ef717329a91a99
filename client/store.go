package client

import (
	"sync"

	serr "github.com/adamsinnett/omorgan-events/error"
)

// Store is the scoped key-value boundary the session persists through. Keys
// absent from the store surface as NotFound.
type Store interface {
	Delete(key string) error
	Get(key string) (string, error)
	Put(key, value string) error
}

type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

// MemStore returns an in-memory Store, used for tests and short-lived
// sessions.
func MemStore() Store {
	return &memStore{
		values: map[string]string{},
	}
}

func (s *memStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}

func (s *memStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return "", serr.Wrap(serr.ErrNotFound, "key '%s'", key)
	}

	return v, nil
}

func (s *memStore) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}
