package client

import (
	"encoding/json"
	"os"
	"sync"

	serr "github.com/adamsinnett/omorgan-events/error"
)

const fileStoreMode = 0600

type fileStore struct {
	mu   sync.Mutex
	path string
}

// FileStore returns a Store backed by a single JSON file. Every mutation
// rewrites the file from the current on-disk state, so concurrent holders of
// the same path observe last-write-wins.
func FileStore(path string) Store {
	return &fileStore{
		path: path,
	}
}

func (s *fileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}

	delete(values, key)

	return s.write(values)
}

func (s *fileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}

	v, ok := values[key]
	if !ok {
		return "", serr.Wrap(serr.ErrNotFound, "key '%s'", key)
	}

	return v, nil
}

func (s *fileStore) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}

	values[key] = value

	return s.write(values)
}

func (s *fileStore) read() (map[string]string, error) {
	values := map[string]string{}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}

		return nil, err
	}

	if err := json.Unmarshal(raw, &values); err != nil {
		// Corrupted persisted state is treated as empty.
		return map[string]string{}, nil
	}

	return values, nil
}

func (s *fileStore) write(values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, raw, fileStoreMode)
}
