package db

import "sync"

const (
	INITIAL_DB_SIZE = 16
)

// Store is a single string keyspace.
type Store struct {
	mu   sync.RWMutex
	dict *HashTable[string, []byte]
}

func New() *Store {
	return &Store{
		dict: NewHashTable[string, []byte](INITIAL_DB_SIZE),
	}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dict.Get(key)
}

// Set stores a copy of value under key, replacing any previous value.
func (s *Store) Set(key string, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	s.dict.Set(key, v)
	s.mu.Unlock()
}

// Delete removes the given keys and returns how many existed.
func (s *Store) Delete(keys ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, key := range keys {
		if s.dict.Delete(key) {
			n++
		}
	}
	return n
}

// Exists counts the given keys that are present. A key repeated in keys is
// counted each time.
func (s *Store) Exists(keys ...string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, key := range keys {
		if _, ok := s.dict.Get(key); ok {
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dict.Len()
}
