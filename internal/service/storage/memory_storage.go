package storage

import (
	"sync"
)

// MemoryStorage - universal in-memory object storage
// K - key type, V - stored object type
type MemoryStorage[K comparable, V any] struct {
	data  map[K]V
	mutex sync.RWMutex
}

// NewMemoryStorage creates a new storage
func NewMemoryStorage[K comparable, V any]() *MemoryStorage[K, V] {
	return &MemoryStorage[K, V]{
		data: make(map[K]V),
	}
}

// Get returns an object by key
func (s *MemoryStorage[K, V]) Get(key K) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.data[key]
	return value, exists
}

// Replace swaps the whole content in one step. The map is copied, so the
// caller may keep using it.
func (s *MemoryStorage[K, V]) Replace(entries map[K]V) {
	data := make(map[K]V, len(entries))
	for k, v := range entries {
		data[k] = v
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data = data
}

// Count returns the number of objects
func (s *MemoryStorage[K, V]) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
