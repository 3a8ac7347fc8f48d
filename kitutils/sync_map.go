package kitutils

import (
	"sync"
	"sync/atomic"
)

// SyncMap is a typed sync.Map that also tracks its size. The zero value is
// an empty map ready to use. Entries are never deleted.
type SyncMap[K comparable, V any] struct {
	m     sync.Map
	count atomic.Int64
}

// Store sets the value of key.
func (s *SyncMap[K, V]) Store(key K, value V) {
	if _, loaded := s.m.Swap(key, value); !loaded {
		s.count.Add(1)
	}
}

// Load returns the value stored under key, if any.
func (s *SyncMap[K, V]) Load(key K) (V, bool) {
	v, ok := s.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}

	return v.(V), true
}

// LoadOrStore returns the value already stored under key, or stores and
// returns value. The boolean is true if the value was already present.
func (s *SyncMap[K, V]) LoadOrStore(key K, value V) (V, bool) {
	v, loaded := s.m.LoadOrStore(key, value)
	if !loaded {
		s.count.Add(1)
	}

	return v.(V), loaded
}

// Len returns the number of stored keys.
func (s *SyncMap[K, V]) Len() int {
	return int(s.count.Load())
}
