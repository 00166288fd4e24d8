package services

import "sync"

// keyedStore holds one record per key, each behind its own mutex, so that a
// read-modify-write on one key is atomic without blocking other keys. The
// map-level lock is held only to look up or insert an entry.
type keyedStore[T any] struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry[T]
}

type keyedEntry[T any] struct {
	mu      sync.Mutex
	value   T
	removed bool // set by sweep; holders must re-resolve the key
}

func newKeyedStore[T any]() *keyedStore[T] {
	return &keyedStore[T]{entries: make(map[string]*keyedEntry[T])}
}

// with runs fn on the record for key while holding that record's lock,
// creating a zero record on first reference.
func (s *keyedStore[T]) with(key string, fn func(v *T)) {
	for {
		s.mu.Lock()
		e, ok := s.entries[key]
		if !ok {
			e = &keyedEntry[T]{}
			s.entries[key] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		if e.removed {
			e.mu.Unlock()
			continue
		}
		fn(&e.value)
		e.mu.Unlock()
		return
	}
}

// sweep deletes records for which idle returns true. Records currently
// locked by a caller are skipped and picked up on a later sweep.
func (s *keyedStore[T]) sweep(idle func(v *T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if !e.mu.TryLock() {
			continue
		}
		if idle(&e.value) {
			e.removed = true
			delete(s.entries, key)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// each calls fn with a copy of every record
func (s *keyedStore[T]) each(fn func(key string, v T)) {
	s.mu.Lock()
	entries := make(map[string]*keyedEntry[T], len(s.entries))
	for k, e := range s.entries {
		entries[k] = e
	}
	s.mu.Unlock()

	for key, e := range entries {
		e.mu.Lock()
		v, removed := e.value, e.removed
		e.mu.Unlock()
		if !removed {
			fn(key, v)
		}
	}
}

func (s *keyedStore[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
