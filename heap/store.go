package heap

import (
	"errors"
	"sync"
)

var (
	ErrClosed    = errors.New("heap closed")
	ErrExhausted = errors.New("heap capacity exhausted")
)

// store is the slot array behind a Table. Released slots are reused
// through a free list so handles stay small.
type store struct {
	entries  []entry
	freeList []Handle
	live     int
	capacity int
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value  any
	typeID uint32
	valid  bool
}

func newStore(capacity int) *store {
	return &store{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
		capacity: capacity,
	}
}

func (s *store) create(typeID uint32, value any) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	if s.capacity > 0 && s.live >= s.capacity {
		return 0, ErrExhausted
	}

	e := entry{
		typeID: typeID,
		value:  value,
		valid:  true,
	}
	s.live++

	if len(s.freeList) > 0 {
		handle := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[handle-1] = e
		return handle, nil
	}

	s.entries = append(s.entries, e)
	return Handle(len(s.entries)), nil
}

func (s *store) get(handle Handle) (entry, bool) {
	if handle == 0 {
		return entry{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(s.entries) {
		return entry{}, false
	}

	e := s.entries[idx]
	if !e.valid {
		return entry{}, false
	}
	return e, true
}

func (s *store) drop(handle Handle) (entry, bool) {
	if handle == 0 {
		return entry{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(s.entries) {
		return entry{}, false
	}

	e := s.entries[idx]
	if !e.valid {
		return entry{}, false
	}

	s.entries[idx] = entry{}
	s.freeList = append(s.freeList, handle)
	s.live--
	return e, true
}

// close invalidates every slot and returns the values that were live.
func (s *store) close() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var values []any
	for _, e := range s.entries {
		if e.valid {
			values = append(values, e.value)
		}
	}

	s.entries = nil
	s.freeList = nil
	s.live = 0
	return values
}

func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

func (s *store) each(fn func(Handle, uint32, any) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, e := range s.entries {
		if e.valid {
			if !fn(Handle(i+1), e.typeID, e.value) {
				break
			}
		}
	}
}
