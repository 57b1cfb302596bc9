package object

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// reentrantMutex is a mutex the holding goroutine may lock again.
// Each Lock must be paired with an Unlock. Ownership is tracked by held,
// not by a zero owner id.
type reentrantMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	held  atomic.Bool
	depth int32
}

// owns reports whether goroutine id holds the mutex. An unknown id (zero)
// never owns it, so such callers always go through mu.
func (m *reentrantMutex) owns(id int64) bool {
	return id != 0 && m.held.Load() && m.owner.Load() == id
}

func (m *reentrantMutex) acquired(id int64) {
	m.owner.Store(id)
	m.held.Store(true)
	m.depth = 1
}

func (m *reentrantMutex) Lock() {
	id := goid.Get()
	if m.owns(id) {
		m.depth++
		return
	}
	m.mu.Lock()
	m.acquired(id)
}

func (m *reentrantMutex) TryLock() bool {
	id := goid.Get()
	if m.owns(id) {
		m.depth++
		return true
	}
	if !m.mu.TryLock() {
		return false
	}
	m.acquired(id)
	return true
}

func (m *reentrantMutex) Unlock() {
	if !m.held.Load() || m.owner.Load() != goid.Get() {
		panic("object: unlock of instance not locked by this goroutine")
	}
	m.depth--
	if m.depth == 0 {
		m.held.Store(false)
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

// Lock acquires the instance mutex. The holding goroutine may lock again;
// calls are never locked automatically.
func (inst *Instance) Lock() { inst.mu.Lock() }

// TryLock acquires the instance mutex without blocking.
func (inst *Instance) TryLock() bool { return inst.mu.TryLock() }

// Unlock releases one level of the instance mutex. It panics when the
// calling goroutine does not hold the lock.
func (inst *Instance) Unlock() { inst.mu.Unlock() }
