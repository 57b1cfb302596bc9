package heap

import (
	"sync"
)

// Table maps handles to live values with an optional capacity bound.
type Table struct {
	store     *store
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates a table holding at most capacity live values.
// A capacity of zero or less means unbounded.
func NewTable(capacity int) *Table {
	return &Table{
		store: newStore(capacity),
	}
}

// Insert stores a value and returns its handle.
// It fails with ErrExhausted at capacity and ErrClosed after Close.
func (t *Table) Insert(typeID uint32, value any) (Handle, error) {
	handle, err := t.store.create(typeID, value)
	if err != nil {
		if err == ErrExhausted {
			t.notify(Event{Type: EventExhausted, TypeID: typeID, Value: value})
		}
		return 0, err
	}

	t.notify(Event{
		Type:   EventAllocated,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})

	return handle, nil
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	e, ok := t.store.get(handle)
	return e.value, ok
}

// GetTyped retrieves a value only if it was inserted with typeID.
func (t *Table) GetTyped(handle Handle, typeID uint32) (any, bool) {
	e, ok := t.store.get(handle)
	if !ok || e.typeID != typeID {
		return nil, false
	}
	return e.value, true
}

// Remove releases a handle and returns its value.
// Values implementing Dropper are dropped first.
func (t *Table) Remove(handle Handle) (any, bool) {
	e, ok := t.store.drop(handle)
	if !ok {
		return nil, false
	}

	if d, ok := e.value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventReleased,
		Handle: handle,
		TypeID: e.typeID,
		Value:  e.value,
	})

	return e.value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. Observers must be comparable.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live values.
func (t *Table) Len() int {
	return t.store.len()
}

// Each visits live values in handle order until fn returns false.
// fn must not call back into the table.
func (t *Table) Each(fn func(Handle, uint32, any) bool) {
	t.store.each(fn)
}

// Clear releases every live value.
func (t *Table) Clear() {
	// collect first; Remove takes the write lock
	var handles []Handle
	t.store.each(func(h Handle, _ uint32, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close drops every live value and rejects further inserts.
// Observers are not notified for values dropped by Close.
func (t *Table) Close() error {
	for _, v := range t.store.close() {
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHeapEvent(e)
	}
}
