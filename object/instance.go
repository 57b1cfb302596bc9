package object

import (
	"sync/atomic"

	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/heap"
)

// Lifecycle states of an instance.
const (
	stateZero int32 = iota
	stateConstructing
	stateAlive
	stateDestroying
	stateDestroyed
)

// binding is one bound method slot.
type binding struct {
	fn    MethodFunc
	async AsyncFunc
	owner *Class
}

// Instance is a live object. The zero value is an unconstructed location
// usable with Runtime.NewInPlace.
type Instance struct {
	class   *Class
	fields  []Field
	events  []EventSlot
	methods []binding
	mu      reentrantMutex
	handle  heap.Handle
	state   atomic.Int32
}

// Class returns the instance's class, or nil before construction.
func (inst *Instance) Class() *Class { return inst.class }

// Handle returns the heap handle of an engine-allocated instance,
// or zero for in-place instances and after release.
func (inst *Instance) Handle() heap.Handle { return inst.handle }

// Alive reports whether construction completed and destruction has not begun.
func (inst *Instance) Alive() bool { return inst.state.Load() == stateAlive }

// Destroyed reports whether the destruction chain has run.
func (inst *Instance) Destroyed() bool { return inst.state.Load() == stateDestroyed }

// usable admits calls from constructors and destructors as well as live objects.
func (inst *Instance) usable(phase errors.Phase) error {
	switch inst.state.Load() {
	case stateConstructing, stateAlive, stateDestroying:
		return nil
	}
	name := "<unconstructed>"
	if inst.class != nil {
		name = inst.class.Name()
	}
	return errors.NotAlive(phase, name)
}

// Field returns the cell of a field by name, or nil.
func (inst *Instance) Field(name string) *Field {
	if inst.class == nil {
		return nil
	}
	slot, ok := inst.class.layout.Field(name)
	if !ok || slot.Index >= len(inst.fields) {
		return nil
	}
	return &inst.fields[slot.Index]
}

// FieldAt returns the cell of the field starting at a layout byte offset, or nil.
func (inst *Instance) FieldAt(offset uint32) *Field {
	if inst.class == nil {
		return nil
	}
	slot, ok := inst.class.layout.FieldAt(offset)
	if !ok || slot.Index >= len(inst.fields) {
		return nil
	}
	return &inst.fields[slot.Index]
}

// Get returns a field value, or nil when the field does not exist.
func (inst *Instance) Get(name string) any {
	if f := inst.Field(name); f != nil {
		return f.Get()
	}
	return nil
}

// Set stores a field value converted to its declared type.
func (inst *Instance) Set(name string, v any) error {
	if err := inst.usable(errors.PhaseDispatch); err != nil {
		return err
	}
	f := inst.Field(name)
	if f == nil {
		return errors.NotFound(errors.PhaseDispatch, "field", name)
	}
	return f.Set(v)
}

// Int returns an integer field widened to int64.
func (inst *Instance) Int(name string) int64 {
	if f := inst.Field(name); f != nil {
		return f.Int()
	}
	return 0
}

// Destroy runs the destruction chain. See Runtime.Destroy.
func (inst *Instance) Destroy() {
	if inst.class != nil {
		inst.class.rt.Destroy(inst)
	}
}

// reset zeroes every cell and slot. The class stays so errors can name it.
func (inst *Instance) reset() {
	for i := range inst.fields {
		inst.fields[i].reset()
	}
	for i := range inst.events {
		inst.events[i].Set(nil)
	}
	for i := range inst.methods {
		inst.methods[i] = binding{}
	}
}

// heapRef is the value stored in the object heap.
type heapRef struct {
	inst *Instance
}

// Drop destroys objects the heap releases while still alive.
func (r heapRef) Drop() {
	if r.inst.Alive() {
		r.inst.class.rt.destroy(r.inst)
	}
	r.inst.handle = 0
}
