package object

import (
	"go.uber.org/zap"
)

// Destroy runs the destruction chain of inst: the most derived destructor
// first, then every ancestor's with isBase set. Destroying an object that
// is not alive, including a second time, does nothing.
func (rt *Runtime) Destroy(inst *Instance) {
	if inst == nil {
		return
	}
	rt.destroy(inst)
}

// DestroyAndRelease destroys inst and returns its heap slot.
// In-place objects are only destroyed.
func (rt *Runtime) DestroyAndRelease(inst *Instance) {
	if inst == nil {
		return
	}
	rt.destroy(inst)
	rt.release(inst)
}

func (rt *Runtime) destroy(inst *Instance) {
	if !inst.state.CompareAndSwap(stateAlive, stateDestroying) {
		if inst.class != nil && inst.state.Load() != stateZero {
			rt.logger.Debug("repeated destruction ignored",
				zap.String("class", inst.class.Name()),
				zap.Uint32("handle", uint32(inst.handle)))
		}
		return
	}

	class := inst.class
	for level := class; level != nil; level = level.base {
		if level.impl.Dtor != nil {
			level.impl.Dtor(inst, level != class)
		}
	}

	inst.state.Store(stateDestroyed)
	if rt.metrics != nil {
		rt.metrics.ObjectDestroyed(class.Name())
	}
	rt.logger.Debug("object destroyed",
		zap.String("class", class.Name()),
		zap.Uint32("handle", uint32(inst.handle)))
}

// release returns the heap slot of an engine-allocated object.
func (rt *Runtime) release(inst *Instance) {
	h := inst.handle
	if h == 0 {
		return
	}
	inst.handle = 0
	rt.objects.Remove(h)
}
