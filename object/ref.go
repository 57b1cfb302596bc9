package object

import (
	"github.com/wippyai/classy/errors"
)

// Ref is an instance seen as one of its ancestor classes. Only members
// visible at that class are reachable, but calls still dispatch to the
// instance's most derived bodies.
type Ref struct {
	inst  *Instance
	class *Class
}

// As returns inst viewed as class, which must be inst's class or an ancestor.
func (inst *Instance) As(class *Class) (Ref, error) {
	if err := inst.usable(errors.PhaseView); err != nil {
		return Ref{}, err
	}
	if class == nil || !inst.class.IsSubclassOf(class) {
		name := "<nil>"
		if class != nil {
			name = class.Name()
		}
		return Ref{}, errors.New(errors.PhaseView, errors.KindTypeMismatch).
			Path(inst.class.Name()).
			Detail("not a %s", name).
			Build()
	}
	return Ref{inst: inst, class: class}, nil
}

// Instance returns the referenced object.
func (r Ref) Instance() *Instance { return r.inst }

// Class returns the class the object is seen as.
func (r Ref) Class() *Class { return r.class }

// Call invokes a method visible at the reference's class.
func (r Ref) Call(method string, args ...any) (any, error) {
	if r.inst == nil {
		return nil, errors.InvalidInput(errors.PhaseDispatch, "nil reference")
	}
	if err := r.inst.usable(errors.PhaseDispatch); err != nil {
		return nil, err
	}
	slot, ok := r.class.layout.Method(method)
	if !ok {
		return nil, errors.NotFound(errors.PhaseDispatch, "method", r.class.Name()+"."+method)
	}
	return r.inst.invoke(slot, args)
}

// Field returns the cell of a field visible at the reference's class, or nil.
func (r Ref) Field(name string) *Field {
	if r.inst == nil {
		return nil
	}
	if _, ok := r.class.layout.Field(name); !ok {
		return nil
	}
	return r.inst.Field(name)
}

// Raise raises an event visible at the reference's class.
func (r Ref) Raise(event string, args ...any) error {
	if r.inst == nil {
		return errors.InvalidInput(errors.PhaseEvent, "nil reference")
	}
	if _, ok := r.class.layout.Event(event); !ok {
		return errors.NotFound(errors.PhaseEvent, "event", r.class.Name()+"."+event)
	}
	return r.inst.Raise(event, args...)
}

// View returns an interface view, provided the interface is implemented at
// the reference's class.
func (r Ref) View(name string) (View, error) {
	if r.inst == nil {
		return View{}, errors.InvalidInput(errors.PhaseView, "nil reference")
	}
	if !r.class.layout.Implements(name) {
		return View{}, errors.NotFound(errors.PhaseView, "interface", r.class.Name()+"."+name)
	}
	return r.inst.View(name)
}
