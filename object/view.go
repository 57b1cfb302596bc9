package object

import (
	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/schema"
)

// View is an interface-shaped alias of an object. Its field cells and event
// slots are the object's own, so writes through either side are visible to
// both. Views are cheap to build and copying one is shallow.
type View struct {
	// Owner is the object behind the view.
	Owner   *Instance
	iface   *schema.Interface
	fields  []*Field
	events  []*EventSlot
	methods []int
}

// View builds a view of the object as an implemented interface.
func (inst *Instance) View(name string) (View, error) {
	if err := inst.usable(errors.PhaseView); err != nil {
		return View{}, err
	}
	plan, ok := inst.class.layout.Interface(name)
	if !ok {
		return View{}, errors.NotFound(errors.PhaseView, "interface", inst.class.Name()+"."+name)
	}

	v := View{
		Owner:   inst,
		iface:   plan.Interface,
		fields:  make([]*Field, len(plan.Fields)),
		events:  make([]*EventSlot, len(plan.Events)),
		methods: plan.Methods,
	}
	for i, idx := range plan.Fields {
		v.fields[i] = &inst.fields[idx]
	}
	for i, idx := range plan.Events {
		v.events[i] = &inst.events[idx]
	}
	return v, nil
}

// Interface returns the viewed interface descriptor.
func (v View) Interface() *schema.Interface { return v.iface }

// Fields returns the aliased field cells in interface order.
func (v View) Fields() []*Field {
	return append([]*Field(nil), v.fields...)
}

// Field returns the aliased cell of an interface field, or nil.
func (v View) Field(name string) *Field {
	for _, f := range v.fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// Event returns the aliased slot of an interface event, or nil.
func (v View) Event(name string) *EventSlot {
	for _, e := range v.events {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// On installs h on an interface event.
func (v View) On(event string, h Handler) error {
	s := v.Event(event)
	if s == nil {
		return errors.NotFound(errors.PhaseView, "event", v.name()+"."+event)
	}
	if err := v.Owner.usable(errors.PhaseEvent); err != nil {
		return err
	}
	s.Set(h)
	return nil
}

// Raise raises an interface event on the owner.
func (v View) Raise(event string, args ...any) error {
	s := v.Event(event)
	if s == nil {
		return errors.NotFound(errors.PhaseView, "event", v.name()+"."+event)
	}
	if err := v.Owner.usable(errors.PhaseEvent); err != nil {
		return err
	}
	return s.raise(v.Owner, args)
}

// Call invokes an interface method on the owner's bound slot.
func (v View) Call(method string, args ...any) (any, error) {
	if v.Owner == nil {
		return nil, errors.InvalidInput(errors.PhaseView, "empty view")
	}
	if err := v.Owner.usable(errors.PhaseDispatch); err != nil {
		return nil, err
	}
	l := v.Owner.class.layout
	for _, idx := range v.methods {
		if l.Methods[idx].Name == method {
			return v.Owner.invoke(l.Methods[idx], args)
		}
	}
	return nil, errors.NotFound(errors.PhaseView, "method", v.name()+"."+method)
}

func (v View) name() string {
	if v.iface == nil {
		return "<empty>"
	}
	return v.iface.Name()
}
