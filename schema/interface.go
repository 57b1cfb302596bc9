package schema

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/errors"
)

// Interface is an immutable structural interface descriptor.
// It names members an implementing class must declare or inherit.
type Interface struct {
	name    string
	fields  []Field
	events  []Event
	methods []Method
}

// Name returns the interface name.
func (i *Interface) Name() string { return i.name }

// Fields returns the required fields.
func (i *Interface) Fields() []Field {
	return append([]Field(nil), i.fields...)
}

// Events returns the required events.
func (i *Interface) Events() []Event {
	out := make([]Event, len(i.events))
	for n, e := range i.events {
		out[n] = e.clone()
	}
	return out
}

// Methods returns the required methods.
func (i *Interface) Methods() []Method {
	out := make([]Method, len(i.methods))
	for n, m := range i.methods {
		out[n] = m
		out[n].Sig = m.Sig.clone()
	}
	return out
}

func (i *Interface) String() string { return i.name }

// InterfaceBuilder assembles an interface descriptor.
type InterfaceBuilder struct {
	i Interface
}

// NewInterface starts an interface descriptor.
func NewInterface(name string) *InterfaceBuilder {
	return &InterfaceBuilder{i: Interface{name: name}}
}

// Field requires a data member.
func (b *InterfaceBuilder) Field(name string, t wit.Type) *InterfaceBuilder {
	b.i.fields = append(b.i.fields, Field{Name: name, Type: t})
	return b
}

// Event requires an event.
func (b *InterfaceBuilder) Event(name string, params ...wit.Type) *InterfaceBuilder {
	b.i.events = append(b.i.events, Event{Name: name, Params: params})
	return b
}

// Method requires a method with the given signature.
func (b *InterfaceBuilder) Method(name string, result wit.Type, params ...wit.Type) *InterfaceBuilder {
	b.i.methods = append(b.i.methods, Method{
		Name: name,
		Kind: KindNew,
		Sig:  Signature{Result: result, Params: params},
	})
	return b
}

// Async requires an asynchronous method.
func (b *InterfaceBuilder) Async(name string) *InterfaceBuilder {
	b.i.methods = append(b.i.methods, Method{Name: name, Kind: KindAsync})
	return b
}

// Build validates the declaration and returns the descriptor.
func (b *InterfaceBuilder) Build() (*Interface, error) {
	if b.i.name == "" {
		return nil, errors.InvalidInput(errors.PhaseDeclare, "interface name is empty")
	}
	if err := checkMembers(b.i.name, b.i.fields, b.i.events, b.i.methods); err != nil {
		return nil, err
	}
	i := Interface{name: b.i.name}
	i.fields = append([]Field(nil), b.i.fields...)
	for _, e := range b.i.events {
		i.events = append(i.events, e.clone())
	}
	for _, m := range b.i.methods {
		m.Sig = m.Sig.clone()
		i.methods = append(i.methods, m)
	}
	return &i, nil
}

// MustBuild is Build for package-level descriptors; it panics on error.
func (b *InterfaceBuilder) MustBuild() *Interface {
	i, err := b.Build()
	if err != nil {
		panic(err)
	}
	return i
}
