package schema

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/errors"
)

// Object is the root sentinel. It declares nothing and has no base.
var Object = &Class{name: RootName}

// Class is an immutable class descriptor.
type Class struct {
	base       *Class
	name       string
	interfaces []*Interface
	fields     []Field
	events     []Event
	methods    []Method
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Base returns the immediate base, or nil for the root sentinel.
func (c *Class) Base() *Class { return c.base }

// IsRoot reports whether c is the root sentinel.
func (c *Class) IsRoot() bool { return c == Object }

// Interfaces returns the interfaces c declares itself.
func (c *Class) Interfaces() []*Interface {
	return append([]*Interface(nil), c.interfaces...)
}

// Fields returns the fields c declares itself.
func (c *Class) Fields() []Field {
	return append([]Field(nil), c.fields...)
}

// Events returns the events c declares itself.
func (c *Class) Events() []Event {
	out := make([]Event, len(c.events))
	for i, e := range c.events {
		out[i] = e.clone()
	}
	return out
}

// Methods returns the methods c declares or overrides itself.
func (c *Class) Methods() []Method {
	out := make([]Method, len(c.methods))
	for i, m := range c.methods {
		out[i] = m
		out[i].Sig = m.Sig.clone()
	}
	return out
}

// Chain returns the ancestor chain root-first, ending with c.
func (c *Class) Chain() []*Class {
	var rev []*Class
	for cur := c; cur != nil; cur = cur.base {
		rev = append(rev, cur)
	}
	chain := make([]*Class, len(rev))
	for i, cls := range rev {
		chain[len(rev)-1-i] = cls
	}
	return chain
}

// Depth counts the classes in the chain including the root sentinel.
func (c *Class) Depth() int {
	depth := 0
	for cur := c; cur != nil; cur = cur.base {
		depth++
	}
	return depth
}

// IsSubclassOf reports whether other appears in c's chain (c included).
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

func (c *Class) String() string { return c.name }

// ClassBuilder assembles a class descriptor.
type ClassBuilder struct {
	err error
	c   Class
}

// NewClass starts a class descriptor deriving from Object.
func NewClass(name string) *ClassBuilder {
	return &ClassBuilder{c: Class{name: name, base: Object}}
}

// Extends sets the immediate base class.
func (b *ClassBuilder) Extends(base *Class) *ClassBuilder {
	if base == nil {
		b.fail(errors.InvalidInput(errors.PhaseDeclare, "nil base class for "+b.c.name))
		return b
	}
	b.c.base = base
	return b
}

// Implements adds interfaces the class promises to satisfy.
func (b *ClassBuilder) Implements(ifaces ...*Interface) *ClassBuilder {
	for _, i := range ifaces {
		if i == nil {
			b.fail(errors.InvalidInput(errors.PhaseDeclare, "nil interface for "+b.c.name))
			continue
		}
		b.c.interfaces = append(b.c.interfaces, i)
	}
	return b
}

// Field declares a data member.
func (b *ClassBuilder) Field(name string, t wit.Type) *ClassBuilder {
	b.c.fields = append(b.c.fields, Field{Name: name, Type: t})
	return b
}

// Event declares an event whose handlers receive params.
func (b *ClassBuilder) Event(name string, params ...wit.Type) *ClassBuilder {
	b.c.events = append(b.c.events, Event{Name: name, Params: params})
	return b
}

// Method declares a new method. A nil result means the method returns nothing.
func (b *ClassBuilder) Method(name string, result wit.Type, params ...wit.Type) *ClassBuilder {
	return b.method(name, KindNew, result, params)
}

// Override replaces an inherited method; the signature must match exactly.
func (b *ClassBuilder) Override(name string, result wit.Type, params ...wit.Type) *ClassBuilder {
	return b.method(name, KindOverride, result, params)
}

// Async declares a new asynchronous method taking one opaque argument.
func (b *ClassBuilder) Async(name string) *ClassBuilder {
	return b.method(name, KindAsync, nil, nil)
}

// OverrideAsync replaces an inherited asynchronous method.
func (b *ClassBuilder) OverrideAsync(name string) *ClassBuilder {
	return b.method(name, KindAsyncOverride, nil, nil)
}

func (b *ClassBuilder) method(name string, kind MethodKind, result wit.Type, params []wit.Type) *ClassBuilder {
	b.c.methods = append(b.c.methods, Method{
		Name: name,
		Kind: kind,
		Sig:  Signature{Result: result, Params: params},
	})
	return b
}

func (b *ClassBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build validates the declaration and returns the descriptor.
// Only the class's own declarations are checked here; chain rules are
// enforced by layout composition.
func (b *ClassBuilder) Build() (*Class, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.c.name == "" {
		return nil, errors.InvalidInput(errors.PhaseDeclare, "class name is empty")
	}
	if b.c.name == RootName {
		return nil, errors.InvalidInput(errors.PhaseDeclare, "class name "+RootName+" is reserved")
	}
	if err := checkMembers(b.c.name, b.c.fields, b.c.events, b.c.methods); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(b.c.interfaces))
	for _, i := range b.c.interfaces {
		if seen[i.name] {
			return nil, errors.Collision(b.c.name, i.name, b.c.name)
		}
		seen[i.name] = true
	}

	c := b.c
	c.interfaces = append([]*Interface(nil), b.c.interfaces...)
	c.fields = append([]Field(nil), b.c.fields...)
	c.events = make([]Event, len(b.c.events))
	for i, e := range b.c.events {
		c.events[i] = e.clone()
	}
	c.methods = make([]Method, len(b.c.methods))
	for i, m := range b.c.methods {
		c.methods[i] = m
		c.methods[i].Sig = m.Sig.clone()
	}
	return &c, nil
}

// MustBuild is Build for package-level descriptors; it panics on error.
func (b *ClassBuilder) MustBuild() *Class {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// checkMembers rejects empty and duplicate names inside one declaration.
// Fields, events and methods share a namespace.
func checkMembers(owner string, fields []Field, events []Event, methods []Method) error {
	seen := make(map[string]bool, len(fields)+len(events)+len(methods))
	add := func(name string) error {
		if name == "" {
			return errors.InvalidInput(errors.PhaseDeclare, "empty member name in "+owner)
		}
		if seen[name] {
			return errors.Collision(owner, name, owner)
		}
		seen[name] = true
		return nil
	}
	for _, f := range fields {
		if err := add(f.Name); err != nil {
			return err
		}
	}
	for _, e := range events {
		if err := add(e.Name); err != nil {
			return err
		}
	}
	for _, m := range methods {
		if err := add(m.Name); err != nil {
			return err
		}
	}
	return nil
}
