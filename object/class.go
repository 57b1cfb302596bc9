package object

import (
	"github.com/wippyai/classy/async"
	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/layout"
	"github.com/wippyai/classy/schema"
)

// MethodFunc is a synchronous method body. Arguments arrive coerced to the
// declared parameter types.
type MethodFunc func(self *Instance, args ...any) (any, error)

// AsyncFunc is an asynchronous method body running on its own goroutine.
// The task carries the opaque argument and the cooperative stop flag.
type AsyncFunc func(self *Instance, task *async.Task) error

// CtorFunc is a user constructor.
type CtorFunc func(c *Ctor, args ...any) error

// DtorFunc is a user destructor. isBase is true when it runs on behalf of a
// derived class.
type DtorFunc func(self *Instance, isBase bool)

// Impl supplies the bodies for the members one class declares itself.
type Impl struct {
	Ctor    CtorFunc
	Dtor    DtorFunc
	Methods map[string]MethodFunc
	Async   map[string]AsyncFunc
}

// Class is a defined class: descriptor, composed layout and bodies.
type Class struct {
	rt     *Runtime
	desc   *schema.Class
	layout *layout.Layout
	base   *Class
	impl   Impl
	// own lists the method slot indexes this level binds, in declaration order.
	own []int
	id  uint32
}

// Name returns the class name.
func (c *Class) Name() string { return c.desc.Name() }

// Descriptor returns the class descriptor.
func (c *Class) Descriptor() *schema.Class { return c.desc }

// Layout returns the composed layout.
func (c *Class) Layout() *layout.Layout { return c.layout }

// Base returns the defined base class, or nil when the base is the root.
func (c *Class) Base() *Class { return c.base }

// ID returns the class's heap type ID.
func (c *Class) ID() uint32 { return c.id }

// Runtime returns the runtime the class was defined in.
func (c *Class) Runtime() *Runtime { return c.rt }

// Symbol qualifies a member name with the configured prefix and the class
// name. An empty member yields the class symbol.
func (c *Class) Symbol(member string) string {
	if member == "" {
		return c.rt.cfg.SymbolPrefix + c.Name()
	}
	return c.rt.cfg.SymbolPrefix + c.Name() + "_" + member
}

// IsSubclassOf reports whether other is c or one of its ancestors.
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

func (c *Class) String() string { return c.Name() }

// checkImpl matches bodies against the methods the class declares itself.
func (c *Class) checkImpl() error {
	asyncByName := make(map[string]bool)
	for _, m := range c.desc.Methods() {
		asyncByName[m.Name] = m.Kind.IsAsync()
		if m.Kind.IsAsync() {
			if c.impl.Async[m.Name] == nil {
				return errors.NotImplemented(c.Name(), m.Name)
			}
			continue
		}
		if c.impl.Methods[m.Name] == nil {
			return errors.NotImplemented(c.Name(), m.Name)
		}
	}
	for name := range c.impl.Methods {
		if isAsync, ok := asyncByName[name]; !ok || isAsync {
			return errors.New(errors.PhaseDeclare, errors.KindInvalidInput).
				Path(c.Name(), name).
				Detail("body for undeclared synchronous method").
				Build()
		}
	}
	for name := range c.impl.Async {
		if isAsync, ok := asyncByName[name]; !ok || !isAsync {
			return errors.New(errors.PhaseDeclare, errors.KindInvalidInput).
				Path(c.Name(), name).
				Detail("body for undeclared asynchronous method").
				Build()
		}
	}
	return nil
}

// plan records which slots this level writes during binding.
func (c *Class) plan() {
	for _, m := range c.desc.Methods() {
		slot, _ := c.layout.Method(m.Name)
		c.own = append(c.own, slot.Index)
	}
}
