package object

import (
	"go.uber.org/zap"
)

// chain returns the defined classes from the root-most to c.
func (c *Class) chain() []*Class {
	n := 0
	for cur := c; cur != nil; cur = cur.base {
		n++
	}
	out := make([]*Class, n)
	for cur := c; cur != nil; cur = cur.base {
		n--
		out[n] = cur
	}
	return out
}

// structure lays out inst for class: cells, event slots and method
// bindings, one level at a time from the root. Each level writes the bodies
// it declares, so the most derived body ends up in every slot.
func (rt *Runtime) structure(inst *Instance, class *Class) {
	l := class.layout
	inst.class = class
	inst.fields = make([]Field, len(l.Fields))
	inst.events = make([]EventSlot, len(l.Events))
	inst.methods = make([]binding, len(l.Methods))

	for _, level := range class.chain() {
		ll := level.layout
		for i := range ll.Fields {
			// base levels index the same prefix of the derived layout
			inst.fields[i].slot = &l.Fields[i]
			inst.fields[i].reset()
		}
		for i := range ll.Events {
			inst.events[i].slot = &l.Events[i]
			inst.events[i].Set(nil)
		}
		for _, idx := range level.own {
			name := l.Methods[idx].Name
			inst.methods[idx] = binding{
				fn:    level.impl.Methods[name],
				async: level.impl.Async[name],
				owner: level,
			}
		}
	}

	if ce := rt.logger.Check(zap.DebugLevel, "slots bound"); ce != nil {
		ce.Write(
			zap.String("class", class.Name()),
			zap.Int("fields", len(inst.fields)),
			zap.Int("methods", len(inst.methods)),
			zap.Int("events", len(inst.events)))
	}
}
