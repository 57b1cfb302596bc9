package layout

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/internal/abi"
	"github.com/wippyai/classy/schema"
)

// DefaultMaxDepth bounds the ancestor chain, root sentinel included.
const DefaultMaxDepth = 9

// Options tunes composition.
type Options struct {
	// Calc computes field sizes. Nil uses a fresh Calculator.
	Calc *Calculator

	// MaxDepth rejects longer chains when positive.
	MaxDepth int
}

// FieldSlot is one field of the flattened layout.
type FieldSlot struct {
	Type   wit.Type
	Owner  *schema.Class
	Name   string
	Index  int
	Offset uint32
	Size   uint32
	Align  uint32
}

// EventSlot is one event of the flattened layout.
type EventSlot struct {
	Owner  *schema.Class
	Name   string
	Params []wit.Type
	Index  int
}

// MethodSlot is one method of the flattened layout.
type MethodSlot struct {
	Introduced *schema.Class
	Name       string
	// Implementors lists the introducing class and every overriding class, root-first.
	Implementors []*schema.Class
	Sig          schema.Signature
	Index        int
	Async        bool
}

// Implementor returns the most-derived class providing the method body.
func (m MethodSlot) Implementor() *schema.Class {
	return m.Implementors[len(m.Implementors)-1]
}

// InterfaceSlot is the accessor plan of one implemented interface:
// indexes into the layout's fields, events and methods, in interface order.
type InterfaceSlot struct {
	Interface *schema.Interface
	Owner     *schema.Class
	Fields    []int
	Events    []int
	Methods   []int
}

// Layout is the composed, read-only layout of a class.
// Slices are shared and must not be modified.
type Layout struct {
	Class      *schema.Class
	Chain      []*schema.Class
	Fields     []FieldSlot
	Events     []EventSlot
	Methods    []MethodSlot
	Interfaces []InterfaceSlot
	Size       uint32
	Align      uint32

	fieldIdx  map[string]int
	eventIdx  map[string]int
	methodIdx map[string]int
	ifaceIdx  map[string]int
	offsetIdx map[uint32]int
}

// Compose flattens the ancestor chain of class into a Layout.
func Compose(class *schema.Class, opts Options) (*Layout, error) {
	if class == nil {
		return nil, errors.InvalidInput(errors.PhaseDeclare, "nil class descriptor")
	}
	depth := class.Depth()
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return nil, errors.DepthExceeded(errors.PhaseDeclare, class.Name(), depth, opts.MaxDepth)
	}
	calc := opts.Calc
	if calc == nil {
		calc = NewCalculator()
	}

	l := &Layout{
		Class:     class,
		Chain:     class.Chain(),
		Align:     1,
		fieldIdx:  make(map[string]int),
		eventIdx:  make(map[string]int),
		methodIdx: make(map[string]int),
		ifaceIdx:  make(map[string]int),
		offsetIdx: make(map[uint32]int),
	}

	owners := make(map[string]*schema.Class)
	offset := uint32(0)

	for _, level := range l.Chain {
		// the base record is embedded whole, padded to its alignment
		offset = abi.AlignTo(offset, l.Align)

		for _, f := range level.Fields() {
			if prev, ok := owners[f.Name]; ok {
				return nil, errors.Collision(level.Name(), f.Name, prev.Name())
			}
			owners[f.Name] = level

			info := calc.Calculate(f.Type)
			align := max(info.Align, 1)
			offset = abi.AlignTo(offset, align)
			slot := FieldSlot{
				Index:  len(l.Fields),
				Name:   f.Name,
				Type:   f.Type,
				Owner:  level,
				Offset: offset,
				Size:   info.Size,
				Align:  align,
			}
			l.fieldIdx[f.Name] = slot.Index
			if _, taken := l.offsetIdx[offset]; !taken {
				l.offsetIdx[offset] = slot.Index
			}
			l.Fields = append(l.Fields, slot)
			l.Align = max(l.Align, align)
			offset += info.Size
		}

		for _, e := range level.Events() {
			if prev, ok := owners[e.Name]; ok {
				return nil, errors.Collision(level.Name(), e.Name, prev.Name())
			}
			owners[e.Name] = level
			l.eventIdx[e.Name] = len(l.Events)
			l.Events = append(l.Events, EventSlot{
				Index:  len(l.Events),
				Name:   e.Name,
				Params: e.Params,
				Owner:  level,
			})
		}

		for _, m := range level.Methods() {
			if err := l.addMethod(level, m, owners); err != nil {
				return nil, err
			}
		}

		for _, iface := range level.Interfaces() {
			if err := l.addInterface(level, iface); err != nil {
				return nil, err
			}
		}
	}

	l.Size = abi.AlignTo(offset, l.Align)
	return l, nil
}

func (l *Layout) addMethod(level *schema.Class, m schema.Method, owners map[string]*schema.Class) error {
	if !m.Kind.IsOverride() {
		if prev, ok := owners[m.Name]; ok {
			return errors.Collision(level.Name(), m.Name, prev.Name())
		}
		owners[m.Name] = level
		l.methodIdx[m.Name] = len(l.Methods)
		l.Methods = append(l.Methods, MethodSlot{
			Index:        len(l.Methods),
			Name:         m.Name,
			Sig:          m.Sig,
			Async:        m.Kind.IsAsync(),
			Introduced:   level,
			Implementors: []*schema.Class{level},
		})
		return nil
	}

	idx, ok := l.methodIdx[m.Name]
	if !ok {
		if prev, taken := owners[m.Name]; taken {
			return errors.BadOverride(level.Name(), m.Name, "overrides a non-method member of "+prev.Name())
		}
		return errors.BadOverride(level.Name(), m.Name, "no inherited method to override")
	}
	slot := &l.Methods[idx]
	if slot.Implementor() == level {
		return errors.Collision(level.Name(), m.Name, level.Name())
	}
	if slot.Async != m.Kind.IsAsync() {
		if slot.Async {
			return errors.BadOverride(level.Name(), m.Name, "async method needs an async override")
		}
		return errors.BadOverride(level.Name(), m.Name, "async override of a synchronous method")
	}
	if !slot.Sig.Equal(m.Sig) {
		return errors.BadOverride(level.Name(), m.Name,
			"signature "+m.Sig.String()+" does not match inherited "+slot.Sig.String())
	}
	slot.Implementors = append(append([]*schema.Class(nil), slot.Implementors...), level)
	return nil
}

func (l *Layout) addInterface(level *schema.Class, iface *schema.Interface) error {
	if prev, ok := l.ifaceIdx[iface.Name()]; ok {
		return errors.Collision(level.Name(), iface.Name(), l.Interfaces[prev].Owner.Name())
	}

	slot := InterfaceSlot{Interface: iface, Owner: level}

	for _, f := range iface.Fields() {
		idx, ok := l.fieldIdx[f.Name]
		if !ok {
			return errors.MissingMember(level.Name(), iface.Name(), f.Name)
		}
		if have := l.Fields[idx].Type; !abi.Same(have, f.Type) {
			return errors.New(errors.PhaseDeclare, errors.KindMissingMember).
				Path(level.Name(), iface.Name(), f.Name).
				WitType(abi.Name(f.Type)).
				Detail("declared as %s", abi.Name(have)).
				Build()
		}
		slot.Fields = append(slot.Fields, idx)
	}

	for _, e := range iface.Events() {
		idx, ok := l.eventIdx[e.Name]
		if !ok {
			return errors.MissingMember(level.Name(), iface.Name(), e.Name)
		}
		if !abi.SameList(l.Events[idx].Params, e.Params) {
			return errors.New(errors.PhaseDeclare, errors.KindMissingMember).
				Path(level.Name(), iface.Name(), e.Name).
				Detail("event parameters differ").
				Build()
		}
		slot.Events = append(slot.Events, idx)
	}

	for _, m := range iface.Methods() {
		idx, ok := l.methodIdx[m.Name]
		if !ok {
			return errors.MissingMember(level.Name(), iface.Name(), m.Name)
		}
		have := l.Methods[idx]
		if have.Async != m.Kind.IsAsync() || !have.Sig.Equal(m.Sig) {
			return errors.New(errors.PhaseDeclare, errors.KindMissingMember).
				Path(level.Name(), iface.Name(), m.Name).
				Detail("requires %s, declared %s", m.Sig.String(), have.Sig.String()).
				Build()
		}
		slot.Methods = append(slot.Methods, idx)
	}

	l.ifaceIdx[iface.Name()] = len(l.Interfaces)
	l.Interfaces = append(l.Interfaces, slot)
	return nil
}

// Depth returns the chain length, root sentinel included.
func (l *Layout) Depth() int { return len(l.Chain) }

// Field returns the slot of a field by name.
func (l *Layout) Field(name string) (FieldSlot, bool) {
	idx, ok := l.fieldIdx[name]
	if !ok {
		return FieldSlot{}, false
	}
	return l.Fields[idx], true
}

// FieldAt returns the field starting at a byte offset.
// Zero-sized fields sharing an offset resolve to the first one.
func (l *Layout) FieldAt(offset uint32) (FieldSlot, bool) {
	idx, ok := l.offsetIdx[offset]
	if !ok {
		return FieldSlot{}, false
	}
	return l.Fields[idx], true
}

// Event returns the slot of an event by name.
func (l *Layout) Event(name string) (EventSlot, bool) {
	idx, ok := l.eventIdx[name]
	if !ok {
		return EventSlot{}, false
	}
	return l.Events[idx], true
}

// Method returns the slot of a method by name.
func (l *Layout) Method(name string) (MethodSlot, bool) {
	idx, ok := l.methodIdx[name]
	if !ok {
		return MethodSlot{}, false
	}
	return l.Methods[idx], true
}

// Interface returns the accessor plan of an implemented interface.
func (l *Layout) Interface(name string) (InterfaceSlot, bool) {
	idx, ok := l.ifaceIdx[name]
	if !ok {
		return InterfaceSlot{}, false
	}
	return l.Interfaces[idx], true
}

// Implements reports whether the class or an ancestor lists the interface.
func (l *Layout) Implements(name string) bool {
	_, ok := l.ifaceIdx[name]
	return ok
}
