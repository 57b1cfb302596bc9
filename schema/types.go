package schema

import (
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/internal/abi"
)

// RootName is the name of the root sentinel class.
const RootName = "OBJECT"

// MethodKind tells how a method declaration relates to the ancestor chain.
type MethodKind uint8

const (
	// KindNew introduces a method slot.
	KindNew MethodKind = iota
	// KindOverride replaces the implementation of an inherited slot.
	KindOverride
	// KindAsync introduces a slot whose body runs on its own goroutine.
	KindAsync
	// KindAsyncOverride replaces the implementation of an inherited async slot.
	KindAsyncOverride
)

// IsOverride reports whether the kind replaces an inherited slot.
func (k MethodKind) IsOverride() bool { return k == KindOverride || k == KindAsyncOverride }

// IsAsync reports whether the kind declares an asynchronous body.
func (k MethodKind) IsAsync() bool { return k == KindAsync || k == KindAsyncOverride }

func (k MethodKind) String() string {
	switch k {
	case KindNew:
		return "new"
	case KindOverride:
		return "override"
	case KindAsync:
		return "async"
	case KindAsyncOverride:
		return "override async"
	default:
		return "unknown"
	}
}

// Signature is the parameter list and optional result of a method.
type Signature struct {
	Result wit.Type
	Params []wit.Type
}

// Equal reports whether two signatures have identical parameter and result types.
func (s Signature) Equal(o Signature) bool {
	return abi.Same(s.Result, o.Result) && abi.SameList(s.Params, o.Params)
}

func (s Signature) String() string {
	return "(" + typeList(s.Params) + ") -> " + abi.Name(s.Result)
}

func (s Signature) clone() Signature {
	return Signature{Result: s.Result, Params: append([]wit.Type(nil), s.Params...)}
}

// Field is a declared data member.
type Field struct {
	Type wit.Type
	Name string
}

// Event is a declared event with the parameter types its handler receives.
type Event struct {
	Name   string
	Params []wit.Type
}

func (e Event) clone() Event {
	return Event{Name: e.Name, Params: append([]wit.Type(nil), e.Params...)}
}

// Method is a declared method.
// Async methods take one opaque argument and return no value.
type Method struct {
	Name string
	Sig  Signature
	Kind MethodKind
}

func (m Method) String() string {
	return m.Kind.String() + " " + m.Name + m.Sig.String()
}

func typeList(ts []wit.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = abi.Name(t)
	}
	return strings.Join(names, ", ")
}

// Source resolves class descriptors by name.
type Source interface {
	Lookup(name string) (*Class, bool)
}
