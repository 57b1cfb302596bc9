package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the object lifecycle the error occurred
type Phase string

const (
	PhaseDeclare   Phase = "declare"   // descriptor building and layout composition
	PhaseConstruct Phase = "construct" // allocation and constructor chain
	PhaseDestruct  Phase = "destruct"  // destructor chain and release
	PhaseDispatch  Phase = "dispatch"  // method calls
	PhaseEvent     Phase = "event"     // registration and raising
	PhaseView      Phase = "view"      // interface views and ancestor refs
	PhaseAsync     Phase = "async"     // asynchronous methods
	PhaseRuntime   Phase = "runtime"   // runtime configuration and registry
	PhaseLoad      Phase = "load"      // external method bodies
)

// Kind categorizes the error
type Kind string

const (
	KindCollision      Kind = "collision"
	KindMissingMember  Kind = "missing_member"
	KindBadOverride    Kind = "bad_override"
	KindDepthExceeded  Kind = "depth_exceeded"
	KindAllocation     Kind = "allocation"
	KindThreadCreation Kind = "thread_creation"
	KindNotFound       Kind = "not_found"
	KindTypeMismatch   Kind = "type_mismatch"
	KindArity          Kind = "arity"
	KindNotAlive       Kind = "not_alive"
	KindInvalidInput   Kind = "invalid_input"
	KindNotImplemented Kind = "not_implemented"
	KindConstructor    Kind = "constructor"
	KindPanic          Kind = "panic"
	KindTrap           Kind = "trap"
)

// Sentinels usable with errors.Is. They match any *Error of the same phase and kind.
var (
	ErrAllocation     = &Error{Phase: PhaseConstruct, Kind: KindAllocation}
	ErrDepthExceeded  = &Error{Phase: PhaseDeclare, Kind: KindDepthExceeded}
	ErrThreadCreation = &Error{Phase: PhaseAsync, Kind: KindThreadCreation}
	ErrMissingMember  = &Error{Phase: PhaseDeclare, Kind: KindMissingMember}
	ErrCollision      = &Error{Phase: PhaseDeclare, Kind: KindCollision}
	ErrNotAlive       = &Error{Phase: PhaseDispatch, Kind: KindNotAlive}
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	WitType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	typed := e.GoType != "" || e.WitType != ""
	if typed {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.WitType != "":
			fmt.Fprintf(&b, "Go type %s, WIT type %s", e.GoType, e.WitType)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("WIT type ")
			b.WriteString(e.WitType)
		}
	}

	if e.Detail != "" {
		if typed {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Depth and allocation sentinels match regardless of phase since both
// are reported from declaration and construction.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	switch e.Kind {
	case KindDepthExceeded, KindAllocation, KindNotAlive:
		return true
	}
	return e.Phase == t.Phase
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the member path, usually class then member
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WitType sets the WIT type name
func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Collision reports a member or interface declared twice in one ancestor chain
func Collision(class, member, previousOwner string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindCollision,
		Path:   []string{class, member},
		Detail: fmt.Sprintf("already declared by %s", previousOwner),
	}
}

// MissingMember reports an interface member the class neither declares nor inherits
func MissingMember(class, iface, member string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindMissingMember,
		Path:   []string{class, iface, member},
		Detail: fmt.Sprintf("interface %s requires %q", iface, member),
	}
}

// BadOverride reports an override without a matching inherited method
func BadOverride(class, method, detail string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindBadOverride,
		Path:   []string{class, method},
		Detail: detail,
	}
}

// DepthExceeded reports an ancestor chain longer than the configured bound
func DepthExceeded(phase Phase, class string, depth, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   []string{class},
		Detail: fmt.Sprintf("inheritance depth (%d) exceeds the maximum supported limit (%d levels)", depth, limit),
		Value:  depth,
	}
}

// AllocationFailed reports that no storage could be obtained for a new object
func AllocationFailed(class string, cause error) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindAllocation,
		Path:   []string{class},
		Detail: "cannot allocate object",
		Cause:  cause,
	}
}

// ThreadCreationFailed reports that an asynchronous invocation could not be started
func ThreadCreationFailed(method string, cause error) *Error {
	return &Error{
		Phase:  PhaseAsync,
		Kind:   KindThreadCreation,
		Path:   []string{method},
		Detail: "cannot start asynchronous method",
		Cause:  cause,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, witType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		WitType: witType,
	}
}

// Arity reports a call with the wrong number of arguments
func Arity(phase Phase, path []string, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArity,
		Path:   path,
		Detail: fmt.Sprintf("got %d arguments, want %d", got, want),
		Value:  got,
	}
}

// NotAlive reports use of an object that is not constructed or already destroyed
func NotAlive(phase Phase, class string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotAlive,
		Path:   []string{class},
		Detail: "object is not alive",
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotImplemented reports a declared method without a body
func NotImplemented(class, method string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindNotImplemented,
		Path:   []string{class, method},
		Detail: "declared method has no implementation",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// ConstructorFailed wraps an error returned by a user constructor
func ConstructorFailed(class string, cause error) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindConstructor,
		Path:   []string{class},
		Detail: "constructor failed",
		Cause:  cause,
	}
}

// Panicked wraps a value recovered from a panicking body
func Panicked(phase Phase, path []string, v any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPanic,
		Path:   path,
		Detail: fmt.Sprintf("panic: %v", v),
		Value:  v,
	}
}

// Trapped reports a guest function that trapped or failed to run
func Trapped(phase Phase, export string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTrap,
		Path:   []string{export},
		Detail: "guest call failed",
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates an error for external method bodies that cannot be loaded
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
