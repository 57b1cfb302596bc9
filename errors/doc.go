// Package errors provides structured error types for the classy object runtime.
//
// Errors are categorized by Phase (where in the object lifecycle the error
// occurred) and Kind (error category). The Error type carries the member path
// (class, interface, member), Go/WIT type names and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
//		Path("Car", "move", "speed").
//		GoType("string").
//		WitType("s32").
//		Detail("cannot convert argument").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Collision("Car", "position", "Vehicle")
//	err := errors.DepthExceeded(errors.PhaseConstruct, "Deep", 10, 9)
//
// Failures that callers are expected to check after Construct and StartAsync
// match the exported sentinels:
//
//	if errors.Is(err, errors.ErrAllocation) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
