package object

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/internal/abi"
	"github.com/wippyai/classy/layout"
)

// Field is the storage cell of one data member. Its address is stable for
// the life of the object, so views alias it directly.
// Access is not synchronized; guard shared fields with the instance lock.
type Field struct {
	value any
	slot  *layout.FieldSlot
}

// Name returns the field name.
func (f *Field) Name() string { return f.slot.Name }

// Type returns the declared type.
func (f *Field) Type() wit.Type { return f.slot.Type }

// Offset returns the field's byte offset in the composed layout.
func (f *Field) Offset() uint32 { return f.slot.Offset }

// Get returns the current value.
func (f *Field) Get() any { return f.value }

// Set stores v converted to the declared type.
func (f *Field) Set(v any) error {
	cv, ok := abi.Coerce(f.slot.Type, v)
	if !ok {
		return errors.TypeMismatch(errors.PhaseDispatch, []string{f.slot.Owner.Name(), f.slot.Name},
			abi.TypeName(v), abi.Name(f.slot.Type))
	}
	f.value = cv
	return nil
}

// Int returns an integer field widened to int64. Other types yield 0.
func (f *Field) Int() int64 {
	n, _ := abi.CoerceToInt64(f.value)
	return n
}

// Uint returns an unsigned field widened to uint64. Other types yield 0.
func (f *Field) Uint() uint64 {
	n, _ := abi.CoerceToUint64(f.value)
	return n
}

// Float returns a float field widened to float64. Other types yield 0.
func (f *Field) Float() float64 {
	switch v := f.value.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

// Bool returns a bool field. Other types yield false.
func (f *Field) Bool() bool {
	b, _ := f.value.(bool)
	return b
}

// Text returns a string field. Other types yield "".
func (f *Field) Text() string {
	s, _ := f.value.(string)
	return s
}

// Add increments an integer field by delta and returns the new value.
func (f *Field) Add(delta int64) (int64, error) {
	n := f.Int() + delta
	if err := f.Set(n); err != nil {
		return 0, err
	}
	return n, nil
}

func (f *Field) reset() {
	f.value = abi.Zero(f.slot.Type)
}
