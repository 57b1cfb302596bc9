package abi

import (
	"go.bytecodealliance.org/wit"
)

// Zero returns the Go zero value stored in a freshly constructed field of type t.
// Non-primitive types hold nil until assigned.
func Zero(t wit.Type) any {
	switch t.(type) {
	case wit.Bool:
		return false
	case wit.S8:
		return int8(0)
	case wit.S16:
		return int16(0)
	case wit.S32:
		return int32(0)
	case wit.S64:
		return int64(0)
	case wit.U8:
		return uint8(0)
	case wit.U16:
		return uint16(0)
	case wit.U32:
		return uint32(0)
	case wit.U64:
		return uint64(0)
	case wit.F32:
		return float32(0)
	case wit.F64:
		return float64(0)
	case wit.Char:
		return rune(0)
	case wit.String:
		return ""
	default:
		return nil
	}
}

// Name returns the WIT spelling of t, or "none" for a nil type.
func Name(t wit.Type) string {
	switch typ := t.(type) {
	case nil:
		return "none"
	case wit.Bool:
		return "bool"
	case wit.S8:
		return "s8"
	case wit.S16:
		return "s16"
	case wit.S32:
		return "s32"
	case wit.S64:
		return "s64"
	case wit.U8:
		return "u8"
	case wit.U16:
		return "u16"
	case wit.U32:
		return "u32"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if typ.Name != nil {
			return *typ.Name
		}
		return "typedef"
	default:
		return TypeName(t)
	}
}

// Same reports whether a and b denote the same type.
// Primitives compare by kind, type definitions by identity.
func Same(a, b wit.Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if da, ok := a.(*wit.TypeDef); ok {
		db, ok := b.(*wit.TypeDef)
		return ok && da == db
	}
	return Name(a) == Name(b)
}

// SameList reports whether two parameter lists match element-wise.
func SameList(a, b []wit.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Same(a[i], b[i]) {
			return false
		}
	}
	return true
}

// IsPrimitive reports whether t has a fixed Go representation.
func IsPrimitive(t wit.Type) bool {
	return Zero(t) != nil
}
