package abi

import (
	"math"

	"go.bytecodealliance.org/wit"
)

// Coerce converts value into the Go representation of t.
// Numeric values convert when they fit the target range exactly; other
// types pass through unchanged. A nil type accepts only nil.
func Coerce(t wit.Type, value any) (any, bool) {
	switch t.(type) {
	case nil:
		return nil, value == nil
	case wit.Bool:
		v, ok := value.(bool)
		return v, ok
	case wit.String:
		v, ok := value.(string)
		return v, ok
	case wit.Char:
		r, ok := CoerceToInt64(value)
		if !ok || r > math.MaxInt32 || r < math.MinInt32 || !ValidateChar(rune(r)) {
			return nil, false
		}
		return rune(r), true
	case wit.S8:
		v, ok := coerceSigned(value, math.MinInt8, math.MaxInt8)
		return int8(v), ok
	case wit.S16:
		v, ok := coerceSigned(value, math.MinInt16, math.MaxInt16)
		return int16(v), ok
	case wit.S32:
		v, ok := coerceSigned(value, math.MinInt32, math.MaxInt32)
		return int32(v), ok
	case wit.S64:
		return CoerceToInt64(value)
	case wit.U8:
		v, ok := coerceUnsigned(value, math.MaxUint8)
		return uint8(v), ok
	case wit.U16:
		v, ok := coerceUnsigned(value, math.MaxUint16)
		return uint16(v), ok
	case wit.U32:
		v, ok := coerceUnsigned(value, math.MaxUint32)
		return uint32(v), ok
	case wit.U64:
		return CoerceToUint64(value)
	case wit.F32:
		return coerceFloat32(value)
	case wit.F64:
		return coerceFloat(value)
	default:
		return value, true
	}
}

func coerceSigned(value any, lo, hi int64) (int64, bool) {
	v, ok := CoerceToInt64(value)
	if !ok || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

func coerceUnsigned(value any, hi uint64) (uint64, bool) {
	v, ok := CoerceToUint64(value)
	if !ok || v > hi {
		return 0, false
	}
	return v, true
}

// coerceFloat32 rejects finite values beyond the f32 range.
// Infinities and NaN carry over.
func coerceFloat32(value any) (float32, bool) {
	v, ok := coerceFloat(value)
	if !ok || math.Abs(v) > math.MaxFloat32 && !math.IsInf(v, 0) {
		return 0, false
	}
	return float32(v), true
}

func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	if i, ok := CoerceToInt64(value); ok {
		return float64(i), true
	}
	return 0, false
}

// CoerceToUint64 handles any Go integer and integral floats.
func CoerceToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v <= float64(math.MaxUint64) && v == float64(uint64(v)) {
			return uint64(v), true
		}
	case float32:
		if v >= 0 && float64(v) <= float64(math.MaxUint64) && v == float32(uint64(v)) {
			return uint64(v), true
		}
	}
	return 0, false
}

// CoerceToInt64 handles any Go integer and integral floats.
func CoerceToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= float64(math.MinInt64) && v <= float64(math.MaxInt64) && v == float64(int64(v)) {
			return int64(v), true
		}
	case float32:
		if v >= float32(math.MinInt64) && v <= float32(math.MaxInt64) && v == float32(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}
