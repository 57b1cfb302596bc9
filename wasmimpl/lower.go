package wasmimpl

import (
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
)

// valueType returns the core type a WIT type lowers to.
func valueType(t wit.Type) (api.ValueType, bool) {
	switch t.(type) {
	case wit.Bool, wit.S8, wit.U8, wit.S16, wit.U16, wit.S32, wit.U32, wit.Char:
		return api.ValueTypeI32, true
	case wit.S64, wit.U64:
		return api.ValueTypeI64, true
	case wit.F32:
		return api.ValueTypeF32, true
	case wit.F64:
		return api.ValueTypeF64, true
	}
	return 0, false
}

func valueTypes(ts []wit.Type) ([]api.ValueType, bool) {
	out := make([]api.ValueType, len(ts))
	for i, t := range ts {
		vt, ok := valueType(t)
		if !ok {
			return nil, false
		}
		out[i] = vt
	}
	return out, true
}

func sameTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func typeList(ts []api.ValueType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = api.ValueTypeName(t)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// encode lowers a coerced Go value to its stack representation.
func encode(v any) uint64 {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int8:
		return api.EncodeI32(int32(x))
	case int16:
		return api.EncodeI32(int32(x))
	case int32:
		return api.EncodeI32(x)
	case uint8:
		return api.EncodeU32(uint32(x))
	case uint16:
		return api.EncodeU32(uint32(x))
	case uint32:
		return api.EncodeU32(x)
	case int64:
		return api.EncodeI64(x)
	case uint64:
		return x
	case int:
		return api.EncodeI64(int64(x))
	case float32:
		return api.EncodeF32(x)
	case float64:
		return api.EncodeF64(x)
	}
	return 0
}

// decode lifts a stack value into the Go representation of t.
// Narrow integers wrap as they do in the canonical ABI.
func decode(t wit.Type, raw uint64) any {
	switch t.(type) {
	case wit.Bool:
		return uint32(raw) != 0
	case wit.S8:
		return int8(api.DecodeI32(raw))
	case wit.S16:
		return int16(api.DecodeI32(raw))
	case wit.S32:
		return api.DecodeI32(raw)
	case wit.Char:
		return rune(api.DecodeI32(raw))
	case wit.U8:
		return uint8(api.DecodeU32(raw))
	case wit.U16:
		return uint16(api.DecodeU32(raw))
	case wit.U32:
		return api.DecodeU32(raw)
	case wit.S64:
		return int64(raw)
	case wit.U64:
		return raw
	case wit.F32:
		return api.DecodeF32(raw)
	case wit.F64:
		return api.DecodeF64(raw)
	}
	return nil
}
