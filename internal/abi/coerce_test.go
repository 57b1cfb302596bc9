package abi

import (
	"math"
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		typ    wit.Type
		input  any
		want   any
		wantOK bool
	}{
		{"s32 from int", wit.S32{}, 15000, int32(15000), true},
		{"s32 from int64 overflow", wit.S32{}, int64(math.MaxInt32) + 1, int32(0), false},
		{"s32 from integral float", wit.S32{}, 3.0, int32(3), true},
		{"s32 from fractional float", wit.S32{}, 3.5, int32(0), false},
		{"s8 in range", wit.S8{}, -128, int8(-128), true},
		{"s8 out of range", wit.S8{}, 128, int8(0), false},
		{"u8 negative", wit.U8{}, -1, uint8(0), false},
		{"u16 from uint32", wit.U16{}, uint32(65535), uint16(65535), true},
		{"u32 from int", wit.U32{}, 7, uint32(7), true},
		{"u64 from int64", wit.U64{}, int64(9), uint64(9), true},
		{"s64 from uint64 max", wit.S64{}, uint64(math.MaxUint64), int64(0), false},
		{"f32 from int", wit.F32{}, 2, float32(2), true},
		{"f32 max", wit.F32{}, float64(math.MaxFloat32), float32(math.MaxFloat32), true},
		{"f32 overflow", wit.F32{}, 1e300, float32(0), false},
		{"f32 negative overflow", wit.F32{}, -1e39, float32(0), false},
		{"f32 infinity", wit.F32{}, math.Inf(-1), float32(math.Inf(-1)), true},
		{"f64 from float32", wit.F64{}, float32(1.5), float64(1.5), true},
		{"bool", wit.Bool{}, true, true, true},
		{"bool from int", wit.Bool{}, 1, false, false},
		{"string", wit.String{}, "car", "car", true},
		{"string from bytes", wit.String{}, []byte("car"), "", false},
		{"char", wit.Char{}, 'x', 'x', true},
		{"char surrogate", wit.Char{}, 0xD800, nil, false},
		{"none accepts nil", nil, nil, nil, true},
		{"none rejects value", nil, 1, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Coerce(tt.typ, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Coerce(%s, %v) ok = %v, want %v", Name(tt.typ), tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Coerce(%s, %v) = %v (%T), want %v (%T)", Name(tt.typ), tt.input, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestZero(t *testing.T) {
	tests := []struct {
		typ  wit.Type
		want any
	}{
		{wit.Bool{}, false},
		{wit.S32{}, int32(0)},
		{wit.U64{}, uint64(0)},
		{wit.F64{}, float64(0)},
		{wit.String{}, ""},
		{&wit.TypeDef{Kind: &wit.Record{}}, nil},
	}

	for _, tt := range tests {
		t.Run(Name(tt.typ), func(t *testing.T) {
			if got := Zero(tt.typ); got != tt.want {
				t.Errorf("Zero = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestSame(t *testing.T) {
	rec := &wit.TypeDef{Kind: &wit.Record{}}
	other := &wit.TypeDef{Kind: &wit.Record{}}

	tests := []struct {
		name string
		a, b wit.Type
		want bool
	}{
		{"same primitive", wit.S32{}, wit.S32{}, true},
		{"different primitive", wit.S32{}, wit.U32{}, false},
		{"both nil", nil, nil, true},
		{"one nil", wit.S32{}, nil, false},
		{"same typedef", rec, rec, true},
		{"distinct typedefs", rec, other, false},
		{"typedef vs primitive", rec, wit.S32{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(tt.a, tt.b); got != tt.want {
				t.Errorf("Same = %v, want %v", got, tt.want)
			}
		})
	}

	if !SameList([]wit.Type{wit.S32{}, wit.S32{}}, []wit.Type{wit.S32{}, wit.S32{}}) {
		t.Error("identical parameter lists should match")
	}
	if SameList([]wit.Type{wit.S32{}}, []wit.Type{wit.S32{}, wit.S32{}}) {
		t.Error("lists of different length must not match")
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want uint32
	}{
		{5, 0, 5},
		{0, 1, 0},
		{1, 2, 2},
		{3, 4, 4},
		{5, 4, 8},
		{9, 8, 16},
		{16, 16, 16},
	}

	for _, tt := range tests {
		if got := AlignTo(tt.offset, tt.align); got != tt.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tt.offset, tt.align, got, tt.want)
		}
	}
}
