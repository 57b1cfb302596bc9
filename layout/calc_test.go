package layout

import (
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ   wit.Type
		name  string
		size  uint32
		align uint32
	}{
		{wit.Bool{}, "bool", 1, 1},
		{wit.U8{}, "u8", 1, 1},
		{wit.S16{}, "s16", 2, 2},
		{wit.U32{}, "u32", 4, 4},
		{wit.S32{}, "s32", 4, 4},
		{wit.S64{}, "s64", 8, 8},
		{wit.F32{}, "f32", 4, 4},
		{wit.F64{}, "f64", 8, 8},
		{wit.Char{}, "char", 4, 4},
		{wit.String{}, "string", 8, 4},
		{nil, "none", 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(tc.typ)
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateRecord(t *testing.T) {
	c := NewCalculator()

	record := &wit.Record{
		Fields: []wit.Field{
			{Name: "a", Type: wit.U8{}},
			{Name: "b", Type: wit.U32{}},
			{Name: "c", Type: wit.U8{}},
		},
	}
	info := c.Calculate(&wit.TypeDef{Kind: record})

	for name, want := range map[string]uint32{"a": 0, "b": 4, "c": 8} {
		if got := info.FieldOffs[name]; got != want {
			t.Errorf("field %s offset: got %d, want %d", name, got, want)
		}
	}
	if info.Size != 12 {
		t.Errorf("size: got %d, want 12", info.Size)
	}
	if info.Align != 4 {
		t.Errorf("align: got %d, want 4", info.Align)
	}
}

func TestCalculateTypeDefs(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		kind  wit.TypeDefKind
		name  string
		size  uint32
		align uint32
	}{
		{&wit.List{Type: wit.U32{}}, "list", 8, 4},
		{&wit.Tuple{Types: []wit.Type{wit.U8{}, wit.U64{}, wit.U8{}}}, "tuple", 24, 8},
		{&wit.Option{Type: wit.U8{}}, "option_u8", 2, 1},
		{&wit.Option{Type: wit.U32{}}, "option_u32", 8, 4},
		{&wit.Enum{Cases: make([]wit.EnumCase, 3)}, "enum", 1, 1},
		{&wit.Enum{Cases: make([]wit.EnumCase, 300)}, "enum_wide", 2, 2},
		{&wit.Flags{Flags: make([]wit.Flag, 9)}, "flags_9", 2, 2},
		{&wit.Flags{Flags: make([]wit.Flag, 40)}, "flags_40", 8, 4},
		{wit.S32{}, "alias", 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Calculate(&wit.TypeDef{Kind: tc.kind})
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCaching(t *testing.T) {
	c := NewCalculator()
	typedef := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{{Name: "x", Type: wit.U32{}}}}}

	c.Calculate(typedef)
	if _, ok := c.cache[typedef]; !ok {
		t.Fatal("typedef not cached")
	}
	if info := c.Calculate(typedef); info.Size != 4 {
		t.Errorf("cached size: got %d, want 4", info.Size)
	}
}
