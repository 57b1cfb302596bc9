package layout

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/internal/abi"
)

// Info is the size and alignment of a type, plus field offsets for records.
type Info struct {
	FieldOffs map[string]uint32
	Size      uint32
	Align     uint32
}

// Calculator computes canonical sizes and alignments of WIT types.
// Type definitions are cached by identity.
type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4} // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) Info {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		names := make([]string, len(kind.Fields))
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			names[i] = f.Name
			types[i] = f.Type
		}
		info = c.sequence(names, types)
	case *wit.Tuple:
		info = c.sequence(nil, kind.Types)
	case *wit.List:
		info = Info{Size: 8, Align: 4}
	case *wit.Option:
		inner := c.Calculate(kind.Type)
		align := max(inner.Align, 1)
		payload := abi.AlignTo(1, align)
		info = Info{Size: abi.AlignTo(payload+inner.Size, align), Align: align}
	case *wit.Enum:
		size := discriminantSize(len(kind.Cases))
		info = Info{Size: size, Align: size}
	case *wit.Flags:
		info = flagsInfo(len(kind.Flags))
	case wit.Type:
		info = c.Calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.cache[t] = info
	return info
}

// sequence lays out types one after another with natural alignment.
// Names, when given, are recorded in FieldOffs.
func (c *Calculator) sequence(names []string, types []wit.Type) Info {
	if len(types) == 0 {
		return Info{Size: 0, Align: 1}
	}

	var offs map[string]uint32
	if names != nil {
		offs = make(map[string]uint32, len(names))
	}
	maxAlign := uint32(1)
	offset := uint32(0)

	for i, typ := range types {
		elem := c.Calculate(typ)
		offset = abi.AlignTo(offset, elem.Align)
		if offs != nil {
			offs[names[i]] = offset
		}
		maxAlign = max(maxAlign, elem.Align)
		offset += elem.Size
	}

	return Info{
		Size:      abi.AlignTo(offset, maxAlign),
		Align:     maxAlign,
		FieldOffs: offs,
	}
}

func discriminantSize(numCases int) uint32 {
	switch {
	case numCases <= 1<<8:
		return 1
	case numCases <= 1<<16:
		return 2
	default:
		return 4
	}
}

func flagsInfo(n int) Info {
	switch {
	case n == 0:
		return Info{Size: 0, Align: 1}
	case n <= 8:
		return Info{Size: 1, Align: 1}
	case n <= 16:
		return Info{Size: 2, Align: 2}
	default:
		return Info{Size: uint32((n + 31) / 32 * 4), Align: 4}
	}
}
