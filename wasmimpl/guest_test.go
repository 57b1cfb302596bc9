package wasmimpl

// Minimal binary encoder for the guest modules used in tests.

const (
	i32 = 0x7f
	i64 = 0x7e
	f64 = 0x7c
)

func uleb(n uint32) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func vec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func name(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func section(id byte, payload []byte) []byte {
	return append(append([]byte{id}, uleb(uint32(len(payload)))...), payload...)
}

func functype(params, results []byte) []byte {
	out := append([]byte{0x60}, uleb(uint32(len(params)))...)
	out = append(out, params...)
	out = append(out, uleb(uint32(len(results)))...)
	return append(out, results...)
}

func importFunc(module, field string, typeIdx uint32) []byte {
	out := append(name(module), name(field)...)
	return append(append(out, 0x00), uleb(typeIdx)...)
}

func exportFunc(field string, funcIdx uint32) []byte {
	return append(append(name(field), 0x00), uleb(funcIdx)...)
}

// body wraps instructions with an empty locals vector and end.
func body(code ...byte) []byte {
	b := append([]byte{0x00}, code...)
	b = append(b, 0x0b)
	return append(uleb(uint32(len(b))), b...)
}

type guest struct {
	types   [][]byte
	imports [][]byte
	funcs   [][]byte
	exports [][]byte
	bodies  [][]byte
}

func (g *guest) bytes() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, section(1, vec(g.types...))...)
	if len(g.imports) > 0 {
		out = append(out, section(2, vec(g.imports...))...)
	}
	out = append(out, section(3, vec(g.funcs...))...)
	out = append(out, section(7, vec(g.exports...))...)
	return append(out, section(10, vec(g.bodies...))...)
}

// priceGuest:
//
//	(func (export "estimate_price") (result i32) (i32.const 15000))
//	(func (export "add") (param i32 i32) (result i32) (i32.add (local.get 0) (local.get 1)))
//	(func (export "boom") unreachable)
//	(func (export "twice") (param f64) (result f64) (f64.add (local.get 0) (local.get 0)))
func priceGuest() []byte {
	g := &guest{
		types: [][]byte{
			functype(nil, []byte{i32}),
			functype([]byte{i32, i32}, []byte{i32}),
			functype(nil, nil),
			functype([]byte{f64}, []byte{f64}),
		},
		funcs: [][]byte{{0}, {1}, {2}, {3}},
		exports: [][]byte{
			exportFunc("estimate_price", 0),
			exportFunc("add", 1),
			exportFunc("boom", 2),
			exportFunc("twice", 3),
		},
		bodies: [][]byte{
			body(0x41, 0x98, 0xf5, 0x00),
			body(0x20, 0x00, 0x20, 0x01, 0x6a),
			body(0x00),
			body(0x20, 0x00, 0x20, 0x00, 0xa0),
		},
	}
	return g.bytes()
}

// odometerGuest drives a car through the host module, with km_total at
// layout offset 16 and on_need_fuel at event index 1:
//
//	(import "classy" "get_i64" (func $get (param i32) (result i64)))
//	(import "classy" "set_i64" (func $set (param i32 i64)))
//	(import "classy" "raise_i64" (func $raise (param i32 i64)))
//	(func (export "drive") (param i32)
//	  (call $set (i32.const 16) (i64.add (call $get (i32.const 16)) (i64.extend_i32_s (local.get 0)))))
//	(func (export "refuel") (param i64) (result i32)
//	  (call $raise (i32.const 1) (local.get 0)) (i32.const 0))
//	(func (export "stall") (param i64) (result i32) (i32.const 3))
//	(func (export "bad_field") (result i64) (call $get (i32.const 5)))
func odometerGuest() []byte {
	g := &guest{
		types: [][]byte{
			functype([]byte{i32}, []byte{i64}),
			functype([]byte{i32, i64}, nil),
			functype([]byte{i32}, nil),
			functype([]byte{i64}, []byte{i32}),
			functype(nil, []byte{i64}),
		},
		imports: [][]byte{
			importFunc(HostModule, "get_i64", 0),
			importFunc(HostModule, "set_i64", 1),
			importFunc(HostModule, "raise_i64", 1),
		},
		funcs: [][]byte{{2}, {3}, {3}, {4}},
		exports: [][]byte{
			exportFunc("drive", 3),
			exportFunc("refuel", 4),
			exportFunc("stall", 5),
			exportFunc("bad_field", 6),
		},
		bodies: [][]byte{
			body(0x41, 0x10, 0x41, 0x10, 0x10, 0x00, 0x20, 0x00, 0xac, 0x7c, 0x10, 0x01),
			body(0x41, 0x01, 0x20, 0x00, 0x10, 0x02, 0x41, 0x00),
			body(0x41, 0x03),
			body(0x41, 0x05, 0x10, 0x00),
		},
	}
	return g.bytes()
}
