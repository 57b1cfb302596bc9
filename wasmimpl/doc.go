// Package wasmimpl supplies class method bodies from WebAssembly exports.
//
// A guest module is compiled and instantiated in its own wazero runtime.
// Exports are bound to methods by name; numeric WIT types lower to core
// values (bool and the 8, 16 and 32-bit integers and char to i32, 64-bit
// integers to i64, floats to f32 and f64). Other types cannot cross.
//
// Guests reach the object they run on through the "classy" host module:
//
//	get_i32(offset i32) -> i32      set_i32(offset i32, v i32)
//	get_i64(offset i32) -> i64      set_i64(offset i32, v i64)
//	get_f32(offset i32) -> f32      set_f32(offset i32, v f32)
//	get_f64(offset i32) -> f64      set_f64(offset i32, v f64)
//	raise(event i32)                raise_i64(event i32, arg i64)
//
// Offsets are the byte offsets of the composed class layout and events are
// addressed by layout index, so a guest compiled against a base class keeps
// working on derived objects.
//
// Example:
//
//	mod, err := wasmimpl.Load(ctx, guestBytes, nil)
//	if err != nil {
//		return err
//	}
//	defer mod.Close(ctx)
//
//	impl, err := mod.Impl(carDesc, nil)
//	if err != nil {
//		return err
//	}
//	car, err := rt.Define(carDesc, impl)
package wasmimpl
