package wasmimpl

import (
	"context"
	"strconv"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/object"
)

// HostModule is the import module name guests use to reach their object.
const HostModule = "classy"

type selfKey struct{}

func withSelf(ctx context.Context, self *object.Instance) context.Context {
	return context.WithValue(ctx, selfKey{}, self)
}

func selfFrom(ctx context.Context) *object.Instance {
	self, _ := ctx.Value(selfKey{}).(*object.Instance)
	if self == nil {
		panic(errors.InvalidInput(errors.PhaseDispatch, "host call outside a method body"))
	}
	return self
}

// field resolves a layout offset on the calling object and checks that the
// field lowers to vt. Failures panic; wazero turns them into call errors.
func field(ctx context.Context, offset uint32, vt api.ValueType) *object.Field {
	self := selfFrom(ctx)
	f := self.FieldAt(offset)
	if f == nil {
		panic(errors.NotFound(errors.PhaseDispatch, "field at offset", strconv.FormatUint(uint64(offset), 10)))
	}
	if have, _ := valueType(f.Type()); have != vt {
		panic(errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
			Path(self.Class().Name(), f.Name()).
			WitType(api.ValueTypeName(have)).
			Detail("accessed as %s", api.ValueTypeName(vt)).
			Build())
	}
	return f
}

func getter(vt api.ValueType) api.GoModuleFunc {
	return func(ctx context.Context, _ api.Module, stack []uint64) {
		f := field(ctx, api.DecodeU32(stack[0]), vt)
		stack[0] = encode(f.Get())
	}
}

func setter(vt api.ValueType) api.GoModuleFunc {
	return func(ctx context.Context, _ api.Module, stack []uint64) {
		f := field(ctx, api.DecodeU32(stack[0]), vt)
		if err := f.Set(decode(f.Type(), stack[1])); err != nil {
			panic(err)
		}
	}
}

func raiser(withArg bool) api.GoModuleFunc {
	return func(ctx context.Context, _ api.Module, stack []uint64) {
		self := selfFrom(ctx)
		events := self.Class().Layout().Events
		idx := api.DecodeU32(stack[0])
		if int(idx) >= len(events) {
			panic(errors.NotFound(errors.PhaseEvent, "event index", strconv.FormatUint(uint64(idx), 10)))
		}
		var err error
		if withArg {
			err = self.Raise(events[idx].Name, int64(stack[1]))
		} else {
			err = self.Raise(events[idx].Name)
		}
		if err != nil {
			panic(err)
		}
	}
}

// instantiateHost registers the host module in r.
func instantiateHost(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	i32, i64 := api.ValueTypeI32, api.ValueTypeI64
	builder := r.NewHostModuleBuilder(HostModule)

	for _, vt := range []api.ValueType{api.ValueTypeI32, api.ValueTypeI64, api.ValueTypeF32, api.ValueTypeF64} {
		name := api.ValueTypeName(vt)
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(getter(vt), []api.ValueType{i32}, []api.ValueType{vt}).
			Export("get_" + name)
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(setter(vt), []api.ValueType{i32, vt}, nil).
			Export("set_" + name)
	}

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(raiser(false), []api.ValueType{i32}, nil).
		Export("raise")
	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(raiser(true), []api.ValueType{i32, i64}, nil).
		Export("raise_i64")

	return builder.Instantiate(ctx)
}
