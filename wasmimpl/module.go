package wasmimpl

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/classy/async"
	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/internal/abi"
	"github.com/wippyai/classy/object"
	"github.com/wippyai/classy/schema"
)

// Config holds configuration for loading a guest module.
type Config struct {
	// Name is the guest module name. Empty uses "guest".
	Name string

	// MemoryLimitPages caps guest memory in 64KiB pages.
	// 0 keeps the wazero default.
	MemoryLimitPages uint32
}

// Module is an instantiated guest whose exports serve as method bodies.
// Each call fetches its own function handle, so bound bodies may run
// concurrently and re-enter the module through events.
type Module struct {
	runtime wazero.Runtime
	guest   api.Module
	name    string
}

// Load compiles and instantiates wasm with the host module available.
func Load(ctx context.Context, wasm []byte, cfg *Config) (*Module, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	name := "guest"
	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.Name != "" {
			name = cfg.Name
		}
	}

	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	if _, err := instantiateHost(ctx, r); err != nil {
		r.Close(ctx)
		return nil, errors.Load("instantiate host module", err)
	}

	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		r.Close(ctx)
		return nil, errors.Load("compile failed", err)
	}
	guest, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		r.Close(ctx)
		return nil, errors.Load("instantiate failed", err)
	}

	Logger().Debug("guest loaded",
		zap.String("module", name),
		zap.Int("exports", len(compiled.ExportedFunctions())))
	return &Module{runtime: r, guest: guest, name: name}, nil
}

// Name returns the guest module name.
func (m *Module) Name() string { return m.name }

// Exports returns the exported function names, sorted.
func (m *Module) Exports() []string {
	defs := m.guest.ExportedFunctionDefinitions()
	out := make([]string, 0, len(defs))
	for name := range defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Close releases the guest and its runtime.
func (m *Module) Close(ctx context.Context) error {
	return m.runtime.Close(ctx)
}

// lookup returns the definition of an export after checking its shape.
func (m *Module) lookup(export string, params, results []api.ValueType) error {
	fn := m.guest.ExportedFunction(export)
	if fn == nil {
		return errors.NotFound(errors.PhaseLoad, "export", m.name+"."+export)
	}
	def := fn.Definition()
	if !sameTypes(def.ParamTypes(), params) || !sameTypes(def.ResultTypes(), results) {
		return errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
			Path(m.name, export).
			Detail("export is %s -> %s, method needs %s -> %s",
				typeList(def.ParamTypes()), typeList(def.ResultTypes()),
				typeList(params), typeList(results)).
			Build()
	}
	return nil
}

// Method binds a synchronous method body to an export. The export's core
// signature must be the lowering of sig.
func (m *Module) Method(export string, sig schema.Signature) (object.MethodFunc, error) {
	params, ok := valueTypes(sig.Params)
	if !ok {
		return nil, errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
			Path(m.name, export).
			Detail("parameters %s do not lower to core values", sig.String()).
			Build()
	}
	var results []api.ValueType
	if sig.Result != nil {
		vt, ok := valueType(sig.Result)
		if !ok {
			return nil, errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
				Path(m.name, export).
				WitType(abi.Name(sig.Result)).
				Detail("result does not lower to a core value").
				Build()
		}
		results = []api.ValueType{vt}
	}
	if err := m.lookup(export, params, results); err != nil {
		return nil, err
	}

	size := max(len(params), len(results))
	result := sig.Result
	return func(self *object.Instance, args ...any) (any, error) {
		stack := make([]uint64, size)
		for i, a := range args {
			stack[i] = encode(a)
		}
		if err := m.call(self, export, stack); err != nil {
			return nil, err
		}
		if result == nil {
			return nil, nil
		}
		return decode(result, stack[0]), nil
	}, nil
}

// Async binds an asynchronous method body to an export taking nothing or
// one integer, which receives the task argument. An i32 result is a
// status; nonzero fails the task.
func (m *Module) Async(export string) (object.AsyncFunc, error) {
	fn := m.guest.ExportedFunction(export)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseLoad, "export", m.name+"."+export)
	}
	def := fn.Definition()
	params, results := def.ParamTypes(), def.ResultTypes()

	shapeOK := len(params) <= 1 && len(results) <= 1
	for _, p := range params {
		shapeOK = shapeOK && (p == api.ValueTypeI32 || p == api.ValueTypeI64)
	}
	for _, r := range results {
		shapeOK = shapeOK && r == api.ValueTypeI32
	}
	if !shapeOK {
		return nil, errors.New(errors.PhaseLoad, errors.KindTypeMismatch).
			Path(m.name, export).
			Detail("async export must be ([i32|i64]) -> [i32], got %s -> %s",
				typeList(params), typeList(results)).
			Build()
	}

	return func(self *object.Instance, task *async.Task) error {
		stack := make([]uint64, 1)
		if len(params) == 1 {
			n, _ := abi.CoerceToInt64(task.Arg())
			stack[0] = api.EncodeI64(n)
		}
		if err := m.call(self, export, stack); err != nil {
			return err
		}
		if len(results) == 1 {
			if status := api.DecodeI32(stack[0]); status != 0 {
				return errors.New(errors.PhaseAsync, errors.KindTrap).
					Path(m.name, export).
					Value(status).
					Detail("exited with status %d", status).
					Build()
			}
		}
		return nil
	}, nil
}

func (m *Module) call(self *object.Instance, export string, stack []uint64) error {
	fn := m.guest.ExportedFunction(export)
	if err := fn.CallWithStack(withSelf(context.Background(), self), stack); err != nil {
		Logger().Debug("guest call failed",
			zap.String("module", m.name),
			zap.String("export", export),
			zap.Error(err))
		return errors.Trapped(errors.PhaseDispatch, m.name+"."+export, err)
	}
	return nil
}

// Impl binds every method desc declares itself. exports renames methods
// to export names; methods it does not list bind to the export of the
// same name.
func (m *Module) Impl(desc *schema.Class, exports map[string]string) (object.Impl, error) {
	impl := object.Impl{
		Methods: make(map[string]object.MethodFunc),
		Async:   make(map[string]object.AsyncFunc),
	}
	for _, method := range desc.Methods() {
		export := method.Name
		if renamed, ok := exports[method.Name]; ok {
			export = renamed
		}
		if method.Kind.IsAsync() {
			fn, err := m.Async(export)
			if err != nil {
				return object.Impl{}, err
			}
			impl.Async[method.Name] = fn
			continue
		}
		fn, err := m.Method(export, method.Sig)
		if err != nil {
			return object.Impl{}, err
		}
		impl.Methods[method.Name] = fn
	}

	Logger().Debug("class bound",
		zap.String("module", m.name),
		zap.String("class", desc.Name()),
		zap.Int("methods", len(impl.Methods)),
		zap.Int("async", len(impl.Async)))
	return impl, nil
}
