package object

import (
	"context"
	stderrors "errors"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/classy/async"
	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/heap"
	"github.com/wippyai/classy/layout"
	"github.com/wippyai/classy/metrics"
	"github.com/wippyai/classy/schema"
)

// Runtime owns defined classes, the object heap and the async engine.
type Runtime struct {
	logger  *zap.Logger
	objects *heap.Table
	engine  *async.Engine
	metrics *metrics.Collector
	calc    *layout.Calculator
	classes map[string]*Class
	byID    []*Class
	cfg     Config
	mu      sync.RWMutex
	closed  atomic.Bool
}

// NewRuntime creates a runtime. A nil config uses DefaultConfig.
func NewRuntime(cfg *Config) (*Runtime, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	rt := &Runtime{
		cfg:     *cfg,
		logger:  cfg.Logger,
		objects: heap.NewTable(cfg.MaxObjects),
		calc:    layout.NewCalculator(),
		classes: make(map[string]*Class),
	}
	if rt.logger == nil {
		rt.logger = zap.NewNop()
	}
	if rt.cfg.MaxDepth <= 0 {
		rt.cfg.MaxDepth = layout.DefaultMaxDepth
	}
	if rt.cfg.SymbolPrefix == "" {
		rt.cfg.SymbolPrefix = DefaultSymbolPrefix
	}
	rt.cfg.DepthCheck = rt.cfg.DepthCheck.normalize()
	rt.engine = async.NewEngineWithConfig(&async.Config{
		MaxThreads:  cfg.MaxThreads,
		Synchronous: cfg.DisableAsync,
	})

	if cfg.Registerer != nil {
		rt.metrics = metrics.New(rt.className)
		if err := rt.metrics.Register(cfg.Registerer); err != nil {
			return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidInput, err, "cannot register metrics")
		}
		rt.objects.Subscribe(rt.metrics)
		rt.engine.Subscribe(rt.metrics)
	}
	return rt, nil
}

// Config returns a copy of the effective configuration.
func (rt *Runtime) Config() Config { return rt.cfg }

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *zap.Logger { return rt.logger }

// Engine returns the async engine running asynchronous methods.
func (rt *Runtime) Engine() *async.Engine { return rt.engine }

// Heap returns the table holding engine-allocated objects.
func (rt *Runtime) Heap() *heap.Table { return rt.objects }

// Define turns a descriptor and its implementation into a class.
// The base class must already be defined in this runtime.
func (rt *Runtime) Define(desc *schema.Class, impl Impl) (*Class, error) {
	if desc == nil || desc.IsRoot() {
		return nil, errors.InvalidInput(errors.PhaseDeclare, "cannot define nil or root class")
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if prev, ok := rt.classes[desc.Name()]; ok {
		return nil, errors.Collision(desc.Name(), desc.Name(), "class "+prev.Name())
	}

	var base *Class
	if b := desc.Base(); !b.IsRoot() {
		var ok bool
		base, ok = rt.classes[b.Name()]
		if !ok || base.desc != b {
			return nil, errors.New(errors.PhaseDeclare, errors.KindNotFound).
				Path(desc.Name()).
				Detail("base class %q is not defined", b.Name()).
				Build()
		}
	}

	opts := layout.Options{Calc: rt.calc}
	if rt.cfg.DepthCheck&DepthCheckDefine != 0 {
		opts.MaxDepth = rt.cfg.MaxDepth
	}
	l, err := layout.Compose(desc, opts)
	if err != nil {
		if stderrors.Is(err, errors.ErrDepthExceeded) {
			rt.logger.Warn("class rejected",
				zap.String("class", desc.Name()),
				zap.Int("depth", desc.Depth()),
				zap.Int("limit", rt.cfg.MaxDepth))
		}
		return nil, err
	}

	c := &Class{
		rt:     rt,
		desc:   desc,
		layout: l,
		base:   base,
		impl:   impl,
		id:     uint32(len(rt.byID) + 1),
	}
	if err := c.checkImpl(); err != nil {
		return nil, err
	}
	c.plan()

	rt.classes[desc.Name()] = c
	rt.byID = append(rt.byID, c)

	rt.logger.Debug("class defined",
		zap.String("class", c.Name()),
		zap.String("symbol", c.Symbol("")),
		zap.Int("depth", l.Depth()),
		zap.Uint32("size", l.Size))
	return c, nil
}

// DefineNamed resolves name through Config.Schemas and defines it.
func (rt *Runtime) DefineNamed(name string, impl Impl) (*Class, error) {
	if rt.cfg.Schemas == nil {
		return nil, errors.InvalidInput(errors.PhaseRuntime, "no schema source configured")
	}
	desc, ok := rt.cfg.Schemas.Lookup(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseRuntime, "class schema", name)
	}
	return rt.Define(desc, impl)
}

// Class returns a defined class by name.
func (rt *Runtime) Class(name string) (*Class, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	c, ok := rt.classes[name]
	return c, ok
}

// Classes returns the defined classes sorted by name.
func (rt *Runtime) Classes() []*Class {
	rt.mu.RLock()
	out := make([]*Class, 0, len(rt.classes))
	for _, c := range rt.classes {
		out = append(out, c)
	}
	rt.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (rt *Runtime) className(id uint32) string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	if id == 0 || int(id) > len(rt.byID) {
		return "unknown"
	}
	return rt.byID[id-1].Name()
}

func closedError(class *Class) error {
	return errors.New(errors.PhaseRuntime, errors.KindNotAlive).
		Path(class.Name()).
		Detail("runtime closed").
		Build()
}

// Live returns the number of engine-allocated objects not yet released.
func (rt *Runtime) Live() int { return rt.objects.Len() }

// Close waits for running async bodies, then destroys and releases every
// engine-allocated object still live.
// Construction fails with a not-alive error afterwards.
func (rt *Runtime) Close(ctx context.Context) error {
	rt.closed.Store(true)
	if err := rt.engine.Close(ctx); err != nil {
		return err
	}
	rt.objects.Clear()
	return rt.objects.Close()
}
