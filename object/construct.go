package object

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/heap"
)

// Ctor is passed to user constructors.
type Ctor struct {
	// Self is the object under construction.
	Self *Instance
	// IsBase is true when the constructor runs on behalf of a derived class.
	IsBase bool

	class    *Class
	baseDone bool
}

// Class returns the class whose constructor is running.
func (c *Ctor) Class() *Class { return c.class }

// InitBase runs the immediate base class's constructor with args.
// It may be called at most once; a base without a constructor accepts no
// arguments.
func (c *Ctor) InitBase(args ...any) error {
	if c.baseDone {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Path(c.class.Name()).
			Detail("base constructor already ran").
			Build()
	}
	c.baseDone = true

	base := c.class.base
	if base == nil {
		if len(args) != 0 {
			return errors.Arity(errors.PhaseConstruct, []string{c.class.Name(), "base"}, len(args), 0)
		}
		return nil
	}
	return runCtor(c.Self, base, true, args)
}

// runCtor runs class's user constructor against inst.
func runCtor(inst *Instance, class *Class, isBase bool, args []any) error {
	if class.impl.Ctor == nil {
		if len(args) != 0 {
			return errors.Arity(errors.PhaseConstruct, []string{class.Name(), "constructor"}, len(args), 0)
		}
		return nil
	}
	return class.impl.Ctor(&Ctor{Self: inst, IsBase: isBase, class: class}, args...)
}

// New allocates an object of class on the runtime heap and constructs it.
// On failure no partially constructed object is reachable and nil is
// returned with the error.
func (rt *Runtime) New(class *Class, args ...any) (*Instance, error) {
	if err := rt.admit(class); err != nil {
		return nil, err
	}

	inst := &Instance{}
	h, err := rt.objects.Insert(class.id, heapRef{inst: inst})
	if err == heap.ErrClosed {
		return nil, closedError(class)
	}
	if err != nil {
		rt.logger.Warn("allocation failed",
			zap.String("class", class.Name()),
			zap.Int("live", rt.objects.Len()),
			zap.Error(err))
		return nil, errors.AllocationFailed(class.Name(), err)
	}
	inst.handle = h

	if err := rt.construct(inst, class, args); err != nil {
		rt.release(inst)
		return nil, err
	}
	return inst, nil
}

// NewInPlace constructs an object of class into caller-owned storage.
// dst must not hold a live object.
func (rt *Runtime) NewInPlace(dst *Instance, class *Class, args ...any) error {
	if dst == nil {
		return errors.InvalidInput(errors.PhaseConstruct, "nil destination")
	}
	if err := rt.admit(class); err != nil {
		return err
	}
	switch dst.state.Load() {
	case stateZero, stateDestroyed:
	default:
		return errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Path(class.Name()).
			Detail("destination holds a live object").
			Build()
	}
	if dst.handle != 0 {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Path(class.Name()).
			Detail("destination is an unreleased heap object").
			Build()
	}

	*dst = Instance{}
	return rt.construct(dst, class, args)
}

// admit validates class before any storage is touched.
func (rt *Runtime) admit(class *Class) error {
	if class == nil {
		return errors.InvalidInput(errors.PhaseConstruct, "nil class")
	}
	if class.rt != rt {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Path(class.Name()).
			Detail("class defined in another runtime").
			Build()
	}
	if rt.closed.Load() {
		return closedError(class)
	}
	if rt.cfg.DepthCheck&DepthCheckConstruct != 0 {
		if depth := class.layout.Depth(); depth > rt.cfg.MaxDepth {
			rt.logger.Warn("construction rejected",
				zap.String("class", class.Name()),
				zap.Int("depth", depth),
				zap.Int("limit", rt.cfg.MaxDepth))
			return errors.DepthExceeded(errors.PhaseConstruct, class.Name(), depth, rt.cfg.MaxDepth)
		}
	}
	return nil
}

// construct runs the structural steps for every level, then the most
// derived user constructor. A failing constructor leaves inst zeroed.
func (rt *Runtime) construct(inst *Instance, class *Class, args []any) error {
	inst.state.Store(stateConstructing)
	rt.structure(inst, class)

	if err := runCtor(inst, class, false, args); err != nil {
		inst.reset()
		inst.state.Store(stateZero)
		rt.logger.Debug("constructor failed",
			zap.String("class", class.Name()),
			zap.Error(err))
		var e *errors.Error
		if stderrors.As(err, &e) && e.Phase == errors.PhaseConstruct {
			return err
		}
		return errors.ConstructorFailed(class.Name(), err)
	}

	inst.state.Store(stateAlive)
	if rt.metrics != nil {
		rt.metrics.ObjectConstructed(class.Name())
	}
	rt.logger.Debug("object constructed",
		zap.String("class", class.Name()),
		zap.String("symbol", class.Symbol("")),
		zap.Uint32("handle", uint32(inst.handle)))
	return nil
}
