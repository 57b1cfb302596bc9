package object

import (
	"go.uber.org/zap"

	"github.com/wippyai/classy/async"
	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/layout"
)

// StartAsync starts an asynchronous method and returns without waiting for
// it. If the method cannot be started, arg is released and an error is
// returned; the caller must check it.
func StartAsync(inst *Instance, method string, arg any) (*async.Task, error) {
	if inst == nil {
		releaseArg(arg)
		return nil, errors.InvalidInput(errors.PhaseAsync, "nil instance")
	}
	if err := inst.usable(errors.PhaseAsync); err != nil {
		releaseArg(arg)
		return nil, err
	}
	slot, ok := inst.class.layout.Method(method)
	if !ok {
		releaseArg(arg)
		return nil, errors.NotFound(errors.PhaseAsync, "method", inst.class.Name()+"."+method)
	}
	if !slot.Async {
		releaseArg(arg)
		return nil, errors.New(errors.PhaseAsync, errors.KindInvalidInput).
			Path(inst.class.Name(), method).
			Detail("method is not asynchronous").
			Build()
	}
	return inst.start(slot, inst.methods[slot.Index], arg)
}

// Await blocks until task's body ends and returns its error.
func Await(task *async.Task) error {
	if task == nil {
		return errors.InvalidInput(errors.PhaseAsync, "nil task")
	}
	return task.Wait()
}

func (inst *Instance) start(slot layout.MethodSlot, b binding, arg any) (*async.Task, error) {
	rt := inst.class.rt
	symbol := b.owner.Symbol(slot.Name)
	body := func(t *async.Task) error {
		return b.async(inst, t)
	}

	task, err := rt.engine.Start(symbol, inst, arg, body)
	if err != nil {
		rt.logger.Warn("async method not started",
			zap.String("class", inst.class.Name()),
			zap.String("symbol", symbol),
			zap.Error(err))
		return nil, err
	}
	rt.logger.Debug("async method started",
		zap.String("class", inst.class.Name()),
		zap.String("symbol", symbol),
		zap.String("task", task.ID()))
	return task, nil
}

func releaseArg(arg any) {
	if r, ok := arg.(async.Releaser); ok {
		r.Release()
	}
}
