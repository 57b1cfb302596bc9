package object

import (
	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/internal/abi"
	"github.com/wippyai/classy/layout"
)

// Call invokes a method on inst through its bound slot.
// See Instance.Call.
func Call(inst *Instance, method string, args ...any) (any, error) {
	if inst == nil {
		return nil, errors.InvalidInput(errors.PhaseDispatch, "nil instance")
	}
	return inst.Call(method, args...)
}

// Call invokes a method through the instance's slot, which holds the most
// derived body. Arguments and result are converted to the declared types.
// Calling an asynchronous method starts it and returns its *async.Task.
func (inst *Instance) Call(method string, args ...any) (any, error) {
	if err := inst.usable(errors.PhaseDispatch); err != nil {
		return nil, err
	}
	slot, ok := inst.class.layout.Method(method)
	if !ok {
		return nil, errors.NotFound(errors.PhaseDispatch, "method", inst.class.Name()+"."+method)
	}
	return inst.invoke(slot, args)
}

func (inst *Instance) invoke(slot layout.MethodSlot, args []any) (any, error) {
	b := inst.methods[slot.Index]

	if slot.Async {
		var arg any
		switch len(args) {
		case 0:
		case 1:
			arg = args[0]
		default:
			return nil, errors.Arity(errors.PhaseAsync, []string{inst.class.Name(), slot.Name}, len(args), 1)
		}
		task, err := inst.start(slot, b, arg)
		if err != nil {
			return nil, err
		}
		return task, nil
	}

	coerced, err := coerceArgs(errors.PhaseDispatch, inst.class.Name(), slot.Name, slot.Sig.Params, args)
	if err != nil {
		return nil, err
	}
	res, err := b.fn(inst, coerced...)
	if err != nil {
		return nil, err
	}
	if slot.Sig.Result == nil {
		return nil, nil
	}
	v, ok := abi.Coerce(slot.Sig.Result, res)
	if !ok {
		return nil, errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
			Path(b.owner.Name(), slot.Name).
			GoType(abi.TypeName(res)).
			WitType(abi.Name(slot.Sig.Result)).
			Detail("bad result").
			Build()
	}
	return v, nil
}
