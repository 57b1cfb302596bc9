package object

import (
	"sync/atomic"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/internal/abi"
	"github.com/wippyai/classy/layout"
)

// Handler receives a raised event. Arguments arrive coerced to the
// declared parameter types.
type Handler func(self *Instance, args ...any)

// EventSlot holds the single handler of one event. Registration replaces
// the previous handler; reads and writes are atomic.
type EventSlot struct {
	handler atomic.Pointer[Handler]
	slot    *layout.EventSlot
}

// Name returns the event name.
func (s *EventSlot) Name() string { return s.slot.Name }

// Set installs h, replacing any previous handler. Nil clears the slot.
func (s *EventSlot) Set(h Handler) {
	if h == nil {
		s.handler.Store(nil)
		return
	}
	s.handler.Store(&h)
}

// Handler returns the installed handler, or nil.
func (s *EventSlot) Handler() Handler {
	if p := s.handler.Load(); p != nil {
		return *p
	}
	return nil
}

// raise invokes the handler when one is installed.
func (s *EventSlot) raise(self *Instance, args []any) error {
	h := s.Handler()
	if h == nil {
		return nil
	}
	coerced, err := coerceArgs(errors.PhaseEvent, self.class.Name(), s.slot.Name, s.slot.Params, args)
	if err != nil {
		return err
	}
	h(self, coerced...)
	return nil
}

// Event returns the slot of an event by name, or nil.
func (inst *Instance) Event(name string) *EventSlot {
	if inst.class == nil {
		return nil
	}
	slot, ok := inst.class.layout.Event(name)
	if !ok || slot.Index >= len(inst.events) {
		return nil
	}
	return &inst.events[slot.Index]
}

// OnEvent installs h as the handler of an event on this instance.
func (inst *Instance) OnEvent(event string, h Handler) error {
	if err := inst.usable(errors.PhaseEvent); err != nil {
		return err
	}
	s := inst.Event(event)
	if s == nil {
		return errors.NotFound(errors.PhaseEvent, "event", event)
	}
	s.Set(h)
	return nil
}

// Raise invokes the event's handler. An event without a handler is a no-op.
func (inst *Instance) Raise(event string, args ...any) error {
	if err := inst.usable(errors.PhaseEvent); err != nil {
		return err
	}
	s := inst.Event(event)
	if s == nil {
		return errors.NotFound(errors.PhaseEvent, "event", event)
	}
	return s.raise(inst, args)
}

// Register installs h on inst for an event declared by class or one of its
// ancestors. inst must be of class or derived from it.
func (rt *Runtime) Register(class *Class, event string, h Handler, inst *Instance) error {
	if class == nil || inst == nil {
		return errors.InvalidInput(errors.PhaseEvent, "nil class or instance")
	}
	if err := inst.usable(errors.PhaseEvent); err != nil {
		return err
	}
	if !inst.class.IsSubclassOf(class) {
		return errors.New(errors.PhaseEvent, errors.KindTypeMismatch).
			Path(class.Name(), event).
			Detail("instance of %s is not a %s", inst.class.Name(), class.Name()).
			Build()
	}
	if _, ok := class.layout.Event(event); !ok {
		return errors.NotFound(errors.PhaseEvent, "event", class.Name()+"."+event)
	}

	inst.Event(event).Set(h)
	rt.logger.Debug("event registered",
		zap.String("class", inst.class.Name()),
		zap.String("symbol", class.Symbol(event)),
		zap.Bool("cleared", h == nil))
	return nil
}

// coerceArgs converts call arguments to their declared types.
func coerceArgs(phase errors.Phase, class, member string, params []wit.Type, args []any) ([]any, error) {
	if len(args) != len(params) {
		return nil, errors.Arity(phase, []string{class, member}, len(args), len(params))
	}
	out := make([]any, len(args))
	for i, p := range params {
		v, ok := abi.Coerce(p, args[i])
		if !ok {
			return nil, errors.TypeMismatch(phase, []string{class, member}, abi.TypeName(args[i]), abi.Name(p))
		}
		out[i] = v
	}
	return out, nil
}
