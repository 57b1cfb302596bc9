package object

import (
	"fmt"
	"sync"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/async"
	"github.com/wippyai/classy/schema"
)

var (
	moveable = schema.NewInterface("Moveable").
			Field("position", wit.S32{}).
			Event("on_move", wit.S32{}).
			Method("move", nil, wit.S32{}).
			MustBuild()
	sellable = schema.NewInterface("Sellable").
			Field("id", wit.S32{}).
			Method("estimate_price", wit.S32{}).
			MustBuild()

	vehicleDesc = schema.NewClass("Vehicle").
			Implements(moveable, sellable).
			Field("id", wit.S32{}).
			Field("position", wit.S32{}).
			Event("on_move", wit.S32{}).
			Method("move", nil, wit.S32{}).
			Method("estimate_price", wit.S32{}).
			MustBuild()
	carDesc = schema.NewClass("Car").
		Extends(vehicleDesc).
		Field("km_total", wit.S64{}).
		Field("km_since_last_fuel", wit.S32{}).
		Event("on_need_fuel", wit.S32{}).
		Method("park", nil).
		Override("estimate_price", wit.S32{}).
		Async("refuel").
		MustBuild()
)

// trace records lifecycle calls in order.
type trace struct {
	calls []string
	mu    sync.Mutex
}

func (tr *trace) add(format string, args ...any) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.calls = append(tr.calls, fmt.Sprintf(format, args...))
}

func (tr *trace) take() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := tr.calls
	tr.calls = nil
	return out
}

type fixture struct {
	rt      *Runtime
	vehicle *Class
	car     *Class
	trace   *trace
}

func vehicleImpl(tr *trace) Impl {
	return Impl{
		Ctor: func(c *Ctor, args ...any) error {
			tr.add("ctor Vehicle base=%v", c.IsBase)
			if len(args) == 1 {
				return c.Self.Set("id", args[0])
			}
			return nil
		},
		Dtor: func(self *Instance, isBase bool) {
			tr.add("dtor Vehicle base=%v", isBase)
		},
		Methods: map[string]MethodFunc{
			"move": func(self *Instance, args ...any) (any, error) {
				pos, err := self.Field("position").Add(int64(args[0].(int32)))
				if err != nil {
					return nil, err
				}
				return nil, self.Raise("on_move", pos)
			},
			"estimate_price": func(*Instance, ...any) (any, error) {
				return 1000, nil
			},
		},
	}
}

func carImpl(tr *trace) Impl {
	return Impl{
		Ctor: func(c *Ctor, args ...any) error {
			if err := c.InitBase(args...); err != nil {
				return err
			}
			tr.add("ctor Car base=%v", c.IsBase)
			return nil
		},
		Dtor: func(self *Instance, isBase bool) {
			tr.add("dtor Car base=%v", isBase)
		},
		Methods: map[string]MethodFunc{
			"park": func(self *Instance, _ ...any) (any, error) {
				tr.add("park")
				return nil, nil
			},
			"estimate_price": func(*Instance, ...any) (any, error) {
				return 15000, nil
			},
		},
		Async: map[string]AsyncFunc{
			"refuel": func(self *Instance, t *async.Task) error {
				liters, _ := t.Arg().(int)
				self.Lock()
				defer self.Unlock()
				self.Field("km_since_last_fuel").Set(0)
				return self.Raise("on_need_fuel", liters)
			},
		},
	}
}

func newFixture(t *testing.T, cfg *Config) *fixture {
	t.Helper()
	rt, err := NewRuntime(cfg)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	tr := &trace{}
	vehicle, err := rt.Define(vehicleDesc, vehicleImpl(tr))
	if err != nil {
		t.Fatalf("Define(Vehicle): %v", err)
	}
	car, err := rt.Define(carDesc, carImpl(tr))
	if err != nil {
		t.Fatalf("Define(Car): %v", err)
	}
	return &fixture{rt: rt, vehicle: vehicle, car: car, trace: tr}
}

func equalCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}
