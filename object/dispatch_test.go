package object

import (
	stderrors "errors"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/schema"
)

func TestCallErrors(t *testing.T) {
	f := newFixture(t, nil)
	c, _ := f.rt.New(f.car)
	v, _ := f.rt.New(f.vehicle)

	tests := []struct {
		name string
		call func() (any, error)
		kind errors.Kind
	}{
		{"unknown method", func() (any, error) { return c.Call("fly") }, errors.KindNotFound},
		{"too many args", func() (any, error) { return c.Call("park", 1) }, errors.KindArity},
		{"missing arg", func() (any, error) { return c.Call("move") }, errors.KindArity},
		{"wrong type", func() (any, error) { return c.Call("move", "north") }, errors.KindTypeMismatch},
		{"out of range", func() (any, error) { return c.Call("move", int64(1)<<40) }, errors.KindTypeMismatch},
		{"derived method via base ref", func() (any, error) {
			ref, _ := c.As(f.vehicle)
			return ref.Call("park")
		}, errors.KindNotFound},
		{"nil instance", func() (any, error) { return Call(nil, "park") }, errors.KindInvalidInput},
		{"base as derived", func() (any, error) {
			_, err := v.As(f.car)
			return nil, err
		}, errors.KindTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error = %v, want *errors.Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s (%v)", e.Kind, tt.kind, err)
			}
		})
	}

	var zero Instance
	if _, err := zero.Call("park"); !stderrors.Is(err, errors.ErrNotAlive) {
		t.Errorf("Call on unconstructed = %v, want not alive", err)
	}
}

func TestCallBadResult(t *testing.T) {
	rt, _ := NewRuntime(nil)
	desc := schema.NewClass("Gauge").Method("read", wit.U8{}).MustBuild()
	gauge, _ := rt.Define(desc, Impl{Methods: map[string]MethodFunc{
		"read": func(*Instance, ...any) (any, error) { return 300, nil },
	}})
	inst, _ := rt.New(gauge)

	_, err := inst.Call("read")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindTypeMismatch || e.WitType != "u8" {
		t.Errorf("Call = %v, want u8 result mismatch", err)
	}
}

func TestRefMembers(t *testing.T) {
	f := newFixture(t, nil)
	c, _ := f.rt.New(f.car, 9)

	ref, err := c.As(f.vehicle)
	if err != nil {
		t.Fatalf("As: %v", err)
	}
	if ref.Instance() != c || ref.Class() != f.vehicle {
		t.Error("ref accessors")
	}
	if ref.Field("id").Int() != 9 {
		t.Errorf("id through ref = %d", ref.Field("id").Int())
	}
	if ref.Field("km_total") != nil {
		t.Error("derived field visible through base ref")
	}
	if _, err := ref.View("Moveable"); err != nil {
		t.Errorf("View through ref: %v", err)
	}
	if err := ref.Raise("on_need_fuel", 1); err == nil {
		t.Error("derived event raised through base ref")
	}
	if _, err := ref.Call("move", 3); err != nil {
		t.Fatalf("move: %v", err)
	}
	if c.Int("position") != 3 {
		t.Errorf("position = %d, want 3", c.Int("position"))
	}
}

func TestFieldAccess(t *testing.T) {
	f := newFixture(t, nil)
	c, _ := f.rt.New(f.car)

	if got := c.Get("km_total"); got != int64(0) {
		t.Errorf("zero km_total = %v (%T)", got, got)
	}
	if err := c.Set("km_total", 120); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := c.Get("km_total"); got != int64(120) {
		t.Errorf("km_total = %v (%T)", got, got)
	}
	if err := c.Set("id", "x"); err == nil {
		t.Error("Set with wrong type should fail")
	}
	if err := c.Set("nope", 1); err == nil {
		t.Error("Set of unknown field should fail")
	}
	if c.Get("nope") != nil || c.Field("nope") != nil {
		t.Error("unknown field should be nil")
	}

	km, _ := f.car.Layout().Field("km_total")
	if got := c.FieldAt(km.Offset); got == nil || got.Name() != "km_total" {
		t.Errorf("FieldAt(%d) = %v", km.Offset, got)
	}
	if c.FieldAt(km.Offset+1) != nil {
		t.Error("FieldAt inside a field should miss")
	}
}

func TestDefineErrors(t *testing.T) {
	rt, _ := NewRuntime(nil)
	base, _ := rt.Define(schema.NewClass("Base").Method("run", nil).MustBuild(), Impl{
		Methods: map[string]MethodFunc{"run": func(*Instance, ...any) (any, error) { return nil, nil }},
	})
	noop := func(*Instance, ...any) (any, error) { return nil, nil }
	orphanBase := schema.NewClass("Orphan").MustBuild()

	tests := []struct {
		name string
		desc *schema.Class
		impl Impl
		kind errors.Kind
	}{
		{"missing body", schema.NewClass("A").Method("go", nil).MustBuild(), Impl{}, errors.KindNotImplemented},
		{"missing async body", schema.NewClass("A").Async("go").MustBuild(),
			Impl{Methods: map[string]MethodFunc{"go": noop}}, errors.KindNotImplemented},
		{"undeclared body", schema.NewClass("A").MustBuild(),
			Impl{Methods: map[string]MethodFunc{"go": noop}}, errors.KindInvalidInput},
		{"undefined base", schema.NewClass("A").Extends(orphanBase).MustBuild(), Impl{}, errors.KindNotFound},
		{"duplicate name", base.Descriptor(), base.impl, errors.KindCollision},
		{"bad override", schema.NewClass("A").Extends(base.Descriptor()).Override("run", wit.S32{}).MustBuild(),
			Impl{Methods: map[string]MethodFunc{"run": noop}}, errors.KindBadOverride},
		{"root", schema.Object, Impl{}, errors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rt.Define(tt.desc, tt.impl)
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("Define = %v, want *errors.Error", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s (%v)", e.Kind, tt.kind, err)
			}
		})
	}
}

func TestDefineNamed(t *testing.T) {
	reg := schema.NewRegistry()
	if err := reg.Add(vehicleDesc); err != nil {
		t.Fatalf("Add: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Schemas = reg
	cfg.SymbolPrefix = "Test_"
	rt, _ := NewRuntime(cfg)

	vehicle, err := rt.DefineNamed("Vehicle", vehicleImpl(&trace{}))
	if err != nil {
		t.Fatalf("DefineNamed: %v", err)
	}
	if got, ok := rt.Class("Vehicle"); !ok || got != vehicle {
		t.Error("Class lookup")
	}
	if got := vehicle.Symbol("move"); got != "Test_Vehicle_move" {
		t.Errorf("Symbol = %q", got)
	}
	if got := vehicle.Symbol(""); got != "Test_Vehicle" {
		t.Errorf("class Symbol = %q", got)
	}
	if _, err := rt.DefineNamed("Car", Impl{}); err == nil {
		t.Error("unknown schema should fail")
	}

	bare, _ := NewRuntime(nil)
	if _, err := bare.DefineNamed("Vehicle", Impl{}); err == nil {
		t.Error("DefineNamed without a source should fail")
	}
	if names := rt.Classes(); len(names) != 1 || names[0] != vehicle {
		t.Errorf("Classes = %v", names)
	}
}

func TestClassFromOtherRuntime(t *testing.T) {
	f := newFixture(t, nil)
	other, _ := NewRuntime(nil)
	if _, err := other.New(f.vehicle); err == nil {
		t.Error("constructing a foreign class should fail")
	}
}
