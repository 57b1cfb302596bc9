package metrics

import (
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wippyai/classy/async"
	"github.com/wippyai/classy/heap"
)

func names(id uint32) string {
	return map[uint32]string{1: "Vehicle", 2: "Car"}[id]
}

func TestCollector_Heap(t *testing.T) {
	c := New(names)
	tbl := heap.NewTable(2)
	tbl.Subscribe(c)

	h, _ := tbl.Insert(1, "v")
	tbl.Insert(2, "c")
	tbl.Insert(2, "over")
	tbl.Remove(h)

	if got := testutil.ToFloat64(c.allocated.WithLabelValues("Car")); got != 1 {
		t.Errorf("Car allocations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.live); got != 1 {
		t.Errorf("live = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.exhausted); got != 1 {
		t.Errorf("exhausted = %v, want 1", got)
	}
}

func TestCollector_Lifecycle(t *testing.T) {
	c := New(nil)
	c.ObjectConstructed("Car")
	c.ObjectConstructed("Car")
	c.ObjectDestroyed("Car")

	if got := testutil.ToFloat64(c.constructed.WithLabelValues("Car")); got != 2 {
		t.Errorf("constructed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.destroyed.WithLabelValues("Car")); got != 1 {
		t.Errorf("destroyed = %v, want 1", got)
	}
}

func TestCollector_Tasks(t *testing.T) {
	c := New(nil)
	e := async.NewEngine()
	e.Subscribe(c)

	ok, _ := e.Start("ok", nil, nil, func(*async.Task) error { return nil })
	ok.Wait()
	bad, _ := e.Start("bad", nil, nil, func(*async.Task) error { return stderrors.New("x") })
	bad.Wait()

	tests := []struct {
		event string
		want  float64
	}{
		{"started", 2},
		{"completed", 1},
		{"failed", 1},
		{"exited", 0},
	}
	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			if got := testutil.ToFloat64(c.tasks.WithLabelValues(tt.event)); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
	if got := testutil.ToFloat64(c.running); got != 0 {
		t.Errorf("running = %v, want 0", got)
	}
}

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	first := New(nil)
	if err := first.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	second := New(nil)
	if err := second.Register(reg); err != nil {
		t.Fatalf("second Register: %v", err)
	}

	second.ObjectConstructed("Car")
	if got := testutil.ToFloat64(first.constructed.WithLabelValues("Car")); got != 1 {
		t.Errorf("shared counter = %v, want 1", got)
	}

	first.ObjectDestroyed("Car")
	if n, err := testutil.GatherAndCount(reg, "classy_objects_constructed_total", "classy_objects_destroyed_total"); err != nil || n != 2 {
		t.Errorf("GatherAndCount = %d, %v", n, err)
	}

	first.Unregister(reg)
	if n, _ := testutil.GatherAndCount(reg); n != 0 {
		t.Errorf("metrics left after Unregister: %d", n)
	}
}
