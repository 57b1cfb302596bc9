package metrics

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/classy/async"
	"github.com/wippyai/classy/heap"
)

// Namespace prefixes every metric name.
const Namespace = "classy"

// ClassNamer maps heap type IDs to class names for labels.
type ClassNamer func(typeID uint32) string

// Collector exports object and task lifecycle metrics.
// It observes the object heap and the async engine; construction and
// destruction are reported by the runtime directly since in-place objects
// never touch the heap.
type Collector struct {
	names       ClassNamer
	constructed *prometheus.CounterVec
	destroyed   *prometheus.CounterVec
	allocated   *prometheus.CounterVec
	exhausted   prometheus.Counter
	live        prometheus.Gauge
	tasks       *prometheus.CounterVec
	running     prometheus.Gauge
}

// New creates an unregistered collector.
func New(names ClassNamer) *Collector {
	if names == nil {
		names = func(uint32) string { return "unknown" }
	}
	return &Collector{
		names: names,
		constructed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "objects_constructed_total",
			Help:      "Objects whose construction chain completed.",
		}, []string{"class"}),
		destroyed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "objects_destroyed_total",
			Help:      "Objects whose destruction chain ran.",
		}, []string{"class"}),
		allocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "heap_allocations_total",
			Help:      "Engine allocations by class.",
		}, []string{"class"}),
		exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "heap_exhausted_total",
			Help:      "Allocations refused at heap capacity.",
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "heap_live_objects",
			Help:      "Engine-allocated objects not yet released.",
		}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "async_tasks_total",
			Help:      "Asynchronous method invocations by outcome.",
		}, []string{"event"}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "async_tasks_running",
			Help:      "Asynchronous bodies currently running.",
		}),
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.constructed, c.destroyed, c.allocated, c.exhausted,
		c.live, c.tasks, c.running,
	}
}

// Register adds every metric to r. Metrics already registered by an
// identical collector are adopted so several runtimes can share a registry.
func (c *Collector) Register(r prometheus.Registerer) error {
	for _, m := range c.collectors() {
		if err := r.Register(m); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !stderrors.As(err, &are) {
				return err
			}
			c.adopt(m, are.ExistingCollector)
		}
	}
	return nil
}

func (c *Collector) adopt(mine, existing prometheus.Collector) {
	switch mine {
	case c.constructed:
		c.constructed = existing.(*prometheus.CounterVec)
	case c.destroyed:
		c.destroyed = existing.(*prometheus.CounterVec)
	case c.allocated:
		c.allocated = existing.(*prometheus.CounterVec)
	case c.exhausted:
		c.exhausted = existing.(prometheus.Counter)
	case c.live:
		c.live = existing.(prometheus.Gauge)
	case c.tasks:
		c.tasks = existing.(*prometheus.CounterVec)
	case c.running:
		c.running = existing.(prometheus.Gauge)
	}
}

// Unregister removes the metrics from r.
func (c *Collector) Unregister(r prometheus.Registerer) {
	for _, m := range c.collectors() {
		r.Unregister(m)
	}
}

// ObjectConstructed counts a completed construction chain.
func (c *Collector) ObjectConstructed(class string) {
	c.constructed.WithLabelValues(class).Inc()
}

// ObjectDestroyed counts a completed destruction chain.
func (c *Collector) ObjectDestroyed(class string) {
	c.destroyed.WithLabelValues(class).Inc()
}

// OnHeapEvent implements heap.Observer.
func (c *Collector) OnHeapEvent(e heap.Event) {
	switch e.Type {
	case heap.EventAllocated:
		c.allocated.WithLabelValues(c.names(e.TypeID)).Inc()
		c.live.Inc()
	case heap.EventReleased:
		c.live.Dec()
	case heap.EventExhausted:
		c.exhausted.Inc()
	}
}

// OnTaskEvent implements async.Observer.
func (c *Collector) OnTaskEvent(e async.Event) {
	c.tasks.WithLabelValues(e.Type.String()).Inc()
	switch e.Type {
	case async.EventStarted:
		c.running.Inc()
	case async.EventCompleted, async.EventFailed, async.EventExited:
		c.running.Dec()
	}
}

var (
	_ heap.Observer  = (*Collector)(nil)
	_ async.Observer = (*Collector)(nil)
)
