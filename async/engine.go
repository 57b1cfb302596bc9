package async

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/pborman/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/wippyai/classy/errors"
	"github.com/wippyai/classy/heap"
)

// TaskTypeID tags task entries in the engine's handle table.
const TaskTypeID uint32 = 1

var (
	ErrNoThreads = stderrors.New("thread budget exhausted")
	ErrClosed    = stderrors.New("engine closed")
)

// Config holds configuration for an Engine.
type Config struct {
	// MaxThreads bounds concurrently running bodies. Zero means unbounded.
	// Starting a body beyond the bound fails instead of queueing.
	MaxThreads int64

	// Synchronous runs bodies inline on the caller's goroutine and returns
	// an already finished task.
	Synchronous bool
}

// DefaultConfig returns an unbounded asynchronous configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// EventType tells what happened to a task.
type EventType uint8

const (
	EventStarted EventType = iota
	EventCompleted
	EventFailed
	EventExited
	EventRejected
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventExited:
		return "exited"
	case EventRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Event is a task lifecycle notification.
// Task is nil for EventRejected.
type Event struct {
	Task *Task
	Err  error
	Name string
	Type EventType
}

// Observer receives task lifecycle notifications. Terminal events are
// delivered on the task's goroutine before Wait returns.
type Observer interface {
	OnTaskEvent(Event)
}

// Engine starts bodies on their own goroutines and tracks them in a
// handle table until they end or detach.
type Engine struct {
	sem       *semaphore.Weighted
	tasks     *heap.Table
	observers []Observer
	wg        sync.WaitGroup
	obsMu     sync.RWMutex
	mu        sync.Mutex
	cfg       Config
	closed    bool
}

// NewEngine creates an engine with default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(nil)
}

// NewEngineWithConfig creates an engine. A nil config uses defaults.
func NewEngineWithConfig(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		cfg:   *cfg,
		tasks: heap.NewTable(0),
	}
	if cfg.MaxThreads > 0 {
		e.sem = semaphore.NewWeighted(cfg.MaxThreads)
	}
	return e
}

// Synchronous reports whether bodies run inline.
func (e *Engine) Synchronous() bool { return e.cfg.Synchronous }

// Subscribe adds a lifecycle observer.
func (e *Engine) Subscribe(o Observer) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	e.observers = append(e.observers, o)
}

// Start runs body for owner and returns without waiting for it.
// The name labels logs and errors. When no goroutine can be started
// the argument is released and a thread-creation error is returned.
func (e *Engine) Start(name string, owner, arg any, body Body) (*Task, error) {
	t := &Task{
		id:     uuid.New(),
		name:   name,
		owner:  owner,
		arg:    arg,
		engine: e,
		done:   make(chan struct{}),
	}

	if body == nil {
		t.releaseArg()
		return nil, errors.InvalidInput(errors.PhaseAsync, "nil body for "+name)
	}

	if err := e.admit(t); err != nil {
		t.releaseArg()
		e.notify(Event{Type: EventRejected, Name: name, Err: err})
		Logger().Warn("cannot start task",
			zap.String("method", name),
			zap.Error(err))
		return nil, errors.ThreadCreationFailed(name, err)
	}

	Logger().Debug("task started",
		zap.String("task", t.id),
		zap.String("method", name),
		zap.Bool("synchronous", e.cfg.Synchronous))
	e.notify(Event{Type: EventStarted, Task: t, Name: name})

	if e.cfg.Synchronous {
		e.run(t, body)
		return t, nil
	}
	go e.run(t, body)
	return t, nil
}

// admit reserves a thread token and a table slot.
func (e *Engine) admit(t *Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.sem != nil && !e.cfg.Synchronous && !e.sem.TryAcquire(1) {
		return ErrNoThreads
	}
	h, err := e.tasks.Insert(TaskTypeID, t)
	if err != nil {
		e.releaseToken()
		return err
	}
	t.handle.Store(uint32(h))
	e.wg.Add(1)
	return nil
}

func (e *Engine) releaseToken() {
	if e.sem != nil && !e.cfg.Synchronous {
		e.sem.Release(1)
	}
}

func (e *Engine) run(t *Task, body Body) {
	defer func() {
		if r := recover(); r != nil {
			if !IsExit(r) {
				t.err = errors.Panicked(errors.PhaseAsync, []string{t.name}, r)
			}
		}
		t.releaseArg()
		e.detach(t)
		e.releaseToken()

		ev := Event{Task: t, Name: t.name, Err: t.err}
		switch {
		case t.Exited():
			ev.Type = EventExited
		case t.err != nil:
			ev.Type = EventFailed
			Logger().Warn("task failed",
				zap.String("task", t.id),
				zap.String("method", t.name),
				zap.Error(t.err))
		default:
			ev.Type = EventCompleted
		}
		e.notify(ev)

		close(t.done)
		e.wg.Done()
	}()

	t.err = body(t)
}

// detach drops the task's table entry once.
func (e *Engine) detach(t *Task) {
	if h := heap.Handle(t.handle.Swap(0)); h != 0 {
		e.tasks.Remove(h)
	}
}

// Lookup returns the running task holding handle.
func (e *Engine) Lookup(h heap.Handle) (*Task, bool) {
	v, ok := e.tasks.GetTyped(h, TaskTypeID)
	if !ok {
		return nil, false
	}
	return v.(*Task), true
}

// Running returns the number of tasks that have neither ended nor detached.
func (e *Engine) Running() int {
	return e.tasks.Len()
}

// Close rejects new tasks and waits for started ones to end.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return e.tasks.Close()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) notify(ev Event) {
	e.obsMu.RLock()
	defer e.obsMu.RUnlock()
	for _, o := range e.observers {
		o.OnTaskEvent(ev)
	}
}
