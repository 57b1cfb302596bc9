package async

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/wippyai/classy/heap"
)

// Releaser is implemented by task arguments that own resources.
// Release runs exactly once when the task ends or exits early.
type Releaser interface {
	Release()
}

// Body is the code run by a task.
type Body func(t *Task) error

// exitSignal unwinds a body that called Task.Exit.
type exitSignal struct{}

// Task is one asynchronous invocation.
type Task struct {
	owner    any
	arg      any
	err      error
	engine   *Engine
	done     chan struct{}
	id       string
	name     string
	release  sync.Once
	handle   atomic.Uint32
	stop     atomic.Bool
	exited   atomic.Bool
	released atomic.Bool
}

// ID returns the task's unique identifier.
func (t *Task) ID() string { return t.id }

// Handle returns the task's slot in the engine's task table.
// The handle is zero once the task has detached or finished.
func (t *Task) Handle() heap.Handle { return heap.Handle(t.handle.Load()) }

// Name returns the label the task was started with.
func (t *Task) Name() string { return t.name }

// Owner returns the value the task was started for.
func (t *Task) Owner() any { return t.owner }

// Arg returns the opaque argument. It is nil after release.
func (t *Task) Arg() any {
	if t.released.Load() {
		return nil
	}
	return t.arg
}

// Done is closed when the body has ended.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the body ends and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// WaitContext is Wait bounded by ctx.
func (t *Task) WaitContext(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the body's error, or nil while it is still running.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Stop asks the body to end. Bodies observe it through Stopping.
func (t *Task) Stop() { t.stop.Store(true) }

// Stopping reports whether Stop was called.
func (t *Task) Stopping() bool { return t.stop.Load() }

// Exited reports whether the body left through Exit.
func (t *Task) Exited() bool { return t.exited.Load() }

// Exit ends the body early from inside it: the argument is released, the
// task detaches from the engine and the body's stack unwinds with deferred
// calls run. Exit must be called on the body's own goroutine.
//
// Exit unwinds by panicking. A body that recovers panics itself must pass
// the value to Repanic so the exit keeps unwinding.
func (t *Task) Exit() {
	t.exited.Store(true)
	t.releaseArg()
	t.engine.detach(t)
	panic(exitSignal{})
}

// IsExit reports whether a recovered value is the unwinding of Exit.
func IsExit(r any) bool {
	_, ok := r.(exitSignal)
	return ok
}

// Repanic panics again with r when it is the unwinding of Exit.
// Bodies call it first thing after recover.
func Repanic(r any) {
	if IsExit(r) {
		panic(r)
	}
}

func (t *Task) releaseArg() {
	t.release.Do(func() {
		t.released.Store(true)
		if r, ok := t.arg.(Releaser); ok {
			r.Release()
		}
	})
}
