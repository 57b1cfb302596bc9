// Package object is the object model runtime: classes with single
// inheritance, structural interfaces, instance-bound dispatch, events,
// asynchronous methods and deterministic destruction.
//
// # Defining classes
//
// A class is a schema descriptor plus the bodies for the members it
// declares itself. The base class must be defined first:
//
//	rt, _ := object.NewRuntime(nil)
//
//	vehicle, err := rt.Define(vehicleDesc, object.Impl{
//	    Methods: map[string]object.MethodFunc{
//	        "estimate_price": func(self *object.Instance, _ ...any) (any, error) {
//	            return 1000, nil
//	        },
//	    },
//	})
//
// Define composes the layout and rejects name collisions, bad overrides,
// missing interface members and missing bodies.
//
// # Construction and destruction
//
// New allocates on the runtime heap; NewInPlace constructs into storage the
// caller owns. Construction binds every method slot root-first, so the most
// derived body wins, and then runs the most derived constructor. A
// constructor reaches its base through Ctor.InitBase.
//
// Destroy runs destructors from the most derived class to the root, exactly
// once. DestroyAndRelease also returns the heap slot. A Scope destroys what
// it created in reverse order:
//
//	scope := rt.NewScope()
//	defer scope.Close()
//
// # Dispatch, views and events
//
// Call goes through the instance's slots, so a Ref obtained with As calls
// the same body as the instance itself. View returns an interface-shaped
// alias whose fields and event slots are the object's own. Each event has
// a single handler slot; the last registration wins and raising an event
// without a handler does nothing.
//
// # Concurrency
//
// Asynchronous methods run on their own goroutine through the runtime's
// async engine; StartAsync returns immediately and Await blocks. Nothing is
// locked automatically: guard shared state with Instance.Lock, which the
// holding goroutine may take again.
package object
