// Package classy is a class-based object model for Go programs: single
// inheritance with overridable methods, interfaces with aliasing views,
// per-instance events, ordered construction and destruction, and
// asynchronous methods on their own goroutines.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	classy/
//	├── schema/          Class and interface descriptors, schema registry
//	├── layout/          Flattened member layout and canonical byte offsets
//	├── object/          Runtime: define, construct, dispatch, views, events
//	├── async/           Goroutine-per-call engine with handles and thread budget
//	├── heap/            Handle table for engine-allocated objects
//	├── metrics/         Prometheus collector over object and task lifecycles
//	├── wasmimpl/        Method bodies backed by WebAssembly exports
//	├── errors/          Structured error types for debugging
//	├── examples/        Sample vehicle hierarchy
//	└── cmd/classyc/     Demo and layout inspector
//
// # Quick Start
//
// Describe a class, supply its bodies, and construct objects:
//
//	vehicle := schema.NewClass("Vehicle").
//	    Field("position", wit.S32{}).
//	    Method("estimate_price", wit.S32{}).
//	    MustBuild()
//
//	rt, _ := object.NewRuntime(nil)
//	cls, err := rt.Define(vehicle, object.Impl{
//	    Methods: map[string]object.MethodFunc{
//	        "estimate_price": func(*object.Instance, ...any) (any, error) {
//	            return 1000, nil
//	        },
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := rt.New(cls)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.DestroyAndRelease(v)
//
//	price, _ := v.Call("estimate_price") // int32(1000)
//
// # Inheritance
//
// A derived class extends a defined base. Its layout begins with the base's
// layout unchanged, so base-typed access through Instance.As sees the same
// fields, and calls dispatch to the most derived override.
//
// # Thread Safety
//
// Runtime and Class are safe for concurrent use. Field access on an
// Instance is not synchronized; asynchronous bodies that share state take
// the instance's re-entrant lock with Instance.Lock.
package classy
