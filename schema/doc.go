// Package schema defines the immutable descriptors of classes and interfaces.
//
// A class descriptor names exactly one base (the root sentinel Object when
// the class has no other ancestor), the interfaces it implements and the
// fields, events and methods it declares itself. Inherited members are not
// repeated; the layout package flattens the ancestor chain.
//
//	moveable := schema.NewInterface("Moveable").
//		Field("position", wit.S32{}).
//		Event("on_move", wit.S32{}).
//		Method("move", nil, wit.S32{}, wit.S32{}).
//		MustBuild()
//
//	vehicle := schema.NewClass("Vehicle").
//		Implements(moveable).
//		Field("position", wit.S32{}).
//		Event("on_move", wit.S32{}).
//		Method("move", nil, wit.S32{}, wit.S32{}).
//		MustBuild()
//
//	car := schema.NewClass("Car").
//		Extends(vehicle).
//		Override("move", nil, wit.S32{}, wit.S32{}).
//		MustBuild()
//
// Build returns a descriptor that is never mutated afterwards; accessors
// hand out copies of the member lists.
package schema
