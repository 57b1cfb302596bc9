// Package layout composes the flattened member layout of a class.
//
// Compose walks a class descriptor's ancestor chain root-first and produces
// the ordered set of fields, event slots, method slots and interface
// accessors every instance of the class carries, together with the
// canonical byte layout of its fields.
//
// # Composition Rules
//
//   - Fields, events and methods share one namespace across the chain; a
//     name is declared once. Overrides are the only redeclaration allowed.
//   - An override must name an inherited method with an identical signature.
//   - Interfaces contribute no storage. Each member an interface requires must
//     be declared by the implementing class or one of its ancestors, with the
//     same type or signature.
//   - An interface is listed at most once along the chain.
//
// # Byte Layout
//
// Every ancestor's fields form a prefix of the derived layout: a level starts
// after its base's fields, padded to the base alignment, so the offset of a
// field never changes between a class and any class derived from it.
//
//	info := layout.NewCalculator().Calculate(wit.S32{})
//	// info.Size == 4, info.Align == 4
//
//	l, err := layout.Compose(car, layout.Options{MaxDepth: 9})
//	slot, _ := l.Field("position")
//	// slot.Offset, slot.Owner
package layout
