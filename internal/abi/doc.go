// Package abi provides the value rules shared by the layout composer and the
// object runtime.
//
// Field, parameter and result types are WIT value types. This package maps
// each of them to its Go representation, produces zero values for freshly
// allocated objects, coerces call arguments into the declared type and
// compares types when signatures are matched across an ancestor chain.
//
// # Contents
//
//   - coerce.go: Go value coercion into WIT value types
//   - types.go: zero values, names and type identity
//   - helpers.go: alignment and naming utilities
//
// This package is internal to the runtime.
package abi
