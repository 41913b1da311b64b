// Package kernel provides core domain primitives shared by the order service model.
//
// The package includes:
//   - OrderID: the "ORD-######" identifier allocated by the order store
//   - EventID: a UUID-backed identifier for published domain events
//   - Clock: the source of "now" for the domain, replaceable in tests
//
// Zero values of the identifiers are invalid and rejected by their Validate methods.
package kernel
