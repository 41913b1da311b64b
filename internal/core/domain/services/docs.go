// Package services provides domain services of the order service that read or
// combine aggregates without belonging to one of them.
//
// The package includes:
//   - TrackingViewBuilder: projects an Order into the client-facing tracking snapshot
package services
