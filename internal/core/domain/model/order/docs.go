// Package order provides the Order aggregate of the order service and the status
// state machine that drives it.
//
// The package includes:
//   - Order: the aggregate root holding the purchase, its derived fields and transition stamps
//   - Status: the lifecycle pending → confirmed → preparing → out_for_delivery → delivered,
//     with cancelled as a side branch
//   - Item: an immutable order line
//   - Event: facts recorded on creation and on every status change
//
// Key business rules:
//   - customer, restaurant, items and delivery address are required
//   - the total is derived from the items unless supplied
//   - statuses only move forward; delivered and cancelled are terminal
//   - orders can be cancelled only while pending, confirmed or preparing
package order
