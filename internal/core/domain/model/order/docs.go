// Package order provides the Order aggregate of the marketplace fulfillment
// domain: an order's identity, its vendor-owned line items and the status
// fields derived from them.
//
// The package includes:
//   - Order: The aggregate root enforcing lifecycle transitions and invariants
//   - LineItem: One vendor's product and quantity with its own delivery status
//   - Status, ItemStatus: Aggregate and per-item state enums
//   - DeriveAggregateStatus: The pure line item to aggregate status function
//
// Key business rules:
//   - Orders start Processing with every line item Pending
//   - Only Processing orders may be updated, shipped or cancelled by the customer path
//   - CSR and administrators may cancel any order that is not Delivered or Cancelled
//   - A vendor's delivery confirmation covers all of that vendor's line items
//   - Delivered and Cancelled are terminal
//
// The package performs no I/O. Time is passed in by the caller.
package order
