// Package kernel provides the shared primitives of the marketplace domain model.
//
// UUID is the identifier value object used for orders. Identifiers of customers,
// vendors and products come from external systems and are carried as opaque
// strings by the order package instead.
package kernel
