// Package services provides domain services that do not belong to a single
// aggregate root.
//
// The package includes:
//   - AccessPolicy: the declarative table deciding which caller roles may run
//     each fulfillment operation, and whether a cancel takes the privileged path
package services
