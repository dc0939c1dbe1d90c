// Package services provides domain services that implement business logic not
// naturally belonging to a single aggregate root.
//
// The package includes:
//   - VideoLinkValidator: decides whether an external URL is acceptable as
//     package-opening video evidence for orders and returns
package services
