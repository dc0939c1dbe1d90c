// Package kernel provides shared value objects used across all aggregates in
// the order management domain.
//
// The package includes:
//   - UUID: an immutable identifier wrapping github.com/google/uuid
//   - Money: a currency-tagged decimal amount with two fractional digits
//
// Value objects in this package are immutable and validated at construction.
// The zero value of every type is invalid and detectable via Validate, which
// lets repositories and commands reject objects that bypassed a constructor.
package kernel
