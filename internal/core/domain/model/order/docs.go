// Package order provides domain entities and business logic for order
// management. It implements the Order aggregate root with lifecycle
// management and validated state transitions.
//
// The package includes:
//   - Order: the aggregate root that owns order lines and drives the
//     fulfillment lifecycle
//   - Item: an order line whose subtotal is always derived from quantity and
//     unit price
//   - Status: a state machine with an explicit adjacency graph for
//     admin-initiated transitions
//   - PaymentStatus: the independent payment-side state
//
// Key business rules:
//   - Orders are created in pending_approval and must be approved by their
//     owning customer, who must accept the terms
//   - The total amount equals the exact sum of item subtotals at creation
//   - Admin status changes are validated against the adjacency graph; the
//     return flow flips order status through dedicated methods with their own
//     preconditions
//   - Returns may only be opened against delivered or completed orders
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
