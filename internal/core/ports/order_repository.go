// Package ports defines the contracts between the application core and
// infrastructure: repositories per aggregate, the unit of work, and the
// outbound collaborators (notifier, media store, invoice renderer).
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	// A clash on the unique order number surfaces as a conflict error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)
}
