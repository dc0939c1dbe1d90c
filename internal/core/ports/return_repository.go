package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"
)

// ReturnRepository defines the persistence contract for return aggregates.
type ReturnRepository interface {
	// Add persists a new return aggregate with its items.
	// A clash on the unique return number surfaces as a conflict error.
	Add(ctx context.Context, aggregate *returns.Return) error

	// Update persists changes to an existing return aggregate.
	Update(ctx context.Context, aggregate *returns.Return) error

	// Get retrieves a return aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*returns.Return, error)

	// GetByOrder retrieves all returns filed against one order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Return, error)
}
