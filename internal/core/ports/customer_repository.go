package ports

import (
	"context"

	"atelier/internal/core/domain/model/customer"
	"atelier/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates.
type CustomerRepository interface {
	// Add persists a new customer aggregate.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer aggregate,
	// including the denormalized purchase counters.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetByUserID retrieves the customer linked to a user identity.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*customer.Customer, error)
}
