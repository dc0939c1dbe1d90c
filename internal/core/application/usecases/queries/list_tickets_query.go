package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/pkg/guard"
)

var (
	ErrListTicketsQueryIsNotConstructed = errors.New(
		"ListTicketsQuery must be created via NewListTicketsQuery constructor",
	)
)

// ListTicketsQuery retrieves a page of support tickets, newest first.
// Customers pass their own identifier as the scope; admins pass nil to see
// every customer's tickets.
type ListTicketsQuery struct {
	scopeCustomerID *kernel.UUID
	status          *ticket.Status
	limit           int
	offset          int

	guard guard.ConstructorGuard
}

// NewListTicketsQuery creates a paged ticket listing query.
func NewListTicketsQuery(
	scopeCustomerID *kernel.UUID,
	status *ticket.Status,
	limit int,
	offset int,
) (ListTicketsQuery, error) {
	if scopeCustomerID != nil {
		if err := scopeCustomerID.Validate(); err != nil {
			return ListTicketsQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListTicketsQuery{}, err
		}
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return ListTicketsQuery{
		scopeCustomerID: scopeCustomerID,
		status:          status,
		limit:           limit,
		offset:          offset,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListTicketsQuery) Validate() error {
	return q.guard.Validate(ErrListTicketsQueryIsNotConstructed)
}

// ListTicketsQueryResponse is one row of the ticket listing.
type ListTicketsQueryResponse struct {
	ID           kernel.UUID
	TicketNumber string
	CustomerID   kernel.UUID
	OrderID      *kernel.UUID
	Subject      string
	Category     ticket.Category
	Priority     ticket.Priority
	Status       ticket.Status
	MessageCount int
	CreatedAt    time.Time
}
