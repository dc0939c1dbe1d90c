package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/pkg/guard"
)

var (
	ErrListReturnsQueryIsNotConstructed = errors.New(
		"ListReturnsQuery must be created via NewListReturnsQuery constructor",
	)
)

// ListReturnsQuery retrieves a page of return requests, newest first.
// Customers pass their own identifier as the scope; admins pass nil to see
// every customer's returns.
type ListReturnsQuery struct {
	scopeCustomerID *kernel.UUID
	status          *returns.Status
	limit           int
	offset          int

	guard guard.ConstructorGuard
}

// NewListReturnsQuery creates a paged return listing query.
func NewListReturnsQuery(
	scopeCustomerID *kernel.UUID,
	status *returns.Status,
	limit int,
	offset int,
) (ListReturnsQuery, error) {
	if scopeCustomerID != nil {
		if err := scopeCustomerID.Validate(); err != nil {
			return ListReturnsQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListReturnsQuery{}, err
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

	return ListReturnsQuery{
		scopeCustomerID: scopeCustomerID,
		status:          status,
		limit:           limit,
		offset:          offset,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListReturnsQuery) Validate() error {
	return q.guard.Validate(ErrListReturnsQueryIsNotConstructed)
}

// ListReturnsQueryResponse is one row of the return listing.
type ListReturnsQueryResponse struct {
	ID           kernel.UUID
	ReturnNumber string
	OrderID      kernel.UUID
	OrderNumber  string
	Status       returns.Status
	Type         returns.Type
	Reason       returns.Reason
	RefundAmount *kernel.Money
	CreatedAt    time.Time
}
