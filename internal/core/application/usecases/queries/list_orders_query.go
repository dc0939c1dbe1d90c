package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)

	ErrUnknownSortField = errors.New("sort field must be created_at or total_amount")
)

// Sort field names accepted by NewListOrdersQuery.
const (
	SortByCreatedAt = "created_at"
	SortByTotal     = "total_amount"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListOrdersQuery retrieves a page of orders. Customers pass their own
// identifier as the scope; admins pass a nil scope to list across all
// customers. Status filtering and sorting are optional.
//
// Example:
//
//	query, err := NewListOrdersQuery(&customerID, nil, SortByCreatedAt, true, 20, 0)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	scopeCustomerID *kernel.UUID
	status          *order.Status
	sortBy          string
	sortDesc        bool
	limit           int
	offset          int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paged order listing query. A zero or negative
// limit falls back to the default page size; limits above the maximum are
// clamped.
func NewListOrdersQuery(
	scopeCustomerID *kernel.UUID,
	status *order.Status,
	sortBy string,
	sortDesc bool,
	limit int,
	offset int,
) (ListOrdersQuery, error) {
	if scopeCustomerID != nil {
		if err := scopeCustomerID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	if sortBy == "" {
		sortBy = SortByCreatedAt
	}
	if sortBy != SortByCreatedAt && sortBy != SortByTotal {
		return ListOrdersQuery{}, ErrUnknownSortField
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

	return ListOrdersQuery{
		scopeCustomerID: scopeCustomerID,
		status:          status,
		sortBy:          sortBy,
		sortDesc:        sortDesc,
		limit:           limit,
		offset:          offset,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryResponse is one row of the order listing.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerID    kernel.UUID
	Status        order.Status
	PaymentStatus order.PaymentStatus
	TotalAmount   kernel.Money
	ItemCount     int
	CreatedAt     time.Time
}

// ListOrdersPage carries one page of results together with the total number
// of rows matching the filters, so callers can render pagination.
type ListOrdersPage struct {
	Orders []ListOrdersQueryResponse
	Total  int64
}
