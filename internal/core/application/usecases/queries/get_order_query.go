package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its items and full status history.
// Customers pass their own identifier as the scope; orders belonging to other
// customers come back as not found. Admins pass a nil scope.
type GetOrderQuery struct {
	orderID         kernel.UUID
	scopeCustomerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a single-order detail query.
func NewGetOrderQuery(orderID kernel.UUID, scopeCustomerID *kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if scopeCustomerID != nil {
		if err := scopeCustomerID.Validate(); err != nil {
			return GetOrderQuery{}, err
		}
	}

	return GetOrderQuery{
		orderID:         orderID,
		scopeCustomerID: scopeCustomerID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderItemResponse is one line item of the order detail view.
type GetOrderItemResponse struct {
	ID          kernel.UUID
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   kernel.Money
	Subtotal    kernel.Money
}

// StatusHistoryResponse is one entry of an entity's status trail.
type StatusHistoryResponse struct {
	Status    string
	ChangedBy kernel.UUID
	Notes     string
	ChangedAt time.Time
}

// GetOrderQueryResponse is the full order detail view.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	CustomerID     kernel.UUID
	Status         order.Status
	PaymentStatus  order.PaymentStatus
	TotalAmount    kernel.Money
	TrackingNumber string
	VideoURL       string
	Items          []GetOrderItemResponse
	History        []StatusHistoryResponse
	ConfirmedAt    *time.Time
	CreatedAt      time.Time
}
