package queries

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order listings straight from the database,
// bypassing the aggregates. Rows carry only what the listing screens need.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d of %d orders\n", len(page.Orders), page.Total)
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query and returns one page plus the total
// match count.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersPage, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersPage{}, err
	}

	where := "WHERE 1=1"
	args := make([]any, 0, 4)
	if query.scopeCustomerID != nil {
		where += " AND o.customer_id = ?"
		args = append(args, query.scopeCustomerID.String())
	}
	if query.status != nil {
		where += " AND o.status = ?"
		args = append(args, query.status.String())
	}

	var total int64
	err := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM orders o "+where, args...,
	).Scan(&total).Error
	if err != nil {
		return ListOrdersPage{}, err
	}

	direction := "ASC"
	if query.sortDesc {
		direction = "DESC"
	}
	// sortBy is constrained to the two known column names by the constructor.
	orderBy := fmt.Sprintf("ORDER BY o.%s %s, o.id", query.sortBy, direction)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.customer_id,
			o.status,
			o.payment_status,
			o.total_amount,
			o.currency,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id),
			o.created_at
		FROM orders o
		`+where+`
		`+orderBy+`
		LIMIT ? OFFSET ?
	`, append(args, query.limit, query.offset)...).Rows()
	if err != nil {
		return ListOrdersPage{}, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0, query.limit)
	for rows.Next() {
		var (
			id, customerID            uuid.UUID
			number, status, payStatus string
			amount, currency          string
			itemCount                 int
			createdAt                 time.Time
		)
		if err = rows.Scan(
			&id, &number, &customerID, &status, &payStatus,
			&amount, &currency, &itemCount, &createdAt,
		); err != nil {
			return ListOrdersPage{}, err
		}

		resp, convErr := buildOrderRow(
			id, customerID, number, status, payStatus, amount, currency, itemCount, createdAt)
		if convErr != nil {
			return ListOrdersPage{}, convErr
		}
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return ListOrdersPage{}, err
	}

	return ListOrdersPage{Orders: orders, Total: total}, nil
}

func buildOrderRow(
	id, customerID uuid.UUID,
	number, status, payStatus, amount, currency string,
	itemCount int,
	createdAt time.Time,
) (ListOrdersQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	custID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	st, err := order.StatusFromString(status)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	pst, err := order.PaymentStatusFromString(payStatus)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	totalAmount, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		ID:            orderID,
		OrderNumber:   number,
		CustomerID:    custID,
		Status:        st,
		PaymentStatus: pst,
		TotalAmount:   totalAmount,
		ItemCount:     itemCount,
		CreatedAt:     createdAt,
	}, nil
}
