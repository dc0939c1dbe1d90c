package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the order detail view from the orders,
// order_items, and status_history tables.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the detail query. Missing orders, and orders outside the
// caller's scope, return an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.loadOrder(ctx, query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Items, err = h.loadItems(ctx, query.orderID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.History, err = loadStatusHistory(ctx, h.db, audit.EntityOrder, query.orderID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrder(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	var (
		id, customerID            uuid.UUID
		number, status, payStatus string
		amount, currency          string
		tracking, videoURL        sql.NullString
		confirmedAt               sql.NullTime
		createdAt                 time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			status,
			payment_status,
			total_amount,
			currency,
			tracking_number,
			video_url,
			confirmed_at,
			created_at
		FROM orders
		WHERE id = ?
	`, query.orderID.String()).Row()

	err := row.Scan(
		&id, &number, &customerID, &status, &payStatus,
		&amount, &currency, &tracking, &videoURL, &confirmedAt, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	custID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if query.scopeCustomerID != nil && !custID.IsEqual(*query.scopeCustomerID) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.orderID)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	st, err := order.StatusFromString(status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	pst, err := order.PaymentStatusFromString(payStatus)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	totalAmount, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		ID:            orderID,
		OrderNumber:   number,
		CustomerID:    custID,
		Status:        st,
		PaymentStatus: pst,
		TotalAmount:   totalAmount,
		CreatedAt:     createdAt,
	}
	if tracking.Valid {
		resp.TrackingNumber = tracking.String
	}
	if videoURL.Valid {
		resp.VideoURL = videoURL.String
	}
	if confirmedAt.Valid {
		confirmed := confirmedAt.Time
		resp.ConfirmedAt = &confirmed
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_name,
			sku,
			quantity,
			unit_price,
			subtotal,
			currency
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderItemResponse, 0)
	for rows.Next() {
		var (
			id                 uuid.UUID
			name, unitPrice    string
			subtotal, currency string
			sku                sql.NullString
			quantity           int
		)
		if err = rows.Scan(&id, &name, &sku, &quantity, &unitPrice, &subtotal, &currency); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(unitPrice, currency)
		if priceErr != nil {
			return nil, priceErr
		}
		sub, subErr := kernel.NewMoney(subtotal, currency)
		if subErr != nil {
			return nil, subErr
		}

		item := GetOrderItemResponse{
			ID:          itemID,
			ProductName: name,
			Quantity:    quantity,
			UnitPrice:   price,
			Subtotal:    sub,
		}
		if sku.Valid {
			item.SKU = sku.String
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// loadStatusHistory reads the status trail for any tracked entity, ordered
// oldest first. Shared by the order and return detail handlers.
func loadStatusHistory(
	ctx context.Context,
	db *gorm.DB,
	entityType string,
	entityID kernel.UUID,
) ([]StatusHistoryResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			status,
			changed_by,
			notes,
			changed_at
		FROM status_history
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY changed_at, id
	`, entityType, entityID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusHistoryResponse, 0)
	for rows.Next() {
		var (
			status    string
			changedBy uuid.UUID
			notes     sql.NullString
			changedAt time.Time
		)
		if err = rows.Scan(&status, &changedBy, &notes, &changedAt); err != nil {
			return nil, err
		}

		actorID, idErr := kernel.UUIDFromBytes(changedBy[:])
		if idErr != nil {
			return nil, idErr
		}

		entry := StatusHistoryResponse{
			Status:    status,
			ChangedBy: actorID,
			ChangedAt: changedAt,
		}
		if notes.Valid {
			entry.Notes = notes.String
		}
		history = append(history, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
