package queries

import (
	"context"
	"database/sql"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListReturnsQueryHandler reads return listings from the database, joining
// the parent order for its human-readable number.
type ListReturnsQueryHandler struct {
	db *gorm.DB
}

// NewListReturnsQueryHandler creates a handler for return listing queries.
func NewListReturnsQueryHandler(db *gorm.DB) ListReturnsQueryHandler {
	return ListReturnsQueryHandler{db: db}
}

// Handle executes the listing query, newest returns first.
func (h ListReturnsQueryHandler) Handle(
	ctx context.Context,
	query ListReturnsQuery,
) ([]ListReturnsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "WHERE 1=1"
	args := make([]any, 0, 4)
	if query.scopeCustomerID != nil {
		where += " AND r.customer_id = ?"
		args = append(args, query.scopeCustomerID.String())
	}
	if query.status != nil {
		where += " AND r.status = ?"
		args = append(args, query.status.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.return_number,
			r.order_id,
			o.order_number,
			r.status,
			r.return_type,
			r.reason,
			r.refund_amount,
			r.currency,
			r.created_at
		FROM returns r
		JOIN orders o ON o.id = r.order_id
		`+where+`
		ORDER BY r.created_at DESC, r.id
		LIMIT ? OFFSET ?
	`, append(args, query.limit, query.offset)...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListReturnsQueryResponse, 0, query.limit)
	for rows.Next() {
		var (
			id, orderID                 uuid.UUID
			number, orderNumber, status string
			returnType, reason          string
			refundAmount, currency      sql.NullString
			createdAt                   time.Time
		)
		if err = rows.Scan(
			&id, &number, &orderID, &orderNumber, &status,
			&returnType, &reason, &refundAmount, &currency, &createdAt,
		); err != nil {
			return nil, err
		}

		returnID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		parentID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		st, stErr := returns.StatusFromString(status)
		if stErr != nil {
			return nil, stErr
		}

		resp := ListReturnsQueryResponse{
			ID:           returnID,
			ReturnNumber: number,
			OrderID:      parentID,
			OrderNumber:  orderNumber,
			Status:       st,
			Type:         returns.Type(returnType),
			Reason:       returns.Reason(reason),
			CreatedAt:    createdAt,
		}
		if refundAmount.Valid && currency.Valid {
			amount, amountErr := kernel.NewMoney(refundAmount.String, currency.String)
			if amountErr != nil {
				return nil, amountErr
			}
			resp.RefundAmount = &amount
		}
		result = append(result, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
