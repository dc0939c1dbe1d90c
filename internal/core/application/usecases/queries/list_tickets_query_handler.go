package queries

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListTicketsQueryHandler reads ticket listings from the database.
type ListTicketsQueryHandler struct {
	db *gorm.DB
}

// NewListTicketsQueryHandler creates a handler for ticket listing queries.
func NewListTicketsQueryHandler(db *gorm.DB) ListTicketsQueryHandler {
	return ListTicketsQueryHandler{db: db}
}

// Handle executes the listing query, newest tickets first.
func (h ListTicketsQueryHandler) Handle(
	ctx context.Context,
	query ListTicketsQuery,
) ([]ListTicketsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "WHERE 1=1"
	args := make([]any, 0, 4)
	if query.scopeCustomerID != nil {
		where += " AND t.customer_id = ?"
		args = append(args, query.scopeCustomerID.String())
	}
	if query.status != nil {
		where += " AND t.status = ?"
		args = append(args, query.status.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.ticket_number,
			t.customer_id,
			t.order_id,
			t.subject,
			t.category,
			t.priority,
			t.status,
			(SELECT COUNT(*) FROM ticket_messages m WHERE m.ticket_id = t.id) AS message_count,
			t.created_at
		FROM tickets t
		`+where+`
		ORDER BY t.created_at DESC, t.id
		LIMIT ? OFFSET ?
	`, append(args, query.limit, query.offset)...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListTicketsQueryResponse, 0, query.limit)
	for rows.Next() {
		var (
			id, customerID                       uuid.UUID
			orderID                              uuid.NullUUID
			number, subject, category, prio, sts string
			messageCount                         int
			createdAt                            time.Time
		)
		if err = rows.Scan(
			&id, &number, &customerID, &orderID, &subject,
			&category, &prio, &sts, &messageCount, &createdAt,
		); err != nil {
			return nil, err
		}

		row, buildErr := buildTicketRow(
			id, customerID, orderID, number, subject, category, prio, sts)
		if buildErr != nil {
			return nil, buildErr
		}
		row.MessageCount = messageCount
		row.CreatedAt = createdAt
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func buildTicketRow(
	id, customerID uuid.UUID,
	orderID uuid.NullUUID,
	number, subject, category, prio, sts string,
) (ListTicketsQueryResponse, error) {
	ticketID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ListTicketsQueryResponse{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return ListTicketsQueryResponse{}, err
	}
	status, err := ticket.StatusFromString(sts)
	if err != nil {
		return ListTicketsQueryResponse{}, err
	}

	row := ListTicketsQueryResponse{
		ID:           ticketID,
		TicketNumber: number,
		CustomerID:   ownerID,
		Subject:      subject,
		Category:     ticket.Category(category),
		Priority:     ticket.Priority(prio),
		Status:       status,
	}
	if orderID.Valid {
		parentID, idErr := kernel.UUIDFromBytes(orderID.UUID[:])
		if idErr != nil {
			return ListTicketsQueryResponse{}, idErr
		}
		row.OrderID = &parentID
	}
	return row, nil
}
