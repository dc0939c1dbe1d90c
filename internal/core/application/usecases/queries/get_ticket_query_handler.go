package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTicketQueryHandler reads one ticket with its message thread.
type GetTicketQueryHandler struct {
	db *gorm.DB
}

// NewGetTicketQueryHandler creates a handler for ticket detail queries.
func NewGetTicketQueryHandler(db *gorm.DB) GetTicketQueryHandler {
	return GetTicketQueryHandler{db: db}
}

// Handle executes the detail query.
func (h GetTicketQueryHandler) Handle(
	ctx context.Context,
	query GetTicketQuery,
) (GetTicketQueryResponse, error) {
	response, err := h.loadTicket(ctx, query)
	if err != nil {
		return GetTicketQueryResponse{}, err
	}

	response.Messages, err = h.loadMessages(ctx, query.ticketID)
	if err != nil {
		return GetTicketQueryResponse{}, err
	}

	return response, nil
}

func (h GetTicketQueryHandler) loadTicket(
	ctx context.Context,
	query GetTicketQuery,
) (GetTicketQueryResponse, error) {
	var (
		id, customerID                                uuid.UUID
		orderID, assigneeID                           uuid.NullUUID
		number, subject, category, prio, statusString string
		resolvedAt                                    sql.NullTime
		createdAt                                     time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ticket_number,
			customer_id,
			order_id,
			assignee_id,
			subject,
			category,
			priority,
			status,
			resolved_at,
			created_at
		FROM tickets
		WHERE id = ?
	`, query.ticketID.String()).Row()

	err := row.Scan(
		&id, &number, &customerID, &orderID, &assigneeID,
		&subject, &category, &prio, &statusString, &resolvedAt, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTicketQueryResponse{}, errs.NewObjectNotFoundError("ticket_id", query.ticketID)
	}
	if err != nil {
		return GetTicketQueryResponse{}, err
	}

	ticketID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTicketQueryResponse{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetTicketQueryResponse{}, err
	}
	if query.scopeCustomerID != nil && !ownerID.IsEqual(*query.scopeCustomerID) {
		return GetTicketQueryResponse{}, errs.NewObjectNotFoundError("ticket_id", query.ticketID)
	}

	status, err := ticket.StatusFromString(statusString)
	if err != nil {
		return GetTicketQueryResponse{}, err
	}

	response := GetTicketQueryResponse{
		ID:           ticketID,
		TicketNumber: number,
		CustomerID:   ownerID,
		Subject:      subject,
		Category:     ticket.Category(category),
		Priority:     ticket.Priority(prio),
		Status:       status,
		CreatedAt:    createdAt,
	}
	if orderID.Valid {
		parentID, idErr := kernel.UUIDFromBytes(orderID.UUID[:])
		if idErr != nil {
			return GetTicketQueryResponse{}, idErr
		}
		response.OrderID = &parentID
	}
	if assigneeID.Valid {
		adminID, idErr := kernel.UUIDFromBytes(assigneeID.UUID[:])
		if idErr != nil {
			return GetTicketQueryResponse{}, idErr
		}
		response.AssigneeID = &adminID
	}
	if resolvedAt.Valid {
		response.ResolvedAt = &resolvedAt.Time
	}

	return response, nil
}

func (h GetTicketQueryHandler) loadMessages(
	ctx context.Context,
	ticketID kernel.UUID,
) ([]TicketMessageResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, author_id, from_admin, body, created_at
		FROM ticket_messages
		WHERE ticket_id = ?
		ORDER BY created_at, id
	`, ticketID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []TicketMessageResponse
	for rows.Next() {
		var (
			id, authorID uuid.UUID
			fromAdmin    bool
			body         string
			createdAt    time.Time
		)
		if err = rows.Scan(&id, &authorID, &fromAdmin, &body, &createdAt); err != nil {
			return nil, err
		}

		messageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		author, idErr := kernel.UUIDFromBytes(authorID[:])
		if idErr != nil {
			return nil, idErr
		}

		messages = append(messages, TicketMessageResponse{
			ID:        messageID,
			AuthorID:  author,
			FromAdmin: fromAdmin,
			Body:      body,
			CreatedAt: createdAt,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
