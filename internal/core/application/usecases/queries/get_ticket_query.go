package queries

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
)

// GetTicketQuery retrieves one ticket with its full message thread. The scope
// works like GetOrderQuery: a customer asking for somebody else's ticket gets
// the same not-found answer an unknown id does.
type GetTicketQuery struct {
	ticketID        kernel.UUID
	scopeCustomerID *kernel.UUID
}

// NewGetTicketQuery creates a ticket detail query. scopeCustomerID is nil for
// admins and the caller's customer id otherwise.
func NewGetTicketQuery(ticketID kernel.UUID, scopeCustomerID *kernel.UUID) (GetTicketQuery, error) {
	if err := ticketID.Validate(); err != nil {
		return GetTicketQuery{}, err
	}
	if scopeCustomerID != nil {
		if err := scopeCustomerID.Validate(); err != nil {
			return GetTicketQuery{}, err
		}
	}

	return GetTicketQuery{
		ticketID:        ticketID,
		scopeCustomerID: scopeCustomerID,
	}, nil
}

// TicketMessageResponse is one entry of the conversation thread.
type TicketMessageResponse struct {
	ID        kernel.UUID
	AuthorID  kernel.UUID
	FromAdmin bool
	Body      string
	CreatedAt time.Time
}

// GetTicketQueryResponse is the full ticket detail view.
type GetTicketQueryResponse struct {
	ID           kernel.UUID
	TicketNumber string
	CustomerID   kernel.UUID
	OrderID      *kernel.UUID
	Subject      string
	Category     ticket.Category
	Priority     ticket.Priority
	Status       ticket.Status
	AssigneeID   *kernel.UUID
	Messages     []TicketMessageResponse
	ResolvedAt   *time.Time
	CreatedAt    time.Time
}
