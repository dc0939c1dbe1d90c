package http

import (
	"net/http"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// OpenTicketRequest is the body of POST /api/support/tickets. CustomerID is
// admin-only, for opening a ticket on the customer's behalf.
type OpenTicketRequest struct {
	CustomerID string `json:"customer_id,omitempty"`
	OrderID    string `json:"order_id,omitempty"`
	Subject    string `json:"subject"`
	Category   string `json:"category"`
	Priority   string `json:"priority,omitempty"`
	Message    string `json:"message"`
}

// OpenTicketResponse identifies the freshly opened ticket.
type OpenTicketResponse struct {
	TicketID     string `json:"ticket_id"`
	TicketNumber string `json:"ticket_number"`
}

// OpenTicket handles POST /api/support/tickets - opens a support ticket with
// its first message.
func (s *Server) OpenTicket(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req OpenTicketRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	customerID := identity.ActorID
	if identity.Admin {
		customerID, err = kernel.UUIDFromString(req.CustomerID)
		if err != nil {
			return s.writeError(ctx, errs.NewValidationErrorWithCause("customer_id", err))
		}
	}

	orderID, err := optionalUUID(req.OrderID, "order_id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewOpenTicketCommand(
		customerID, orderID, req.Subject, ticket.Category(req.Category),
		ticket.Priority(req.Priority), req.Message, ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.openTicketHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OpenTicketResponse{
		TicketID:     result.TicketID.String(),
		TicketNumber: result.TicketNumber,
	})
}

// UpdateTicketRequest is the body of PATCH /api/support/tickets/:id. Every
// field is optional; absent fields are left untouched.
type UpdateTicketRequest struct {
	Status     string `json:"status,omitempty"`
	Priority   string `json:"priority,omitempty"`
	AssigneeID string `json:"assignee_id,omitempty"`
}

// UpdateTicket handles PATCH /api/support/tickets/:id - an admin moves the
// ticket along its lifecycle, reprioritizes it, or assigns it.
func (s *Server) UpdateTicket(ctx echo.Context) error {
	identity, err := requireAdmin(ctx, "update ticket")
	if err != nil {
		return s.writeError(ctx, err)
	}

	ticketID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req UpdateTicketRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	var nextStatus *ticket.Status
	if req.Status != "" {
		parsed, parseErr := ticket.StatusFromString(req.Status)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		nextStatus = &parsed
	}

	var priority *ticket.Priority
	if req.Priority != "" {
		parsed := ticket.Priority(req.Priority)
		priority = &parsed
	}

	assigneeID, err := optionalUUID(req.AssigneeID, "assignee_id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateTicketCommand(
		ticketID, identity.ActorID, nextStatus, priority, assigneeID, ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.updateTicketHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TicketSummaryResponse is one row of the ticket listing.
type TicketSummaryResponse struct {
	ID           string    `json:"id"`
	TicketNumber string    `json:"ticket_number"`
	CustomerID   string    `json:"customer_id"`
	OrderID      string    `json:"order_id,omitempty"`
	Subject      string    `json:"subject"`
	Category     string    `json:"category"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListTickets handles GET /api/support/tickets - customers see their own
// tickets, admins see everything.
func (s *Server) ListTickets(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var status *ticket.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := ticket.StatusFromString(raw)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		status = &parsed
	}

	limit, offset, err := parsePagination(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListTicketsQuery(identity.CustomerScope(), status, limit, offset)
	if err != nil {
		return s.writeError(ctx, err)
	}

	rows, err := s.listTicketsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]TicketSummaryResponse, len(rows))
	for i, row := range rows {
		response[i] = TicketSummaryResponse{
			ID:           row.ID.String(),
			TicketNumber: row.TicketNumber,
			CustomerID:   row.CustomerID.String(),
			Subject:      row.Subject,
			Category:     string(row.Category),
			Priority:     string(row.Priority),
			Status:       row.Status.String(),
			MessageCount: row.MessageCount,
			CreatedAt:    row.CreatedAt,
		}
		if row.OrderID != nil {
			response[i].OrderID = row.OrderID.String()
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TicketMessageEntryResponse is one entry of the ticket conversation.
type TicketMessageEntryResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	FromAdmin bool      `json:"from_admin"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// GetTicketResponse is the full ticket detail view.
type GetTicketResponse struct {
	ID           string                       `json:"id"`
	TicketNumber string                       `json:"ticket_number"`
	CustomerID   string                       `json:"customer_id"`
	OrderID      string                       `json:"order_id,omitempty"`
	Subject      string                       `json:"subject"`
	Category     string                       `json:"category"`
	Priority     string                       `json:"priority"`
	Status       string                       `json:"status"`
	AssigneeID   string                       `json:"assignee_id,omitempty"`
	Messages     []TicketMessageEntryResponse `json:"messages"`
	ResolvedAt   *time.Time                   `json:"resolved_at,omitempty"`
	CreatedAt    time.Time                    `json:"created_at"`
}

// GetTicket handles GET /api/support/tickets/:id - full detail with the
// message thread. A customer asking for somebody else's ticket gets a plain
// 404.
func (s *Server) GetTicket(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	ticketID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetTicketQuery(ticketID, identity.CustomerScope())
	if err != nil {
		return s.writeError(ctx, err)
	}

	detail, err := s.getTicketHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := GetTicketResponse{
		ID:           detail.ID.String(),
		TicketNumber: detail.TicketNumber,
		CustomerID:   detail.CustomerID.String(),
		Subject:      detail.Subject,
		Category:     string(detail.Category),
		Priority:     string(detail.Priority),
		Status:       detail.Status.String(),
		Messages:     make([]TicketMessageEntryResponse, len(detail.Messages)),
		ResolvedAt:   detail.ResolvedAt,
		CreatedAt:    detail.CreatedAt,
	}
	if detail.OrderID != nil {
		response.OrderID = detail.OrderID.String()
	}
	if detail.AssigneeID != nil {
		response.AssigneeID = detail.AssigneeID.String()
	}
	for i, message := range detail.Messages {
		response.Messages[i] = TicketMessageEntryResponse{
			ID:        message.ID.String(),
			AuthorID:  message.AuthorID.String(),
			FromAdmin: message.FromAdmin,
			Body:      message.Body,
			CreatedAt: message.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
