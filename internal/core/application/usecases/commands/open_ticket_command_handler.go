package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/outbox"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/pkg/errs"
)

// OpenTicketResult identifies the ticket produced by OpenTicketCommandHandler.
type OpenTicketResult struct {
	TicketID     kernel.UUID
	TicketNumber string
}

// OpenTicketCommandHandler opens a support ticket: the ticket with its first
// message, the activity log entry, and the acknowledgement notification are
// persisted in one transaction. A ticket-number clash is retried once.
type OpenTicketCommandHandler struct {
	uowFactory TicketUoWFactory
}

// NewOpenTicketCommandHandler creates a handler for opening tickets.
func NewOpenTicketCommandHandler(uowFactory TicketUoWFactory) OpenTicketCommandHandler {
	return OpenTicketCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the open-ticket command.
func (h OpenTicketCommandHandler) Handle(ctx context.Context, cmd OpenTicketCommand) (OpenTicketResult, error) {
	if err := cmd.Validate(); err != nil {
		return OpenTicketResult{}, err
	}

	result, err := h.openOnce(ctx, cmd)
	if err != nil && errors.Is(err, errs.ErrConflict) {
		result, err = h.openOnce(ctx, cmd)
	}
	return result, err
}

func (h OpenTicketCommandHandler) openOnce(ctx context.Context, cmd OpenTicketCommand) (OpenTicketResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OpenTicketResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	opener, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return OpenTicketResult{}, err
	}

	now := time.Now().UTC()
	first, err := ticket.NewMessage(kernel.NewUUID(), opener.UserID(), false, cmd.Message(), now)
	if err != nil {
		return OpenTicketResult{}, err
	}

	aggregate, err := ticket.NewTicket(ticket.NewSpec{
		ID:           kernel.NewUUID(),
		TicketNumber: kernel.NewReference("TKT", now),
		CustomerID:   cmd.CustomerID(),
		OrderID:      cmd.OrderID(),
		Subject:      cmd.Subject(),
		Category:     cmd.Category(),
		Priority:     cmd.Priority(),
		FirstMessage: first,
		CreatedAt:    now,
	})
	if err != nil {
		return OpenTicketResult{}, err
	}

	if err = uow.TicketRepository().Add(ctx, aggregate); err != nil {
		return OpenTicketResult{}, err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), opener.UserID(), "ticket.open", audit.EntityTicket, aggregate.ID(),
		fmt.Sprintf(`{"ticket_number":%q,"category":%q}`, aggregate.TicketNumber(), aggregate.Category()),
		cmd.IP(), now)
	if err != nil {
		return OpenTicketResult{}, err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return OpenTicketResult{}, err
	}

	notification, err := outbox.NewMessage(
		kernel.NewUUID(), outbox.KindTicketOpened, opener.Email(),
		fmt.Sprintf("Ticket %s opened", aggregate.TicketNumber()),
		fmt.Sprintf("Hi %s, we received your request %q and will get back to you soon.",
			opener.Name(), aggregate.Subject()),
		now)
	if err != nil {
		return OpenTicketResult{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, notification); err != nil {
		return OpenTicketResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OpenTicketResult{}, err
	}

	return OpenTicketResult{TicketID: aggregate.ID(), TicketNumber: aggregate.TicketNumber()}, nil
}
