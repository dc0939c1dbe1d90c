package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
)

// UpdateTicketCommandHandler applies admin changes to a ticket's handling
// state. Status changes are validated against the ticket's transition graph
// by the aggregate; the activity log row lands in the same transaction.
type UpdateTicketCommandHandler struct {
	uowFactory TicketUoWFactory
}

// NewUpdateTicketCommandHandler creates a handler for ticket updates.
func NewUpdateTicketCommandHandler(uowFactory TicketUoWFactory) UpdateTicketCommandHandler {
	return UpdateTicketCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ticket update command.
func (h UpdateTicketCommandHandler) Handle(ctx context.Context, cmd UpdateTicketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.TicketRepository().Get(ctx, cmd.TicketID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if cmd.AssigneeID() != nil {
		if err = aggregate.Assign(*cmd.AssigneeID()); err != nil {
			return err
		}
	}
	if cmd.Priority() != nil {
		if err = aggregate.ChangePriority(*cmd.Priority()); err != nil {
			return err
		}
	}
	if cmd.NextStatus() != nil {
		if err = aggregate.ChangeStatus(*cmd.NextStatus(), now); err != nil {
			return err
		}
	}

	if err = uow.TicketRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.AdminID(), "ticket.update", audit.EntityTicket, aggregate.ID(),
		fmt.Sprintf(`{"ticket_number":%q,"status":%q,"priority":%q}`,
			aggregate.TicketNumber(), aggregate.Status(), aggregate.Priority()),
		cmd.IP(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
