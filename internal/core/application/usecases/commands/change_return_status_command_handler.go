package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/outbox"
	"atelier/internal/core/domain/model/returns"
)

// ChangeReturnStatusCommandHandler applies an admin-initiated return status
// change and keeps the parent order in step:
//
//   - approved flips the order to return_approved
//   - refund_processed flips the order to refund_completed with its payment
//     status refunded
//
// Return and order updates, their history rows, the activity log entry, and
// the customer notification are one transaction.
type ChangeReturnStatusCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewChangeReturnStatusCommandHandler creates a handler for return status changes.
func NewChangeReturnStatusCommandHandler(uowFactory ReturnUoWFactory) ChangeReturnStatusCommandHandler {
	return ChangeReturnStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the return status change command.
func (h ChangeReturnStatusCommandHandler) Handle(ctx context.Context, cmd ChangeReturnStatusCommand) error {
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

	aggregate, err := uow.ReturnRepository().Get(ctx, cmd.ReturnID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = aggregate.ChangeStatus(cmd.Next(), cmd.Notes(), cmd.Settlement(), now); err != nil {
		return err
	}
	if err = uow.ReturnRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	returnHistory, err := audit.NewStatusHistory(
		kernel.NewUUID(), audit.EntityReturn, aggregate.ID(),
		aggregate.Status().String(), cmd.AdminID(), cmd.Notes(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendStatusHistory(ctx, returnHistory); err != nil {
		return err
	}

	if err = h.syncParentOrder(ctx, uow, aggregate, cmd.AdminID(), now); err != nil {
		return err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.AdminID(), "return.transition", audit.EntityReturn, aggregate.ID(),
		fmt.Sprintf(`{"return_number":%q,"status":%q}`, aggregate.ReturnNumber(), aggregate.Status()),
		cmd.IP(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return err
	}

	buyer, err := uow.CustomerRepository().Get(ctx, aggregate.CustomerID())
	if err != nil {
		return err
	}
	notification, err := outbox.NewMessage(
		kernel.NewUUID(), outbox.KindReturnUpdated, buyer.Email(),
		fmt.Sprintf("Return %s is now %s", aggregate.ReturnNumber(), aggregate.Status()),
		fmt.Sprintf("Hi %s, your return %s moved to %s.",
			buyer.Name(), aggregate.ReturnNumber(), aggregate.Status()),
		now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, notification); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// syncParentOrder mirrors return milestones onto the parent order with its own
// history row.
func (h ChangeReturnStatusCommandHandler) syncParentOrder(
	ctx context.Context,
	uow ReturnUoW,
	aggregate *returns.Return,
	adminID kernel.UUID,
	now time.Time,
) error {
	var note string

	parent, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}

	switch aggregate.Status() {
	case returns.Approved:
		if err = parent.MarkReturnApproved(); err != nil {
			return err
		}
		note = fmt.Sprintf("return %s approved", aggregate.ReturnNumber())
	case returns.RefundProcessed:
		if err = parent.CompleteRefund(); err != nil {
			return err
		}
		note = fmt.Sprintf("refund for return %s processed", aggregate.ReturnNumber())
	default:
		return nil
	}

	if err = uow.OrderRepository().Update(ctx, parent); err != nil {
		return err
	}

	history, err := audit.NewStatusHistory(
		kernel.NewUUID(), audit.EntityOrder, parent.ID(),
		parent.Status().String(), adminID, note, now)
	if err != nil {
		return err
	}
	return uow.AuditRepository().AppendStatusHistory(ctx, history)
}
