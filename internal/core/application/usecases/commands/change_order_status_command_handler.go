package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/outbox"
)

// ChangeOrderStatusCommandHandler applies an admin-initiated status change.
// The transition is validated against the adjacency graph by the aggregate;
// history and activity rows are appended in the same transaction, and shipping
// or delivery transitions enqueue a customer notification.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = aggregate.TransitionTo(cmd.Next(), cmd.Tracking(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	history, err := audit.NewStatusHistory(
		kernel.NewUUID(), audit.EntityOrder, aggregate.ID(),
		aggregate.Status().String(), cmd.ActorID(), cmd.Notes(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendStatusHistory(ctx, history); err != nil {
		return err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.ActorID(), "order.transition", audit.EntityOrder, aggregate.ID(),
		fmt.Sprintf(`{"order_number":%q,"status":%q}`, aggregate.OrderNumber(), aggregate.Status()),
		cmd.IP(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return err
	}

	if kind, notify := notificationKind(aggregate.Status()); notify {
		buyer, buyerErr := uow.CustomerRepository().Get(ctx, aggregate.CustomerID())
		if buyerErr != nil {
			return buyerErr
		}

		notification, msgErr := outbox.NewMessage(
			kernel.NewUUID(), kind, buyer.Email(),
			fmt.Sprintf("Order %s is now %s", aggregate.OrderNumber(), aggregate.Status()),
			fmt.Sprintf("Hi %s, your order %s moved to %s.",
				buyer.Name(), aggregate.OrderNumber(), aggregate.Status()),
			now)
		if msgErr != nil {
			return msgErr
		}
		if err = uow.OutboxRepository().Add(ctx, notification); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// notificationKind maps customer-visible transitions to outbox kinds.
// Internal workflow steps (production, QC, packing) stay silent.
func notificationKind(status order.Status) (outbox.Kind, bool) {
	switch status {
	case order.Shipped:
		return outbox.KindOrderShipped, true
	case order.Delivered:
		return outbox.KindOrderDelivered, true
	default:
		return "", false
	}
}
