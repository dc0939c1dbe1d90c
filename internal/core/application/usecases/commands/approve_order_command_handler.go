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

// ApproveOrderCommandHandler processes a customer's approval of a pending
// order. In one transaction it confirms the order, appends the history row,
// writes the consent and activity logs, bumps the customer's purchase
// counters, and enqueues the confirmation notification.
//
// The aggregate enforces the approval rules: only the owning customer, only
// from pending_approval, only with terms accepted. Any rule violation rolls
// the transaction back with the documented error kind.
type ApproveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApproveOrderCommandHandler creates a handler for order approvals.
func NewApproveOrderCommandHandler(uowFactory OrderUoWFactory) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approval command.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
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
	consent := order.Consent{AcceptedAt: now, IP: cmd.IP(), UserAgent: cmd.UserAgent()}
	if err = aggregate.Approve(cmd.CustomerID(), cmd.TermsAccepted(), consent); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	buyer, err := uow.CustomerRepository().Get(ctx, aggregate.CustomerID())
	if err != nil {
		return err
	}
	if err = buyer.RecordApprovedOrder(aggregate.TotalAmount()); err != nil {
		return err
	}
	if err = uow.CustomerRepository().Update(ctx, buyer); err != nil {
		return err
	}

	history, err := audit.NewStatusHistory(
		kernel.NewUUID(), audit.EntityOrder, aggregate.ID(),
		aggregate.Status().String(), cmd.CustomerID(), "approved by customer", now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendStatusHistory(ctx, history); err != nil {
		return err
	}

	consentLog, err := audit.NewConsentLog(
		kernel.NewUUID(), buyer.UserID(), aggregate.ID(),
		cmd.TermsVersion(), cmd.PolicyVersion(), cmd.IP(), cmd.UserAgent(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendConsent(ctx, consentLog); err != nil {
		return err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.CustomerID(), "order.approve", audit.EntityOrder, aggregate.ID(),
		fmt.Sprintf(`{"order_number":%q}`, aggregate.OrderNumber()), cmd.IP(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return err
	}

	notification, err := outbox.NewMessage(
		kernel.NewUUID(), outbox.KindOrderConfirmed, buyer.Email(),
		fmt.Sprintf("Order %s confirmed", aggregate.OrderNumber()),
		fmt.Sprintf("Hi %s, thank you! Your order %s is confirmed and moves to production.",
			buyer.Name(), aggregate.OrderNumber()),
		now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, notification); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
