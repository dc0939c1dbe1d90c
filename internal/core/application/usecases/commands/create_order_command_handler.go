package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/outbox"
	"atelier/internal/pkg/errs"
)

// CreateOrderResult identifies the order produced by CreateOrderCommandHandler.
type CreateOrderResult struct {
	OrderID     kernel.UUID
	OrderNumber string
}

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the aggregate with a generated order number, persists it together
// with the initial history row, the activity log entry, and the notification
// outbox row in one transaction.
//
// The order number is time-based with a random suffix and is not guaranteed
// collision-free; a uniqueness clash is retried once with a fresh number
// before the conflict is surfaced.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Fails with a not-found error when the referenced customer does not exist and
// with a validation error when any item is invalid.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	result, err := h.createOnce(ctx, cmd)
	if err != nil && errors.Is(err, errs.ErrConflict) {
		// number clash, one bounded retry with a fresh suffix
		result, err = h.createOnce(ctx, cmd)
	}
	return result, err
}

func (h CreateOrderCommandHandler) createOnce(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	buyer, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, spec := range cmd.Items() {
		item, itemErr := order.NewItem(kernel.NewUUID(), spec)
		if itemErr != nil {
			return CreateOrderResult{}, itemErr
		}
		items = append(items, item)
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewReference("ORD", now),
		cmd.CustomerID(),
		cmd.AdminID(),
		items,
		cmd.Currency(),
		cmd.Details(),
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return CreateOrderResult{}, err
	}

	history, err := audit.NewStatusHistory(
		kernel.NewUUID(), audit.EntityOrder, aggregate.ID(),
		aggregate.Status().String(), cmd.AdminID(), "order created", now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.AuditRepository().AppendStatusHistory(ctx, history); err != nil {
		return CreateOrderResult{}, err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.AdminID(), "order.create", audit.EntityOrder, aggregate.ID(),
		fmt.Sprintf(`{"order_number":%q}`, aggregate.OrderNumber()), cmd.IP(), now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return CreateOrderResult{}, err
	}

	notification, err := outbox.NewMessage(
		kernel.NewUUID(), outbox.KindOrderCreated, buyer.Email(),
		fmt.Sprintf("Order %s awaits your approval", aggregate.OrderNumber()),
		fmt.Sprintf("Hi %s, your order %s of %s was created and awaits your approval.",
			buyer.Name(), aggregate.OrderNumber(), aggregate.TotalAmount()),
		now)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, notification); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{OrderID: aggregate.ID(), OrderNumber: aggregate.OrderNumber()}, nil
}
