package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/outbox"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/core/domain/services"
	"atelier/internal/pkg/errs"
)

// CreateReturnResult identifies the return produced by CreateReturnCommandHandler.
type CreateReturnResult struct {
	ReturnID     kernel.UUID
	ReturnNumber string
}

// CreateReturnCommandHandler opens a return against a delivered or completed
// order. In one transaction it persists the return with its items, flips the
// parent order to return_requested, appends history rows for both entities,
// writes the activity log, and enqueues the notification.
//
// Authorization: the requester must own the parent order. Eligibility: the
// order must be delivered or completed, enforced by the order aggregate.
// Video evidence supplied as a URL must pass the link validator; the
// validator recognizes uploads through its configured media-store host.
type CreateReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	validator  services.VideoLinkValidator
}

// NewCreateReturnCommandHandler creates a handler for return requests.
func NewCreateReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	validator services.VideoLinkValidator,
) CreateReturnCommandHandler {
	return CreateReturnCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
	}
}

// Handle processes the return request command.
func (h CreateReturnCommandHandler) Handle(ctx context.Context, cmd CreateReturnCommand) (CreateReturnResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateReturnResult{}, err
	}

	if cmd.VideoURL() != "" {
		if _, err := h.validator.Validate(cmd.VideoURL()); err != nil {
			return CreateReturnResult{}, err
		}
	}

	result, err := h.createOnce(ctx, cmd)
	if err != nil && errors.Is(err, errs.ErrConflict) && isNumberClash(err) {
		result, err = h.createOnce(ctx, cmd)
	}
	return result, err
}

// isNumberClash distinguishes a return-number uniqueness violation, which is
// retried with a fresh suffix, from eligibility conflicts, which are not.
func isNumberClash(err error) bool {
	var conflict *errs.ConflictError
	return errors.As(err, &conflict) && conflict.ParamName == "return_number"
}

func (h CreateReturnCommandHandler) createOnce(ctx context.Context, cmd CreateReturnCommand) (CreateReturnResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateReturnResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parent, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return CreateReturnResult{}, err
	}
	if !parent.CustomerID().IsEqual(cmd.RequesterID()) {
		return CreateReturnResult{}, errs.NewAuthorizationError("create return")
	}

	if err = parent.RequestReturn(); err != nil {
		return CreateReturnResult{}, err
	}

	items := make([]*returns.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		item, itemErr := returns.NewItem(
			kernel.NewUUID(), input.OrderItemID, input.Quantity, input.Reason, input.Condition)
		if itemErr != nil {
			return CreateReturnResult{}, itemErr
		}
		items = append(items, item)
	}

	now := time.Now().UTC()
	aggregate, err := returns.NewReturn(returns.NewSpec{
		ID:           kernel.NewUUID(),
		ReturnNumber: kernel.NewReference("RTN", now),
		OrderID:      parent.ID(),
		CustomerID:   parent.CustomerID(),
		ReturnType:   cmd.ReturnType(),
		Reason:       cmd.Reason(),
		Description:  cmd.Description(),
		Items:        items,
		VideoURL:     cmd.VideoURL(),
		Waiver:       cmd.Waiver(),
		CreatedAt:    now,
	})
	if err != nil {
		return CreateReturnResult{}, err
	}

	if err = uow.ReturnRepository().Add(ctx, aggregate); err != nil {
		return CreateReturnResult{}, err
	}
	if err = uow.OrderRepository().Update(ctx, parent); err != nil {
		return CreateReturnResult{}, err
	}

	orderHistory, err := audit.NewStatusHistory(
		kernel.NewUUID(), audit.EntityOrder, parent.ID(),
		parent.Status().String(), cmd.RequesterID(), "return requested", now)
	if err != nil {
		return CreateReturnResult{}, err
	}
	if err = uow.AuditRepository().AppendStatusHistory(ctx, orderHistory); err != nil {
		return CreateReturnResult{}, err
	}

	returnHistory, err := audit.NewStatusHistory(
		kernel.NewUUID(), audit.EntityReturn, aggregate.ID(),
		aggregate.Status().String(), cmd.RequesterID(), "return opened", now)
	if err != nil {
		return CreateReturnResult{}, err
	}
	if err = uow.AuditRepository().AppendStatusHistory(ctx, returnHistory); err != nil {
		return CreateReturnResult{}, err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.RequesterID(), "return.create", audit.EntityReturn, aggregate.ID(),
		fmt.Sprintf(`{"return_number":%q,"order_number":%q}`,
			aggregate.ReturnNumber(), parent.OrderNumber()),
		cmd.IP(), now)
	if err != nil {
		return CreateReturnResult{}, err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return CreateReturnResult{}, err
	}

	buyer, err := uow.CustomerRepository().Get(ctx, parent.CustomerID())
	if err != nil {
		return CreateReturnResult{}, err
	}
	notification, err := outbox.NewMessage(
		kernel.NewUUID(), outbox.KindReturnRequested, buyer.Email(),
		fmt.Sprintf("Return %s received", aggregate.ReturnNumber()),
		fmt.Sprintf("Hi %s, we received your return request %s for order %s and will review it shortly.",
			buyer.Name(), aggregate.ReturnNumber(), parent.OrderNumber()),
		now)
	if err != nil {
		return CreateReturnResult{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, notification); err != nil {
		return CreateReturnResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateReturnResult{}, err
	}

	return CreateReturnResult{ReturnID: aggregate.ID(), ReturnNumber: aggregate.ReturnNumber()}, nil
}
