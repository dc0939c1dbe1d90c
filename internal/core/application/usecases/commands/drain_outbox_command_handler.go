package commands

import (
	"context"

	"atelier/internal/core/ports"
)

// DrainOutboxResult summarizes one delivery pass.
type DrainOutboxResult struct {
	Sent   int
	Failed int
}

// DrainOutboxCommandHandler delivers due outbox messages through the
// notifier. A failed send marks the message for a later attempt with
// exponential backoff instead of failing the pass; the batch commits as one
// transaction either way.
type DrainOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
}

// NewDrainOutboxCommandHandler creates a handler for outbox drain passes.
func NewDrainOutboxCommandHandler(uowFactory OutboxUoWFactory, notifier ports.Notifier) DrainOutboxCommandHandler {
	return DrainOutboxCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes one drain pass.
func (h DrainOutboxCommandHandler) Handle(ctx context.Context, cmd DrainOutboxCommand) (DrainOutboxResult, error) {
	if err := cmd.Validate(); err != nil {
		return DrainOutboxResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DrainOutboxResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	messages, err := uow.OutboxRepository().GetDue(ctx, cmd.Now(), cmd.Batch())
	if err != nil {
		return DrainOutboxResult{}, err
	}

	var result DrainOutboxResult
	for _, message := range messages {
		if sendErr := h.notifier.Send(ctx, message.Recipient(), message.Subject(), message.Body()); sendErr != nil {
			message.MarkFailed(sendErr, cmd.Now())
			result.Failed++
		} else {
			message.MarkSent(cmd.Now())
			result.Sent++
		}

		if err = uow.OutboxRepository().Update(ctx, message); err != nil {
			return DrainOutboxResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return DrainOutboxResult{}, err
	}

	return result, nil
}
