package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/settings"
)

// PublishPolicyResult identifies the revision produced by PublishPolicyCommandHandler.
type PublishPolicyResult struct {
	PolicyID kernel.UUID
}

// PublishPolicyCommandHandler publishes a new policy revision: the previous
// active revision of the same kind is retired, the new one is inserted as
// active, and the activity log entry is written, all in one transaction.
type PublishPolicyCommandHandler struct {
	uowFactory SettingsUoWFactory
}

// NewPublishPolicyCommandHandler creates a handler for policy publications.
func NewPublishPolicyCommandHandler(uowFactory SettingsUoWFactory) PublishPolicyCommandHandler {
	return PublishPolicyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the publish-policy command.
func (h PublishPolicyCommandHandler) Handle(ctx context.Context, cmd PublishPolicyCommand) (PublishPolicyResult, error) {
	if err := cmd.Validate(); err != nil {
		return PublishPolicyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PublishPolicyResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	effectiveAt := cmd.EffectiveAt()
	if effectiveAt.IsZero() {
		effectiveAt = now
	}

	if err := uow.SettingsRepository().RetirePolicies(ctx, cmd.Kind()); err != nil {
		return PublishPolicyResult{}, err
	}

	policy, err := settings.NewPolicyVersion(
		kernel.NewUUID(), cmd.Kind(), cmd.Version(), cmd.Content(),
		cmd.AdminID(), effectiveAt, now)
	if err != nil {
		return PublishPolicyResult{}, err
	}

	if err = uow.SettingsRepository().AddPolicy(ctx, policy); err != nil {
		return PublishPolicyResult{}, err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.AdminID(), "policy.publish", audit.EntityPolicy, policy.ID(),
		fmt.Sprintf(`{"policy_type":%q,"version":%q}`, policy.Kind(), policy.Version()),
		cmd.IP(), now)
	if err != nil {
		return PublishPolicyResult{}, err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return PublishPolicyResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PublishPolicyResult{}, err
	}

	return PublishPolicyResult{PolicyID: policy.ID()}, nil
}
