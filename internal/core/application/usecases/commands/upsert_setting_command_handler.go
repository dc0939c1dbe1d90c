package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/settings"
	"atelier/internal/pkg/errs"
)

// UpsertSettingResult identifies the setting written by UpsertSettingCommandHandler.
type UpsertSettingResult struct {
	SettingID kernel.UUID
}

// UpsertSettingCommandHandler replaces one site setting value, creating the
// setting when the key is new. The setting and its activity log entry are
// persisted in one transaction.
type UpsertSettingCommandHandler struct {
	uowFactory SettingsUoWFactory
}

// NewUpsertSettingCommandHandler creates a handler for site setting changes.
func NewUpsertSettingCommandHandler(uowFactory SettingsUoWFactory) UpsertSettingCommandHandler {
	return UpsertSettingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the upsert-setting command.
func (h UpsertSettingCommandHandler) Handle(ctx context.Context, cmd UpsertSettingCommand) (UpsertSettingResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpsertSettingResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpsertSettingResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()

	setting, err := uow.SettingsRepository().GetSetting(ctx, cmd.Key())
	switch {
	case err == nil:
		if err = setting.UpdateValue(cmd.Value(), cmd.AdminID(), now); err != nil {
			return UpsertSettingResult{}, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		setting, err = settings.NewSetting(
			kernel.NewUUID(), cmd.Key(), cmd.Value(), cmd.Kind(), cmd.AdminID(), now)
		if err != nil {
			return UpsertSettingResult{}, err
		}
	default:
		return UpsertSettingResult{}, err
	}

	if err = uow.SettingsRepository().UpsertSetting(ctx, setting); err != nil {
		return UpsertSettingResult{}, err
	}

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.AdminID(), "settings.update", audit.EntitySetting, setting.ID(),
		fmt.Sprintf(`{"key":%q}`, setting.Key()),
		cmd.IP(), now)
	if err != nil {
		return UpsertSettingResult{}, err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return UpsertSettingResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpsertSettingResult{}, err
	}

	return UpsertSettingResult{SettingID: setting.ID()}, nil
}
