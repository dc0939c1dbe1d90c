package commands_test

import (
	"testing"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/settings"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpsertSettingCommandHandler_Handle_CreatesWhenMissing(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()

	cmd, err := commands.NewUpsertSettingCommand(
		adminID, "terms_page", "<h1>Terms</h1>", settings.ValueHTML, "10.1.2.3")
	require.NoError(t, err)

	uow := NewMockSettingsUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Settings.On("GetSetting", ctx, "terms_page").
		Return(nil, errs.NewObjectNotFoundError("setting_key", "terms_page")).Once()

	var written *settings.Setting
	uow.Settings.On("UpsertSetting", ctx, mock.AnythingOfType("*settings.Setting")).
		Run(func(args mock.Arguments) { written = args.Get(1).(*settings.Setting) }).
		Return(nil).Once()
	uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
		Return(nil).Once()

	factory := new(MockSettingsUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertSettingCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, written)
	assert.True(t, result.SettingID.IsEqual(written.ID()))
	assert.Equal(t, "terms_page", written.Key())
	assert.Equal(t, "<h1>Terms</h1>", written.Value())
	assert.Equal(t, settings.ValueHTML, written.Kind())
	assert.True(t, written.UpdatedBy().IsEqual(adminID))

	uow.AssertExpectations(t)
	uow.Settings.AssertExpectations(t)
	uow.Audits.AssertExpectations(t)
}

func TestUpsertSettingCommandHandler_Handle_UpdatesExisting(t *testing.T) {
	ctx := t.Context()
	adminID := kernel.NewUUID()

	existing, err := settings.NewSetting(
		kernel.NewUUID(), "footer", "old footer", settings.ValueText,
		kernel.NewUUID(), time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	cmd, err := commands.NewUpsertSettingCommand(adminID, "footer", "new footer", "", "")
	require.NoError(t, err)

	uow := NewMockSettingsUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Settings.On("GetSetting", ctx, "footer").Return(existing, nil).Once()
	uow.Settings.On("UpsertSetting", ctx, existing).Return(nil).Once()
	uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
		Return(nil).Once()

	factory := new(MockSettingsUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertSettingCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, result.SettingID.IsEqual(existing.ID()))
	assert.Equal(t, "new footer", existing.Value())
	assert.True(t, existing.UpdatedBy().IsEqual(adminID))
	uow.Settings.AssertExpectations(t)
}

func TestUpsertSettingCommandHandler_Handle_PersistenceFailure(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewUpsertSettingCommand(
		kernel.NewUUID(), "banner", "sale", "", "")
	require.NoError(t, err)

	uow := NewMockSettingsUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Settings.On("GetSetting", ctx, "banner").
		Return(nil, errs.NewPersistenceError("get setting", assert.AnError)).Once()

	factory := new(MockSettingsUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertSettingCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPersistence)
	uow.Settings.AssertNotCalled(t, "UpsertSetting", mock.Anything, mock.Anything)
}

func TestNewUpsertSettingCommand(t *testing.T) {
	t.Run("rejects a blank key", func(t *testing.T) {
		_, err := commands.NewUpsertSettingCommand(
			kernel.NewUUID(), "  ", "value", "", "")
		require.ErrorIs(t, err, commands.ErrSettingKeyIsRequired)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		_, err := commands.NewUpsertSettingCommand(
			kernel.NewUUID(), "banner", "value", "yaml", "")
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.UpsertSettingCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrUpsertSettingCommandIsNotConstructed)
	})
}
