package commands_test

import (
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/core/domain/services"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateReturnCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	parent := testOrderInStatus(t, customerID, order.Delivered)

	cmd, err := commands.NewCreateReturnCommand(
		parent.ID(), customerID, returns.TypeRefund, returns.ReasonWrongSize,
		"sleeves too short", testReturnItems(t),
		"https://youtube.com/watch?v=dQw4w9WgXcQ", nil, "10.1.2.3")
	require.NoError(t, err)

	uow := NewMockReturnUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("Get", ctx, parent.ID()).Return(parent, nil).Once()
	uow.Orders.On("Update", ctx, parent).Return(nil).Once()
	uow.Customers.On("Get", ctx, customerID).Return(testCustomer(t, customerID), nil).Once()

	var created *returns.Return
	uow.Returns.On("Add", ctx, mock.AnythingOfType("*returns.Return")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*returns.Return) }).
		Return(nil).Once()
	uow.Audits.On("AppendStatusHistory", ctx, mock.AnythingOfType("*audit.StatusHistory")).
		Return(nil).Twice() // one for the order flip, one for the new return
	uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
		Return(nil).Once()
	uow.Outbox.On("Add", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateReturnCommandHandler(factory, services.NewVideoLinkValidator(""))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, result.ReturnID.IsEqual(created.ID()))
	assert.Equal(t, returns.Requested, created.Status())
	assert.Equal(t, order.ReturnRequested, parent.Status())
	assert.True(t, kernel.IsReference(result.ReturnNumber))

	uow.AssertExpectations(t)
	uow.Returns.AssertExpectations(t)
	uow.Audits.AssertExpectations(t)
}

func TestCreateReturnCommandHandler_Handle_OrderNotEligible(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	parent := testOrderInStatus(t, customerID, order.InProduction)

	cmd, err := commands.NewCreateReturnCommand(
		parent.ID(), customerID, returns.TypeRefund, returns.ReasonDefective,
		"", testReturnItems(t), "https://youtu.be/dQw4w9WgXcQ", nil, "")
	require.NoError(t, err)

	uow := NewMockReturnUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("Get", ctx, parent.ID()).Return(parent, nil).Once()

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateReturnCommandHandler(factory, services.NewVideoLinkValidator(""))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.InProduction, parent.Status())
	uow.Returns.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateReturnCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	parent := testOrderInStatus(t, kernel.NewUUID(), order.Delivered)
	stranger := kernel.NewUUID()

	cmd, err := commands.NewCreateReturnCommand(
		parent.ID(), stranger, returns.TypeRefund, returns.ReasonDefective,
		"", testReturnItems(t), "https://youtu.be/dQw4w9WgXcQ", nil, "")
	require.NoError(t, err)

	uow := NewMockReturnUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("Get", ctx, parent.ID()).Return(parent, nil).Once()

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateReturnCommandHandler(factory, services.NewVideoLinkValidator(""))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrAuthorization)
}

func TestCreateReturnCommandHandler_Handle_RejectsBadVideoLink(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	parent := testOrderInStatus(t, customerID, order.Delivered)

	for name, rawURL := range map[string]string{
		"plain http":           "http://localhost/video.mp4",
		"unsupported platform": "https://evil.example.com/watch?v=dQw4w9WgXcQ",
		"private host":         "https://192.168.1.10/clip.mp4",
	} {
		t.Run(name, func(t *testing.T) {
			cmd, err := commands.NewCreateReturnCommand(
				parent.ID(), customerID, returns.TypeRefund, returns.ReasonDefective,
				"", testReturnItems(t), rawURL, nil, "")
			require.NoError(t, err)

			factory := new(MockReturnUoWFactory)
			h := commands.NewCreateReturnCommandHandler(factory, services.NewVideoLinkValidator(""))
			_, err = h.Handle(ctx, cmd)
			require.ErrorIs(t, err, errs.ErrValidation)
			factory.AssertNotCalled(t, "Create")
		})
	}
}

func TestCreateReturnCommandHandler_Handle_AcceptsMediaStoreUpload(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	parent := testOrderInStatus(t, customerID, order.Delivered)

	cmd, err := commands.NewCreateReturnCommand(
		parent.ID(), customerID, returns.TypeRefund, returns.ReasonDefective,
		"", testReturnItems(t),
		"https://media.atelier.example/videos/unboxing.mp4", nil, "")
	require.NoError(t, err)

	uow := NewMockReturnUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("Get", ctx, parent.ID()).Return(parent, nil).Once()
	uow.Orders.On("Update", ctx, parent).Return(nil).Once()
	uow.Customers.On("Get", ctx, customerID).Return(testCustomer(t, customerID), nil).Once()
	uow.Returns.On("Add", ctx, mock.AnythingOfType("*returns.Return")).Return(nil).Once()
	uow.Audits.On("AppendStatusHistory", ctx, mock.AnythingOfType("*audit.StatusHistory")).
		Return(nil).Twice()
	uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
		Return(nil).Once()
	uow.Outbox.On("Add", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateReturnCommandHandler(
		factory, services.NewVideoLinkValidator("media.atelier.example"))
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ReturnNumber)
}

func TestCreateReturnCommandHandler_Handle_MissingVideo(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()

	t.Run("rejected without waiver", func(t *testing.T) {
		parent := testOrderInStatus(t, customerID, order.Delivered)
		cmd, err := commands.NewCreateReturnCommand(
			parent.ID(), customerID, returns.TypeRefund, returns.ReasonChangedMind,
			"", testReturnItems(t), "", nil, "")
		require.NoError(t, err)

		uow := NewMockReturnUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		uow.Orders.On("Get", ctx, parent.ID()).Return(parent, nil).Once()

		factory := new(MockReturnUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateReturnCommandHandler(factory, services.NewVideoLinkValidator(""))
		_, err = h.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("accepted with an admin waiver", func(t *testing.T) {
		parent := testOrderInStatus(t, customerID, order.Completed)
		waiver := &returns.Waiver{AdminID: kernel.NewUUID(), Reason: "video requirement waived for VIP"}
		cmd, err := commands.NewCreateReturnCommand(
			parent.ID(), customerID, returns.TypeRefund, returns.ReasonChangedMind,
			"", testReturnItems(t), "", waiver, "")
		require.NoError(t, err)

		uow := NewMockReturnUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		uow.Orders.On("Get", ctx, parent.ID()).Return(parent, nil).Once()
		uow.Orders.On("Update", ctx, parent).Return(nil).Once()
		uow.Customers.On("Get", ctx, customerID).Return(testCustomer(t, customerID), nil).Once()
		uow.Returns.On("Add", ctx, mock.AnythingOfType("*returns.Return")).Return(nil).Once()
		uow.Audits.On("AppendStatusHistory", ctx, mock.AnythingOfType("*audit.StatusHistory")).
			Return(nil).Twice()
		uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
			Return(nil).Once()
		uow.Outbox.On("Add", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

		factory := new(MockReturnUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateReturnCommandHandler(factory, services.NewVideoLinkValidator(""))
		result, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.NotEmpty(t, result.ReturnNumber)
		assert.Equal(t, order.ReturnRequested, parent.Status())
	})
}
