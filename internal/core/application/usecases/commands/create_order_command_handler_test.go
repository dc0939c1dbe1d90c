package commands_test

import (
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		customerID, kernel.NewUUID(), testItemSpecs(t), "", order.Details{}, "10.1.2.3")
	require.NoError(t, err)

	uow := NewMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Customers.On("Get", ctx, customerID).Return(testCustomer(t, customerID), nil).Once()

	var created *order.Order
	uow.Orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	uow.Audits.On("AppendStatusHistory", ctx, mock.AnythingOfType("*audit.StatusHistory")).
		Return(nil).Once()
	uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
		Return(nil).Once()
	uow.Outbox.On("Add", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, result.OrderID.IsEqual(created.ID()))
	assert.Equal(t, created.OrderNumber(), result.OrderNumber)
	assert.True(t, kernel.IsReference(result.OrderNumber))
	assert.Equal(t, order.PendingApproval, created.Status())
	assert.Equal(t, "50.00 EUR", created.TotalAmount().String())

	uow.AssertExpectations(t)
	uow.Orders.AssertExpectations(t)
	uow.Audits.AssertExpectations(t)
	uow.Outbox.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_CustomerNotFound(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		customerID, kernel.NewUUID(), testItemSpecs(t), "", order.Details{}, "")
	require.NoError(t, err)

	uow := NewMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Customers.On("Get", ctx, customerID).
		Return(nil, errs.NewObjectNotFoundError("customer_id", customerID)).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NumberClashRetriesOnce(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		customerID, kernel.NewUUID(), testItemSpecs(t), "", order.Details{}, "")
	require.NoError(t, err)

	clash := errs.NewConflictError("order_number", "duplicate key")

	uow := NewMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()
	uow.Customers.On("Get", ctx, customerID).Return(testCustomer(t, customerID), nil).Twice()
	uow.Orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(clash).Once()
	uow.Orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.Audits.On("AppendStatusHistory", ctx, mock.AnythingOfType("*audit.StatusHistory")).
		Return(nil).Once()
	uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
		Return(nil).Once()
	uow.Outbox.On("Add", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewCreateOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.NotEmpty(t, result.OrderNumber)
	uow.Orders.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PersistentClashSurfacesConflict(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		customerID, kernel.NewUUID(), testItemSpecs(t), "", order.Details{}, "")
	require.NoError(t, err)

	clash := errs.NewConflictError("order_number", "duplicate key")

	uow := NewMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()
	uow.Customers.On("Get", ctx, customerID).Return(testCustomer(t, customerID), nil).Twice()
	uow.Orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(clash).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.Orders.AssertExpectations(t)
}
