package commands_test

import (
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenTicketCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()

	cmd, err := commands.NewOpenTicketCommand(
		customerID, nil, "Damaged delivery", ticket.CategoryOrderIssue, "",
		"my order arrived damaged", "10.1.2.3")
	require.NoError(t, err)

	uow := NewMockTicketUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Customers.On("Get", ctx, customerID).Return(testCustomer(t, customerID), nil).Once()

	var created *ticket.Ticket
	uow.Tickets.On("Add", ctx, mock.AnythingOfType("*ticket.Ticket")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*ticket.Ticket) }).
		Return(nil).Once()
	uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
		Return(nil).Once()
	uow.Outbox.On("Add", ctx, mock.AnythingOfType("*outbox.Message")).Return(nil).Once()

	factory := new(MockTicketUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewOpenTicketCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, result.TicketID.IsEqual(created.ID()))
	assert.Equal(t, ticket.Open, created.Status())
	assert.Equal(t, ticket.PriorityMedium, created.Priority())
	assert.Len(t, created.Messages(), 1)
	assert.True(t, kernel.IsReference(result.TicketNumber))
	uow.AssertExpectations(t)
	uow.Tickets.AssertExpectations(t)
}

func TestOpenTicketCommand_RejectsEmptyInput(t *testing.T) {
	_, err := commands.NewOpenTicketCommand(
		kernel.NewUUID(), nil, "", ticket.CategoryOther, "", "hello", "")
	require.ErrorIs(t, err, commands.ErrSubjectIsRequired)

	_, err = commands.NewOpenTicketCommand(
		kernel.NewUUID(), nil, "Hello", ticket.CategoryOther, "", "  ", "")
	require.ErrorIs(t, err, commands.ErrMessageIsRequired)
}

func TestUpdateTicketCommandHandler_Handle_AssignAndResolve(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()

	first, err := ticket.NewMessage(kernel.NewUUID(), customerID, false, "hi", testCustomer(t, customerID).CreatedAt())
	require.NoError(t, err)
	aggregate, err := ticket.NewTicket(ticket.NewSpec{
		ID:           kernel.NewUUID(),
		TicketNumber: "TKT-20260829120000-00FF",
		CustomerID:   customerID,
		Subject:      "Hello",
		Category:     ticket.CategoryOther,
		FirstMessage: first,
	})
	require.NoError(t, err)

	adminID := kernel.NewUUID()
	resolved := ticket.Resolved
	cmd, err := commands.NewUpdateTicketCommand(
		aggregate.ID(), adminID, &resolved, nil, &adminID, "")
	require.NoError(t, err)

	uow := NewMockTicketUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Tickets.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.Tickets.On("Update", ctx, aggregate).Return(nil).Once()
	uow.Audits.On("AppendActivity", ctx, mock.AnythingOfType("*audit.ActivityLog")).
		Return(nil).Once()

	factory := new(MockTicketUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTicketCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, ticket.Resolved, aggregate.Status())
	require.NotNil(t, aggregate.AssigneeID())
	assert.True(t, adminID.IsEqual(*aggregate.AssigneeID()))
	assert.NotNil(t, aggregate.ResolvedAt())
}

func TestNewUpdateTicketCommand_RequiresAtLeastOneField(t *testing.T) {
	_, err := commands.NewUpdateTicketCommand(
		kernel.NewUUID(), kernel.NewUUID(), nil, nil, nil, "")
	require.ErrorIs(t, err, commands.ErrNothingToUpdate)
}
