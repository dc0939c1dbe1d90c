package ticket_test

import (
	"testing"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTicket(t *testing.T) *ticket.Ticket {
	t.Helper()

	customerID := kernel.NewUUID()
	first, err := ticket.NewMessage(
		kernel.NewUUID(), customerID, false, "my order arrived damaged", time.Now())
	require.NoError(t, err)

	tk, err := ticket.NewTicket(ticket.NewSpec{
		ID:           kernel.NewUUID(),
		TicketNumber: "TKT-20260829120000-00FF",
		CustomerID:   customerID,
		Subject:      "Damaged delivery",
		Category:     ticket.CategoryOrderIssue,
		FirstMessage: first,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	return tk
}

func TestNewTicket(t *testing.T) {
	t.Run("opens with the first message and medium priority", func(t *testing.T) {
		tk := newTestTicket(t)

		assert.Equal(t, ticket.Open, tk.Status())
		assert.Equal(t, ticket.PriorityMedium, tk.Priority())
		assert.Len(t, tk.Messages(), 1)
		assert.Nil(t, tk.AssigneeID())
		require.NoError(t, tk.Validate())
	})

	t.Run("rejects a ticket without a first message", func(t *testing.T) {
		_, err := ticket.NewTicket(ticket.NewSpec{
			ID:           kernel.NewUUID(),
			TicketNumber: "TKT-20260829120000-00FF",
			CustomerID:   kernel.NewUUID(),
			Subject:      "Hello",
			Category:     ticket.CategoryOther,
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects blank subject and bad category", func(t *testing.T) {
		first, err := ticket.NewMessage(kernel.NewUUID(), kernel.NewUUID(), false, "hi", time.Now())
		require.NoError(t, err)

		_, err = ticket.NewTicket(ticket.NewSpec{
			ID:           kernel.NewUUID(),
			TicketNumber: "TKT-20260829120000-00FF",
			CustomerID:   kernel.NewUUID(),
			Subject:      "  ",
			Category:     ticket.CategoryOther,
			FirstMessage: first,
		})
		require.ErrorIs(t, err, errs.ErrValidation)

		_, err = ticket.NewTicket(ticket.NewSpec{
			ID:           kernel.NewUUID(),
			TicketNumber: "TKT-20260829120000-00FF",
			CustomerID:   kernel.NewUUID(),
			Subject:      "Hello",
			Category:     ticket.Category("complaint"),
			FirstMessage: first,
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestTicket_AddMessage(t *testing.T) {
	t.Run("admin reply picks the ticket up", func(t *testing.T) {
		tk := newTestTicket(t)

		reply, err := ticket.NewMessage(
			kernel.NewUUID(), kernel.NewUUID(), true, "sorry to hear, checking", time.Now())
		require.NoError(t, err)

		require.NoError(t, tk.AddMessage(reply))
		assert.Equal(t, ticket.InProgress, tk.Status())
		assert.Len(t, tk.Messages(), 2)
	})

	t.Run("customer reply hands the ball back to support", func(t *testing.T) {
		tk := newTestTicket(t)
		require.NoError(t, tk.Assign(kernel.NewUUID()))

		reply, err := ticket.NewMessage(
			kernel.NewUUID(), tk.CustomerID(), false, "photos attached", time.Now())
		require.NoError(t, err)

		require.NoError(t, tk.AddMessage(reply))
		assert.Equal(t, ticket.WaitingAdmin, tk.Status())
	})

	t.Run("closed tickets reject messages", func(t *testing.T) {
		tk := newTestTicket(t)
		require.NoError(t, tk.ChangeStatus(ticket.Closed, time.Now()))

		reply, err := ticket.NewMessage(kernel.NewUUID(), tk.CustomerID(), false, "anyone?", time.Now())
		require.NoError(t, err)

		require.ErrorIs(t, tk.AddMessage(reply), errs.ErrConflict)
	})
}

func TestTicket_ChangeStatus(t *testing.T) {
	t.Run("resolving stamps the timestamp", func(t *testing.T) {
		tk := newTestTicket(t)
		at := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

		require.NoError(t, tk.ChangeStatus(ticket.Resolved, at))
		require.NotNil(t, tk.ResolvedAt())
		assert.Equal(t, at, *tk.ResolvedAt())
	})

	t.Run("resolved tickets can be reopened", func(t *testing.T) {
		tk := newTestTicket(t)
		require.NoError(t, tk.ChangeStatus(ticket.Resolved, time.Now()))
		require.NoError(t, tk.ChangeStatus(ticket.InProgress, time.Now()))
		assert.Equal(t, ticket.InProgress, tk.Status())
	})

	t.Run("closed is terminal", func(t *testing.T) {
		tk := newTestTicket(t)
		require.NoError(t, tk.ChangeStatus(ticket.Closed, time.Now()))
		assert.True(t, tk.Status().IsTerminal())
		require.ErrorIs(t, tk.ChangeStatus(ticket.Open, time.Now()), errs.ErrConflict)
	})
}

func TestTicket_Assign(t *testing.T) {
	tk := newTestTicket(t)
	adminID := kernel.NewUUID()

	require.NoError(t, tk.Assign(adminID))
	require.NotNil(t, tk.AssigneeID())
	assert.True(t, adminID.IsEqual(*tk.AssigneeID()))
	assert.Equal(t, ticket.InProgress, tk.Status())
}
