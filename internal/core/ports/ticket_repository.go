package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
)

// TicketRepository defines the persistence contract for support tickets.
type TicketRepository interface {
	// Add persists a new ticket aggregate with its first message.
	// A clash on the unique ticket number surfaces as a conflict error.
	Add(ctx context.Context, aggregate *ticket.Ticket) error

	// Update persists changes to an existing ticket aggregate,
	// including newly appended messages.
	Update(ctx context.Context, aggregate *ticket.Ticket) error

	// Get retrieves a ticket aggregate by its unique identifier,
	// with its full message thread.
	Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error)
}
