package ports

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for pending notifications.
// Messages are added in the same transaction as the state change that
// triggered them; the drain job reads and updates them outside of it.
type OutboxRepository interface {
	// Add persists a new pending message.
	Add(ctx context.Context, message *outbox.Message) error

	// Update persists the delivery bookkeeping of a message.
	Update(ctx context.Context, message *outbox.Message) error

	// GetDue retrieves up to limit unsent messages whose next attempt time has
	// passed, oldest first. Dead messages are not returned.
	GetDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Message, error)
}
