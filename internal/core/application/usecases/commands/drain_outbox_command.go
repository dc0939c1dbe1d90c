package commands

import (
	"errors"
	"time"

	"atelier/internal/pkg/guard"
)

var (
	ErrDrainOutboxCommandIsNotConstructed = errors.New(
		"DrainOutboxCommand must be created via NewDrainOutboxCommand constructor",
	)

	ErrDrainTimeIsRequired = errors.New("drain reference time must be set")
)

// defaultDrainBatch caps how many messages one drain pass delivers so a
// backlog never holds the transaction open for long.
const defaultDrainBatch = 25

// DrainOutboxCommand triggers one delivery pass over the notification
// outbox: due messages are sent and their bookkeeping updated.
type DrainOutboxCommand struct { //nolint:recvcheck //using for validation
	now   time.Time
	batch int

	guard guard.ConstructorGuard
}

// NewDrainOutboxCommand creates a drain command for the given reference
// time. A non-positive batch size falls back to the default.
func NewDrainOutboxCommand(now time.Time, batch int) (DrainOutboxCommand, error) {
	if now.IsZero() {
		return DrainOutboxCommand{}, ErrDrainTimeIsRequired
	}
	if batch <= 0 {
		batch = defaultDrainBatch
	}

	return DrainOutboxCommand{
		now:   now,
		batch: batch,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DrainOutboxCommand) Validate() error {
	return c.guard.Validate(ErrDrainOutboxCommandIsNotConstructed)
}

// Now returns the reference time due messages are selected against.
func (c DrainOutboxCommand) Now() time.Time { return c.now }

// Batch returns the maximum number of messages delivered in this pass.
func (c DrainOutboxCommand) Batch() int { return c.batch }
