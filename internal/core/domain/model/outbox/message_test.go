package outbox_test

import (
	"errors"
	"testing"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessage(t *testing.T, createdAt time.Time) *outbox.Message {
	t.Helper()
	msg, err := outbox.NewMessage(
		kernel.NewUUID(), outbox.KindOrderConfirmed,
		"marta@example.com", "Your order is confirmed", "body", createdAt)
	require.NoError(t, err)
	return msg
}

func TestMessage_IsDue(t *testing.T) {
	createdAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	msg := newTestMessage(t, createdAt)

	assert.True(t, msg.IsDue(createdAt))
	assert.False(t, msg.IsDue(createdAt.Add(-time.Second)))

	msg.MarkSent(createdAt.Add(time.Second))
	assert.False(t, msg.IsDue(createdAt.Add(time.Hour)))
}

func TestMessage_MarkFailed(t *testing.T) {
	createdAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("backoff doubles per attempt", func(t *testing.T) {
		msg := newTestMessage(t, createdAt)

		msg.MarkFailed(errors.New("connection refused"), createdAt)
		assert.Equal(t, 1, msg.Attempts())
		assert.Equal(t, createdAt.Add(time.Minute), msg.NextAttemptAt())
		assert.Equal(t, "connection refused", msg.LastError())

		msg.MarkFailed(errors.New("connection refused"), createdAt)
		assert.Equal(t, createdAt.Add(2*time.Minute), msg.NextAttemptAt())

		msg.MarkFailed(errors.New("connection refused"), createdAt)
		assert.Equal(t, createdAt.Add(4*time.Minute), msg.NextAttemptAt())
	})

	t.Run("message dies after the retry budget", func(t *testing.T) {
		msg := newTestMessage(t, createdAt)

		for i := 0; i < outbox.MaxAttempts; i++ {
			assert.False(t, msg.IsDead())
			msg.MarkFailed(errors.New("boom"), createdAt)
		}

		assert.True(t, msg.IsDead())
		assert.False(t, msg.IsDue(createdAt.Add(24*time.Hour)))
	})
}
