// Package outbox contains the pending-notification message written in the same
// transaction as the state change that triggered it, and drained later by a
// background job. This keeps "state changed" and "customer notified" from
// silently diverging when the mail server is down.
package outbox

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// Kind names the notification template a message renders with.
type Kind string

const (
	KindOrderCreated    Kind = "order_created"
	KindOrderConfirmed  Kind = "order_confirmed"
	KindOrderShipped    Kind = "order_shipped"
	KindOrderDelivered  Kind = "order_delivered"
	KindReturnRequested Kind = "return_requested"
	KindReturnUpdated   Kind = "return_updated"
	KindTicketOpened    Kind = "ticket_opened"
)

// MaxAttempts bounds delivery retries; a message past it is parked as dead.
const MaxAttempts = 5

// baseBackoff is the delay after the first failure; it doubles per attempt.
const baseBackoff = time.Minute

// Message is one pending notification.
type Message struct {
	id        kernel.UUID
	kind      Kind
	recipient string
	subject   string
	body      string

	attempts      int
	nextAttemptAt time.Time
	lastError     string
	sentAt        *time.Time
	createdAt     time.Time
}

// NewMessage creates a pending message ready for immediate delivery.
func NewMessage(id kernel.UUID, kind Kind, recipient, subject, body string, createdAt time.Time) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if kind == "" {
		return nil, errs.NewValidationError("kind")
	}
	if recipient == "" {
		return nil, errs.NewValidationError("recipient")
	}
	if subject == "" {
		return nil, errs.NewValidationError("subject")
	}

	return &Message{
		id:            id,
		kind:          kind,
		recipient:     recipient,
		subject:       subject,
		body:          body,
		nextAttemptAt: createdAt,
		createdAt:     createdAt,
	}, nil
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(
	id kernel.UUID,
	kind Kind,
	recipient, subject, body string,
	attempts int,
	nextAttemptAt time.Time,
	lastError string,
	sentAt *time.Time,
	createdAt time.Time,
) (*Message, error) {
	msg, err := NewMessage(id, kind, recipient, subject, body, createdAt)
	if err != nil {
		return nil, err
	}
	if attempts < 0 {
		return nil, errs.NewValidationErrorWithCause("attempts", errors.New("attempt count is negative"))
	}

	msg.attempts = attempts
	msg.nextAttemptAt = nextAttemptAt
	msg.lastError = lastError
	msg.sentAt = sentAt
	return msg, nil
}

// ID returns the message identifier.
func (m *Message) ID() kernel.UUID { return m.id }

// Kind returns the notification template name.
func (m *Message) Kind() Kind { return m.kind }

// Recipient returns the destination address.
func (m *Message) Recipient() string { return m.recipient }

// Subject returns the rendered subject line.
func (m *Message) Subject() string { return m.subject }

// Body returns the rendered message body.
func (m *Message) Body() string { return m.body }

// Attempts returns the number of failed delivery attempts so far.
func (m *Message) Attempts() int { return m.attempts }

// NextAttemptAt returns the earliest time the message may be retried.
func (m *Message) NextAttemptAt() time.Time { return m.nextAttemptAt }

// LastError returns the most recent delivery error text.
func (m *Message) LastError() string { return m.lastError }

// SentAt returns the delivery timestamp, or nil while pending.
func (m *Message) SentAt() *time.Time { return m.sentAt }

// CreatedAt returns the creation timestamp.
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// IsDue reports whether the message is ready for a delivery attempt.
func (m *Message) IsDue(now time.Time) bool {
	return m.sentAt == nil && !m.IsDead() && !m.nextAttemptAt.After(now)
}

// IsDead reports whether the message exhausted its retry budget.
func (m *Message) IsDead() bool {
	return m.attempts >= MaxAttempts
}

// MarkSent stamps the delivery time.
func (m *Message) MarkSent(at time.Time) {
	stamp := at
	m.sentAt = &stamp
}

// MarkFailed records a failed attempt and schedules the next one with
// exponential backoff. The backoff doubles per attempt starting from one
// minute; after MaxAttempts the message stops being due.
func (m *Message) MarkFailed(cause error, at time.Time) {
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
	m.nextAttemptAt = at.Add(baseBackoff << (m.attempts - 1))
}
