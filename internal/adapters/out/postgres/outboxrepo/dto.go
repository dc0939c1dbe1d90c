// Package outboxrepo persists pending notifications onto the outbox_messages
// table. Rows are written in the same transaction as the state change that
// produced them and drained asynchronously.
package outboxrepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO is the database row for one pending notification.
type MessageDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind          string    `gorm:"not null"`
	Recipient     string    `gorm:"not null"`
	Subject       string    `gorm:"not null"`
	Body          string
	Attempts      int       `gorm:"not null"`
	NextAttemptAt time.Time `gorm:"index"`
	LastError     string
	SentAt        *time.Time `gorm:"index"`
	CreatedAt     time.Time
}

// TableName overrides GORM's default naming to use "outbox_messages".
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:            message.ID().Bytes(),
		Kind:          string(message.Kind()),
		Recipient:     message.Recipient(),
		Subject:       message.Subject(),
		Body:          message.Body(),
		Attempts:      message.Attempts(),
		NextAttemptAt: message.NextAttemptAt(),
		LastError:     message.LastError(),
		SentAt:        message.SentAt(),
		CreatedAt:     message.CreatedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id,
		outbox.Kind(dto.Kind),
		dto.Recipient,
		dto.Subject,
		dto.Body,
		dto.Attempts,
		dto.NextAttemptAt,
		dto.LastError,
		dto.SentAt,
		dto.CreatedAt,
	)
}
