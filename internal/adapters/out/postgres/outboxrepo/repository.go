package outboxrepo

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/outbox"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists a new pending message.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	dto := fromDomain(message)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("create outbox message", err)
	}
	return nil
}

// Update persists the delivery bookkeeping of a message.
func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	dto := fromDomain(message)
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update outbox message", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("message_id", message.ID())
	}

	return nil
}

// GetDue retrieves up to limit unsent messages whose next attempt time has
// passed, oldest first. Messages out of attempts are skipped.
func (r *GormOutboxRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL AND attempts < ? AND next_attempt_at <= ?", outbox.MaxAttempts, now).
		Order("next_attempt_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get due outbox messages", err)
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, message)
	}

	return messages, nil
}
