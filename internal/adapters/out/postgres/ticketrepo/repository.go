package ticketrepo

import (
	"context"
	"errors"

	"atelier/internal/adapters/out/postgres/dberr"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTicketRepository implements ports.TicketRepository using GORM.
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GORM ticket repository.
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// Add saves a new ticket and its opening message. A duplicate ticket number
// comes back as a ConflictError so callers can regenerate it and retry.
func (r *GormTicketRepository) Add(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, messages := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("ticket_number", dto.TicketNumber, err)
		}
		return errs.NewPersistenceError("create ticket", err)
	}

	if len(messages) > 0 {
		if err := r.db.WithContext(ctx).Create(&messages).Error; err != nil {
			return errs.NewPersistenceError("create ticket messages", err)
		}
	}

	return nil
}

// Update saves an existing ticket and appends any new messages. Existing
// messages are never rewritten; newly added ones are inserted by primary key.
func (r *GormTicketRepository) Update(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, messages := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update ticket", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticket_id", aggregate.ID())
	}

	for i := range messages {
		err := r.db.WithContext(ctx).
			Where("id = ?", messages[i].ID).
			FirstOrCreate(&messages[i]).Error
		if err != nil {
			return errs.NewPersistenceError("append ticket message", err)
		}
	}

	return nil
}

// Get retrieves a ticket with its full message thread by ID.
func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticket_id", id)
		}
		return nil, errs.NewPersistenceError("get ticket", err)
	}

	var messages []MessageDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&messages, "ticket_id = ?", dto.ID).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get ticket messages", err)
	}

	return toDomain(dto, messages)
}
