// Package ticketrepo persists support tickets and their message threads onto
// the tickets and ticket_messages tables.
package ticketrepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"

	"github.com/google/uuid"
)

// TicketDTO is the database row for a ticket aggregate.
type TicketDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TicketNumber string     `gorm:"uniqueIndex;not null"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index"`
	Subject      string     `gorm:"not null"`
	Category     string     `gorm:"not null"`
	Priority     string     `gorm:"not null"`
	Status       string     `gorm:"index;not null"`
	AssigneeID   *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt   *time.Time
	CreatedAt    time.Time
}

// TableName overrides GORM's default naming to use "tickets".
func (TicketDTO) TableName() string {
	return "tickets"
}

// MessageDTO is the database row for one conversation entry.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketID  uuid.UUID `gorm:"type:uuid;index;not null"`
	AuthorID  uuid.UUID `gorm:"type:uuid"`
	FromAdmin bool
	Body      string `gorm:"not null"`
	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "ticket_messages".
func (MessageDTO) TableName() string {
	return "ticket_messages"
}

func fromDomain(aggregate *ticket.Ticket) (TicketDTO, []MessageDTO) {
	dto := TicketDTO{
		ID:           aggregate.ID().Bytes(),
		TicketNumber: aggregate.TicketNumber(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		Subject:      aggregate.Subject(),
		Category:     string(aggregate.Category()),
		Priority:     string(aggregate.Priority()),
		Status:       aggregate.Status().String(),
		ResolvedAt:   aggregate.ResolvedAt(),
		CreatedAt:    aggregate.CreatedAt(),
	}

	if orderID := aggregate.OrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.OrderID = &raw
	}
	if assigneeID := aggregate.AssigneeID(); assigneeID != nil {
		raw := assigneeID.Bytes()
		dto.AssigneeID = &raw
	}

	messages := make([]MessageDTO, 0, len(aggregate.Messages()))
	for _, message := range aggregate.Messages() {
		messages = append(messages, MessageDTO{
			ID:        message.ID().Bytes(),
			TicketID:  aggregate.ID().Bytes(),
			AuthorID:  message.AuthorID().Bytes(),
			FromAdmin: message.FromAdmin(),
			Body:      message.Body(),
			CreatedAt: message.CreatedAt(),
		})
	}

	return dto, messages
}

func toDomain(dto TicketDTO, messageDTOs []MessageDTO) (*ticket.Ticket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := ticket.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, idErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if idErr != nil {
			return nil, idErr
		}
		orderID = &oID
	}

	var assigneeID *kernel.UUID
	if dto.AssigneeID != nil {
		aID, idErr := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
		if idErr != nil {
			return nil, idErr
		}
		assigneeID = &aID
	}

	messages := make([]*ticket.Message, 0, len(messageDTOs))
	for _, messageDTO := range messageDTOs {
		message, msgErr := messageToDomain(messageDTO)
		if msgErr != nil {
			return nil, msgErr
		}
		messages = append(messages, message)
	}

	return ticket.RestoreTicket(ticket.RestoreSpec{
		ID:           id,
		TicketNumber: dto.TicketNumber,
		CustomerID:   customerID,
		OrderID:      orderID,
		Subject:      dto.Subject,
		Category:     ticket.Category(dto.Category),
		Priority:     ticket.Priority(dto.Priority),
		Status:       status,
		AssigneeID:   assigneeID,
		Messages:     messages,
		ResolvedAt:   dto.ResolvedAt,
		CreatedAt:    dto.CreatedAt,
	})
}

func messageToDomain(dto MessageDTO) (*ticket.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	authorID, err := kernel.UUIDFromBytes(dto.AuthorID[:])
	if err != nil {
		return nil, err
	}

	return ticket.NewMessage(id, authorID, dto.FromAdmin, dto.Body, dto.CreatedAt)
}
