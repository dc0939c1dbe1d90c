// Package auditrepo persists the append-only audit records: status history,
// activity log, and consent log rows.
package auditrepo

import (
	"time"

	"atelier/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// StatusHistoryDTO is the database row for one status change.
type StatusHistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityType string    `gorm:"index:idx_status_history_entity;not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;index:idx_status_history_entity"`
	Status     string    `gorm:"not null"`
	ChangedBy  uuid.UUID `gorm:"type:uuid"`
	Notes      string
	ChangedAt  time.Time
}

// TableName overrides GORM's default naming to use "status_history".
func (StatusHistoryDTO) TableName() string {
	return "status_history"
}

// ActivityLogDTO is the database row for one user action.
type ActivityLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID `gorm:"type:uuid;index"`
	Action     string    `gorm:"not null"`
	EntityType string    `gorm:"not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;index"`
	Details    string
	IP         string `gorm:"column:ip"`
	CreatedAt  time.Time
}

// TableName overrides GORM's default naming to use "activity_logs".
func (ActivityLogDTO) TableName() string {
	return "activity_logs"
}

// ConsentLogDTO is the database row for one terms acceptance.
type ConsentLogDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	TermsVersion  string
	PolicyVersion string
	IP            string `gorm:"column:ip"`
	UserAgent     string
	AcceptedAt    time.Time
}

// TableName overrides GORM's default naming to use "consent_logs".
func (ConsentLogDTO) TableName() string {
	return "consent_logs"
}

func statusHistoryFromDomain(entry *audit.StatusHistory) StatusHistoryDTO {
	return StatusHistoryDTO{
		ID:         entry.ID.Bytes(),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID.Bytes(),
		Status:     entry.Status,
		ChangedBy:  entry.ChangedBy.Bytes(),
		Notes:      entry.Notes,
		ChangedAt:  entry.ChangedAt,
	}
}

func activityFromDomain(entry *audit.ActivityLog) ActivityLogDTO {
	return ActivityLogDTO{
		ID:         entry.ID.Bytes(),
		ActorID:    entry.ActorID.Bytes(),
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID.Bytes(),
		Details:    entry.Details,
		IP:         entry.IP,
		CreatedAt:  entry.CreatedAt,
	}
}

func consentFromDomain(entry *audit.ConsentLog) ConsentLogDTO {
	return ConsentLogDTO{
		ID:            entry.ID.Bytes(),
		UserID:        entry.UserID.Bytes(),
		OrderID:       entry.OrderID.Bytes(),
		TermsVersion:  entry.TermsVersion,
		PolicyVersion: entry.PolicyVersion,
		IP:            entry.IP,
		UserAgent:     entry.UserAgent,
		AcceptedAt:    entry.AcceptedAt,
	}
}
