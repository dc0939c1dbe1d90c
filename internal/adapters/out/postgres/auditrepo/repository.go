package auditrepo

import (
	"context"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAuditRepository implements ports.AuditRepository using GORM. All three
// record kinds are insert-only.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// AppendStatusHistory records one status change.
func (r *GormAuditRepository) AppendStatusHistory(ctx context.Context, entry *audit.StatusHistory) error {
	dto := statusHistoryFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("append status history", err)
	}
	return nil
}

// AppendActivity records one user action.
func (r *GormAuditRepository) AppendActivity(ctx context.Context, entry *audit.ActivityLog) error {
	dto := activityFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("append activity log", err)
	}
	return nil
}

// AppendConsent records one terms acceptance.
func (r *GormAuditRepository) AppendConsent(ctx context.Context, entry *audit.ConsentLog) error {
	dto := consentFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("append consent log", err)
	}
	return nil
}
