package settingsrepo

import (
	"context"
	"errors"

	"atelier/internal/adapters/out/postgres/dberr"
	"atelier/internal/core/domain/model/settings"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSettingsRepository implements ports.SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// UpsertSetting replaces the setting value by key, inserting the row when the
// key is new. Two admins racing on the same new key surface as a conflict.
func (r *GormSettingsRepository) UpsertSetting(ctx context.Context, aggregate *settings.Setting) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := settingFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&SiteSettingDTO{}).
		Where("key = ?", dto.Key).
		Select("value", "kind", "updated_by", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update setting", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("key", dto.Key, err)
		}
		return errs.NewPersistenceError("create setting", err)
	}

	return nil
}

// GetSetting retrieves a setting by its unique key.
func (r *GormSettingsRepository) GetSetting(ctx context.Context, key string) (*settings.Setting, error) {
	var dto SiteSettingDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("key", key)
		}
		return nil, errs.NewPersistenceError("get setting", err)
	}

	return settingToDomain(dto)
}

// AddPolicy persists a newly published policy revision. A duplicate
// kind/version pair comes back as a ConflictError.
func (r *GormSettingsRepository) AddPolicy(ctx context.Context, aggregate *settings.PolicyVersion) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := policyFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("version", dto.Version, err)
		}
		return errs.NewPersistenceError("create policy version", err)
	}

	return nil
}

// GetActivePolicy retrieves the currently active revision of one policy kind.
func (r *GormSettingsRepository) GetActivePolicy(ctx context.Context, kind settings.PolicyKind) (*settings.PolicyVersion, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	var dto PolicyVersionDTO
	err := r.db.WithContext(ctx).
		Where("kind = ? AND active = ?", string(kind), true).
		Order("effective_at DESC, created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("policy_type", string(kind))
		}
		return nil, errs.NewPersistenceError("get active policy", err)
	}

	return policyToDomain(dto)
}

// RetirePolicies deactivates every active revision of one policy kind.
func (r *GormSettingsRepository) RetirePolicies(ctx context.Context, kind settings.PolicyKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&PolicyVersionDTO{}).
		Where("kind = ? AND active = ?", string(kind), true).
		Update("active", false).Error
	if err != nil {
		return errs.NewPersistenceError("retire policy versions", err)
	}

	return nil
}
