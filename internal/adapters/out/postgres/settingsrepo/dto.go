// Package settingsrepo persists site settings and policy versions onto the
// site_settings and policy_versions tables.
package settingsrepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/settings"

	"github.com/google/uuid"
)

// SiteSettingDTO is the database row for one site setting.
type SiteSettingDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"uniqueIndex;size:100;not null"`
	Value     string    `gorm:"type:text"`
	Kind      string    `gorm:"not null"`
	UpdatedBy uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "site_settings".
func (SiteSettingDTO) TableName() string {
	return "site_settings"
}

// PolicyVersionDTO is the database row for one published policy revision.
type PolicyVersionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind        string    `gorm:"index;uniqueIndex:idx_policy_kind_version;not null"`
	Version     string    `gorm:"uniqueIndex:idx_policy_kind_version;not null"`
	Content     string    `gorm:"type:text;not null"`
	Active      bool      `gorm:"index"`
	CreatedBy   uuid.UUID `gorm:"type:uuid"`
	EffectiveAt time.Time
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming to use "policy_versions".
func (PolicyVersionDTO) TableName() string {
	return "policy_versions"
}

func settingFromDomain(aggregate *settings.Setting) SiteSettingDTO {
	return SiteSettingDTO{
		ID:        aggregate.ID().Bytes(),
		Key:       aggregate.Key(),
		Value:     aggregate.Value(),
		Kind:      string(aggregate.Kind()),
		UpdatedBy: aggregate.UpdatedBy().Bytes(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

func settingToDomain(dto SiteSettingDTO) (*settings.Setting, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return nil, err
	}

	return settings.RestoreSetting(
		id, dto.Key, dto.Value, settings.ValueKind(dto.Kind), updatedBy, dto.UpdatedAt)
}

func policyFromDomain(aggregate *settings.PolicyVersion) PolicyVersionDTO {
	return PolicyVersionDTO{
		ID:          aggregate.ID().Bytes(),
		Kind:        string(aggregate.Kind()),
		Version:     aggregate.Version(),
		Content:     aggregate.Content(),
		Active:      aggregate.Active(),
		CreatedBy:   aggregate.CreatedBy().Bytes(),
		EffectiveAt: aggregate.EffectiveAt(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func policyToDomain(dto PolicyVersionDTO) (*settings.PolicyVersion, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	return settings.RestorePolicyVersion(
		id, settings.PolicyKind(dto.Kind), dto.Version, dto.Content,
		dto.Active, createdBy, dto.EffectiveAt, dto.CreatedAt)
}
