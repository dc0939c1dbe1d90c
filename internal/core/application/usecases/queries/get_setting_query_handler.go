package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atelier/internal/core/domain/model/settings"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetSettingQueryHandler reads one site setting.
type GetSettingQueryHandler struct {
	db *gorm.DB
}

// NewGetSettingQueryHandler creates a handler for setting lookups.
func NewGetSettingQueryHandler(db *gorm.DB) GetSettingQueryHandler {
	return GetSettingQueryHandler{db: db}
}

// Handle executes the setting lookup.
func (h GetSettingQueryHandler) Handle(
	ctx context.Context,
	query GetSettingQuery,
) (GetSettingQueryResponse, error) {
	var (
		key, value, kind string
		updatedAt        time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT key, value, kind, updated_at
		FROM site_settings
		WHERE key = ?
	`, query.key).Row()

	err := row.Scan(&key, &value, &kind, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetSettingQueryResponse{}, errs.NewObjectNotFoundError("key", query.key)
	}
	if err != nil {
		return GetSettingQueryResponse{}, err
	}

	return GetSettingQueryResponse{
		Key:       key,
		Value:     value,
		Kind:      settings.ValueKind(kind),
		UpdatedAt: updatedAt,
	}, nil
}
