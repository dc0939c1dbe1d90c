package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActivePolicyQueryHandler reads the active revision of one policy kind.
type GetActivePolicyQueryHandler struct {
	db *gorm.DB
}

// NewGetActivePolicyQueryHandler creates a handler for active-policy lookups.
func NewGetActivePolicyQueryHandler(db *gorm.DB) GetActivePolicyQueryHandler {
	return GetActivePolicyQueryHandler{db: db}
}

// Handle executes the active-policy lookup.
func (h GetActivePolicyQueryHandler) Handle(
	ctx context.Context,
	query GetActivePolicyQuery,
) (GetActivePolicyQueryResponse, error) {
	var (
		id               uuid.UUID
		version, content string
		effectiveAt      time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, version, content, effective_at
		FROM policy_versions
		WHERE kind = ? AND active = ?
		ORDER BY effective_at DESC, created_at DESC
		LIMIT 1
	`, string(query.kind), true).Row()

	err := row.Scan(&id, &version, &content, &effectiveAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetActivePolicyQueryResponse{}, errs.NewObjectNotFoundError("policy_type", string(query.kind))
	}
	if err != nil {
		return GetActivePolicyQueryResponse{}, err
	}

	policyID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActivePolicyQueryResponse{}, err
	}

	return GetActivePolicyQueryResponse{
		ID:          policyID,
		Kind:        query.kind,
		Version:     version,
		Content:     content,
		EffectiveAt: effectiveAt,
	}, nil
}
