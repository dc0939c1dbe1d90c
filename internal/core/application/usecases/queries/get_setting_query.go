package queries

import (
	"strings"
	"time"

	"atelier/internal/core/domain/model/settings"
	"atelier/internal/pkg/errs"
)

// GetSettingQuery retrieves one site setting by its unique key. Settings feed
// rendered site content, so any authenticated caller may read them.
type GetSettingQuery struct {
	key string
}

// NewGetSettingQuery creates a setting lookup query.
func NewGetSettingQuery(key string) (GetSettingQuery, error) {
	if strings.TrimSpace(key) == "" {
		return GetSettingQuery{}, errs.NewValidationError("key")
	}

	return GetSettingQuery{key: key}, nil
}

// GetSettingQueryResponse is the setting view returned to the edge.
type GetSettingQueryResponse struct {
	Key       string
	Value     string
	Kind      settings.ValueKind
	UpdatedAt time.Time
}
