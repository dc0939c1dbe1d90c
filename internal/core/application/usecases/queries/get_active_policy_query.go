package queries

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/settings"
)

// GetActivePolicyQuery retrieves the currently active revision of one legal
// document, the one customers see when they accept terms.
type GetActivePolicyQuery struct {
	kind settings.PolicyKind
}

// NewGetActivePolicyQuery creates an active-policy lookup query.
func NewGetActivePolicyQuery(kind settings.PolicyKind) (GetActivePolicyQuery, error) {
	if err := kind.Validate(); err != nil {
		return GetActivePolicyQuery{}, err
	}

	return GetActivePolicyQuery{kind: kind}, nil
}

// GetActivePolicyQueryResponse is the active policy revision view.
type GetActivePolicyQueryResponse struct {
	ID          kernel.UUID
	Kind        settings.PolicyKind
	Version     string
	Content     string
	EffectiveAt time.Time
}
