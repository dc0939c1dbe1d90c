package ports

import (
	"context"

	"atelier/internal/core/domain/model/settings"
)

// SettingsRepository defines the persistence contract for site settings and
// policy versions.
type SettingsRepository interface {
	// UpsertSetting creates the setting or replaces its value by key.
	UpsertSetting(ctx context.Context, setting *settings.Setting) error

	// GetSetting retrieves a setting by its unique key.
	GetSetting(ctx context.Context, key string) (*settings.Setting, error)

	// AddPolicy persists a newly published policy version. A duplicate
	// kind/version pair is reported as a conflict.
	AddPolicy(ctx context.Context, policy *settings.PolicyVersion) error

	// GetActivePolicy retrieves the currently active version of one policy kind.
	GetActivePolicy(ctx context.Context, kind settings.PolicyKind) (*settings.PolicyVersion, error)

	// RetirePolicies deactivates every active version of one policy kind.
	RetirePolicies(ctx context.Context, kind settings.PolicyKind) error
}
