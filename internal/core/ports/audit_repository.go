package ports

import (
	"context"

	"atelier/internal/core/domain/model/audit"
)

// AuditRepository defines the persistence contract for the append-only audit
// records. Rows are written in the same transaction as the state change they
// describe and are never updated or deleted.
type AuditRepository interface {
	// AppendStatusHistory records one status change.
	AppendStatusHistory(ctx context.Context, entry *audit.StatusHistory) error

	// AppendActivity records one user action.
	AppendActivity(ctx context.Context, entry *audit.ActivityLog) error

	// AppendConsent records one terms acceptance.
	AppendConsent(ctx context.Context, entry *audit.ConsentLog) error
}
