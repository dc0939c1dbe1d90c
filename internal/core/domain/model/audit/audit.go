// Package audit contains the append-only record types written alongside state
// changes: order status history, the activity log, and the consent log. They
// are created once, persisted in the same transaction as the change they
// describe, and never mutated.
package audit

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// StatusHistory records one status change of an order or a return.
type StatusHistory struct {
	ID         kernel.UUID
	EntityType string
	EntityID   kernel.UUID
	Status     string
	ChangedBy  kernel.UUID
	Notes      string
	ChangedAt  time.Time
}

// Entity types recorded in status history and activity log rows.
const (
	EntityOrder   = "order"
	EntityReturn  = "return"
	EntityTicket  = "ticket"
	EntitySetting = "site_setting"
	EntityPolicy  = "policy_version"
)

// NewStatusHistory creates a history row for the given entity and status.
func NewStatusHistory(
	id kernel.UUID,
	entityType string,
	entityID kernel.UUID,
	status string,
	changedBy kernel.UUID,
	notes string,
	changedAt time.Time,
) (*StatusHistory, error) {
	if err := errors.Join(id.Validate(), entityID.Validate(), changedBy.Validate()); err != nil {
		return nil, err
	}
	if entityType == "" {
		return nil, errs.NewValidationError("entity_type")
	}
	if status == "" {
		return nil, errs.NewValidationError("status")
	}

	return &StatusHistory{
		ID:         id,
		EntityType: entityType,
		EntityID:   entityID,
		Status:     status,
		ChangedBy:  changedBy,
		Notes:      notes,
		ChangedAt:  changedAt,
	}, nil
}

// ActivityLog records one user action against one entity.
type ActivityLog struct {
	ID         kernel.UUID
	ActorID    kernel.UUID
	Action     string
	EntityType string
	EntityID   kernel.UUID
	Details    string
	IP         string
	CreatedAt  time.Time
}

// NewActivityLog creates an activity row. Details is free-form and may carry a
// JSON payload; IP may be empty for system-initiated actions.
func NewActivityLog(
	id kernel.UUID,
	actorID kernel.UUID,
	action string,
	entityType string,
	entityID kernel.UUID,
	details string,
	ip string,
	createdAt time.Time,
) (*ActivityLog, error) {
	if err := errors.Join(id.Validate(), actorID.Validate(), entityID.Validate()); err != nil {
		return nil, err
	}
	if action == "" {
		return nil, errs.NewValidationError("action")
	}
	if entityType == "" {
		return nil, errs.NewValidationError("entity_type")
	}

	return &ActivityLog{
		ID:         id,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IP:         ip,
		CreatedAt:  createdAt,
	}, nil
}

// ConsentLog records a customer's terms acceptance captured during order
// approval, including the policy versions shown at the time.
type ConsentLog struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	OrderID       kernel.UUID
	TermsVersion  string
	PolicyVersion string
	IP            string
	UserAgent     string
	AcceptedAt    time.Time
}

// NewConsentLog creates a consent row.
func NewConsentLog(
	id kernel.UUID,
	userID kernel.UUID,
	orderID kernel.UUID,
	termsVersion string,
	policyVersion string,
	ip string,
	userAgent string,
	acceptedAt time.Time,
) (*ConsentLog, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &ConsentLog{
		ID:            id,
		UserID:        userID,
		OrderID:       orderID,
		TermsVersion:  termsVersion,
		PolicyVersion: policyVersion,
		IP:            ip,
		UserAgent:     userAgent,
		AcceptedAt:    acceptedAt,
	}, nil
}
