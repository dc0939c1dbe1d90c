package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

var (
	// ErrPolicyVersionIsNotConstructed is returned when a PolicyVersion was
	// not created through the NewPolicyVersion factory method.
	ErrPolicyVersionIsNotConstructed = errors.New(
		"PolicyVersion must be created via NewPolicyVersion constructor")
)

// PolicyKind names the legal document a policy version belongs to.
type PolicyKind string

const (
	PolicyTerms    PolicyKind = "terms"
	PolicyPrivacy  PolicyKind = "privacy"
	PolicyReturns  PolicyKind = "returns"
	PolicyShipping PolicyKind = "shipping"
)

// PolicyKindFromString parses and validates a policy kind.
func PolicyKindFromString(raw string) (PolicyKind, error) {
	kind := PolicyKind(raw)
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

// Validate checks membership in the policy-kind enumeration.
func (k PolicyKind) Validate() error {
	switch k {
	case PolicyTerms, PolicyPrivacy, PolicyReturns, PolicyShipping:
		return nil
	default:
		return errs.NewValidationErrorWithCause("policy_type",
			fmt.Errorf("%q is not a valid policy type", string(k)))
	}
}

// PolicyVersion is one published revision of a legal document. At most one
// version per kind is active; publishing a new one retires the previous
// active version. The content itself is immutable once published.
type PolicyVersion struct {
	id          kernel.UUID
	kind        PolicyKind
	version     string
	content     string
	active      bool
	createdBy   kernel.UUID
	effectiveAt time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewPolicyVersion publishes a policy revision in active state.
func NewPolicyVersion(
	id kernel.UUID,
	kind PolicyKind,
	version string,
	content string,
	createdBy kernel.UUID,
	effectiveAt time.Time,
	createdAt time.Time,
) (*PolicyVersion, error) {
	policy := &PolicyVersion{
		active:        true,
		effectiveAt:   effectiveAt,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		policy.setID(id),
		policy.setKind(kind),
		policy.setVersion(version),
		policy.setContent(content),
		policy.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return policy, nil
}

// RestorePolicyVersion reconstructs a PolicyVersion from persistence.
func RestorePolicyVersion(
	id kernel.UUID,
	kind PolicyKind,
	version string,
	content string,
	active bool,
	createdBy kernel.UUID,
	effectiveAt time.Time,
	createdAt time.Time,
) (*PolicyVersion, error) {
	policy, err := NewPolicyVersion(id, kind, version, content, createdBy, effectiveAt, createdAt)
	if err != nil {
		return nil, err
	}
	policy.active = active
	return policy, nil
}

// Validate ensures the PolicyVersion was properly constructed.
func (p *PolicyVersion) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPolicyVersionIsNotConstructed
	}
	return nil
}

// ID returns the policy version's unique identifier.
func (p *PolicyVersion) ID() kernel.UUID { return p.id }

// Kind returns which legal document this version belongs to.
func (p *PolicyVersion) Kind() PolicyKind { return p.kind }

// Version returns the human-readable version label.
func (p *PolicyVersion) Version() string { return p.version }

// Content returns the full document text.
func (p *PolicyVersion) Content() string { return p.content }

// Active reports whether this is the version currently shown to customers.
func (p *PolicyVersion) Active() bool { return p.active }

// CreatedBy returns the publishing admin.
func (p *PolicyVersion) CreatedBy() kernel.UUID { return p.createdBy }

// EffectiveAt returns when the version takes effect.
func (p *PolicyVersion) EffectiveAt() time.Time { return p.effectiveAt }

// CreatedAt returns the publication timestamp.
func (p *PolicyVersion) CreatedAt() time.Time { return p.createdAt }

// Retire marks the version as no longer current.
func (p *PolicyVersion) Retire() {
	p.active = false
}

func (p *PolicyVersion) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PolicyVersion) setKind(kind PolicyKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	p.kind = kind
	return nil
}

func (p *PolicyVersion) setVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return errs.NewValidationError("version")
	}
	p.version = version
	return nil
}

func (p *PolicyVersion) setContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errs.NewValidationError("content")
	}
	p.content = content
	return nil
}

func (p *PolicyVersion) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.createdBy = id
	return nil
}
