package commands

import (
	"errors"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/settings"
	"atelier/internal/pkg/guard"
)

var (
	ErrPublishPolicyCommandIsNotConstructed = errors.New(
		"PublishPolicyCommand must be created via NewPublishPolicyCommand constructor",
	)
	ErrPolicyVersionIsRequired = errors.New("policy version is required")
	ErrPolicyContentIsRequired = errors.New("policy content is required")
)

// PublishPolicyCommand represents an admin publishing a new revision of one
// legal document, retiring the previously active revision of the same kind.
type PublishPolicyCommand struct { //nolint:recvcheck //using for validation
	adminID     kernel.UUID
	kind        settings.PolicyKind
	version     string
	content     string
	effectiveAt time.Time
	ip          string

	guard guard.ConstructorGuard
}

// NewPublishPolicyCommand creates a publish-policy command. A zero effective
// time means the revision takes effect immediately.
func NewPublishPolicyCommand(
	adminID kernel.UUID,
	kind settings.PolicyKind,
	version string,
	content string,
	effectiveAt time.Time,
	ip string,
) (PublishPolicyCommand, error) {
	cmd := PublishPolicyCommand{
		effectiveAt: effectiveAt,
		ip:          ip,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAdminID(adminID),
		cmd.setKind(kind),
		cmd.setVersion(version),
		cmd.setContent(content),
	); err != nil {
		return PublishPolicyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishPolicyCommand) Validate() error {
	return c.guard.Validate(ErrPublishPolicyCommandIsNotConstructed)
}

// AdminID returns the publishing admin.
func (c PublishPolicyCommand) AdminID() kernel.UUID { return c.adminID }

// Kind returns which legal document is being revised.
func (c PublishPolicyCommand) Kind() settings.PolicyKind { return c.kind }

// Version returns the revision label.
func (c PublishPolicyCommand) Version() string { return c.version }

// Content returns the full document text.
func (c PublishPolicyCommand) Content() string { return c.content }

// EffectiveAt returns when the revision takes effect, possibly zero.
func (c PublishPolicyCommand) EffectiveAt() time.Time { return c.effectiveAt }

// IP returns the requesting client address.
func (c PublishPolicyCommand) IP() string { return c.ip }

func (c *PublishPolicyCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}

func (c *PublishPolicyCommand) setKind(kind settings.PolicyKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *PublishPolicyCommand) setVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return ErrPolicyVersionIsRequired
	}
	c.version = version
	return nil
}

func (c *PublishPolicyCommand) setContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrPolicyContentIsRequired
	}
	c.content = content
	return nil
}
