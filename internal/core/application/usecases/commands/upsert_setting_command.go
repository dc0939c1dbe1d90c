package commands

import (
	"errors"
	"strings"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/settings"
	"atelier/internal/pkg/guard"
)

var (
	ErrUpsertSettingCommandIsNotConstructed = errors.New(
		"UpsertSettingCommand must be created via NewUpsertSettingCommand constructor",
	)
	ErrSettingKeyIsRequired = errors.New("setting key is required")
)

// UpsertSettingCommand represents an admin replacing one site setting value,
// creating the setting when the key does not exist yet.
type UpsertSettingCommand struct { //nolint:recvcheck //using for validation
	adminID kernel.UUID
	key     string
	value   string
	kind    settings.ValueKind
	ip      string

	guard guard.ConstructorGuard
}

// NewUpsertSettingCommand creates an upsert-setting command. An empty kind is
// left for the aggregate to default.
func NewUpsertSettingCommand(
	adminID kernel.UUID,
	key string,
	value string,
	kind settings.ValueKind,
	ip string,
) (UpsertSettingCommand, error) {
	cmd := UpsertSettingCommand{
		value: value,
		ip:    ip,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAdminID(adminID),
		cmd.setKey(key),
		cmd.setKind(kind),
	); err != nil {
		return UpsertSettingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertSettingCommand) Validate() error {
	return c.guard.Validate(ErrUpsertSettingCommandIsNotConstructed)
}

// AdminID returns the admin performing the change.
func (c UpsertSettingCommand) AdminID() kernel.UUID { return c.adminID }

// Key returns the setting name.
func (c UpsertSettingCommand) Key() string { return c.key }

// Value returns the new setting value.
func (c UpsertSettingCommand) Value() string { return c.value }

// Kind returns the requested value kind, possibly empty.
func (c UpsertSettingCommand) Kind() settings.ValueKind { return c.kind }

// IP returns the requesting client address.
func (c UpsertSettingCommand) IP() string { return c.ip }

func (c *UpsertSettingCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}

func (c *UpsertSettingCommand) setKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrSettingKeyIsRequired
	}
	c.key = key
	return nil
}

func (c *UpsertSettingCommand) setKind(kind settings.ValueKind) error {
	if kind == "" {
		return nil
	}
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}
