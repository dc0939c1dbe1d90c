// Package settings contains the admin-managed site configuration: free-form
// site settings keyed by name (legal pages, banners, contact blocks) and the
// versioned policy documents customers consent to during order approval.
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
	// ErrSettingIsNotConstructed is returned when a Setting instance was not
	// created through the NewSetting or RestoreSetting factory methods.
	ErrSettingIsNotConstructed = errors.New("Setting must be created via NewSetting constructor")
)

// ValueKind describes how a setting value should be interpreted by consumers.
type ValueKind string

const (
	ValueText ValueKind = "text"
	ValueHTML ValueKind = "html"
	ValueJSON ValueKind = "json"
)

// Validate checks membership in the value-kind enumeration.
func (k ValueKind) Validate() error {
	switch k {
	case ValueText, ValueHTML, ValueJSON:
		return nil
	default:
		return errs.NewValidationErrorWithCause("kind",
			fmt.Errorf("%q is not a valid setting kind", string(k)))
	}
}

const maxSettingKeyLength = 100

// Setting is one named piece of site configuration. The key is immutable and
// unique; the value is replaced wholesale on update, stamped with the admin
// who changed it.
type Setting struct {
	id        kernel.UUID
	key       string
	value     string
	kind      ValueKind
	updatedBy kernel.UUID
	updatedAt time.Time

	isConstructed bool
}

// NewSetting creates a site setting. An empty kind defaults to text.
func NewSetting(
	id kernel.UUID,
	key string,
	value string,
	kind ValueKind,
	updatedBy kernel.UUID,
	updatedAt time.Time,
) (*Setting, error) {
	if kind == "" {
		kind = ValueText
	}

	setting := &Setting{
		value:         value,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		setting.setID(id),
		setting.setKey(key),
		setting.setKind(kind),
		setting.setUpdatedBy(updatedBy),
	); err != nil {
		return nil, err
	}

	return setting, nil
}

// RestoreSetting reconstructs a Setting from persistence.
func RestoreSetting(
	id kernel.UUID,
	key string,
	value string,
	kind ValueKind,
	updatedBy kernel.UUID,
	updatedAt time.Time,
) (*Setting, error) {
	return NewSetting(id, key, value, kind, updatedBy, updatedAt)
}

// Validate ensures the Setting instance was properly constructed.
func (s *Setting) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSettingIsNotConstructed
	}
	return nil
}

// ID returns the setting's unique identifier.
func (s *Setting) ID() kernel.UUID { return s.id }

// Key returns the immutable unique setting name.
func (s *Setting) Key() string { return s.key }

// Value returns the current setting value.
func (s *Setting) Value() string { return s.value }

// Kind returns how the value should be interpreted.
func (s *Setting) Kind() ValueKind { return s.kind }

// UpdatedBy returns the admin who last changed the value.
func (s *Setting) UpdatedBy() kernel.UUID { return s.updatedBy }

// UpdatedAt returns the last change timestamp.
func (s *Setting) UpdatedAt() time.Time { return s.updatedAt }

// UpdateValue replaces the value and stamps the change.
func (s *Setting) UpdateValue(value string, updatedBy kernel.UUID, at time.Time) error {
	if err := updatedBy.Validate(); err != nil {
		return err
	}

	s.value = value
	s.updatedBy = updatedBy
	s.updatedAt = at
	return nil
}

func (s *Setting) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Setting) setKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errs.NewValidationError("key")
	}
	if len(key) > maxSettingKeyLength {
		return errs.NewValidationErrorWithCause("key",
			fmt.Errorf("key exceeds %d characters", maxSettingKeyLength))
	}
	s.key = key
	return nil
}

func (s *Setting) setKind(kind ValueKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	s.kind = kind
	return nil
}

func (s *Setting) setUpdatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.updatedBy = id
	return nil
}
