package customer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not
	// created through the NewCustomer factory method.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

// Language is the customer's preferred notification language.
type Language string

const (
	LanguageEN Language = "en"
	LanguageNL Language = "nl"
	LanguageFR Language = "fr"
)

// Validate checks membership in the language enumeration.
func (l Language) Validate() error {
	if l != LanguageEN && l != LanguageNL && l != LanguageFR {
		return errs.NewValidationErrorWithCause("language",
			fmt.Errorf("%q is not a supported language", string(l)))
	}
	return nil
}

// Profile carries the optional business attributes of a customer.
type Profile struct {
	CompanyName string
	VATNumber   string
	Whatsapp    string
}

// Customer represents a buyer identity with denormalized purchase counters.
//
// The total_orders and total_spent counters are maintained by the order
// lifecycle, not by database triggers: RecordApprovedOrder must be called in
// the same transaction as the order approval for the counters to stay correct.
type Customer struct {
	id          kernel.UUID
	userID      kernel.UUID
	name        string
	email       string
	language    Language
	profile     Profile
	totalOrders int
	totalSpent  kernel.Money
	createdAt   time.Time

	isConstructed bool
}

// NewCustomer creates a customer with zeroed purchase counters. An empty
// language defaults to English.
func NewCustomer(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	email string,
	language Language,
	profile Profile,
	createdAt time.Time,
) (*Customer, error) {
	if language == "" {
		language = LanguageEN
	}

	customer := &Customer{
		profile:       profile,
		totalSpent:    kernel.Zero(kernel.DefaultCurrency),
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		customer.setID(id),
		customer.setUserID(userID),
		customer.setName(name),
		customer.setEmail(email),
		customer.setLanguage(language),
	); err != nil {
		return nil, err
	}

	return customer, nil
}

// RestoreSpec carries the full persisted state of a customer for rehydration.
type RestoreSpec struct {
	ID          kernel.UUID
	UserID      kernel.UUID
	Name        string
	Email       string
	Language    Language
	Profile     Profile
	TotalOrders int
	TotalSpent  kernel.Money
	CreatedAt   time.Time
}

// RestoreCustomer reconstructs a Customer from persistence.
func RestoreCustomer(spec RestoreSpec) (*Customer, error) {
	customer, err := NewCustomer(
		spec.ID, spec.UserID, spec.Name, spec.Email, spec.Language, spec.Profile, spec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if spec.TotalOrders < 0 {
		return nil, errs.NewValidationErrorWithCause("total_orders",
			fmt.Errorf("%d is negative", spec.TotalOrders))
	}
	if err := spec.TotalSpent.Validate(); err != nil {
		return nil, err
	}

	customer.totalOrders = spec.TotalOrders
	customer.totalSpent = spec.TotalSpent
	return customer, nil
}

// Validate ensures the Customer instance was properly constructed.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// IsEqual compares two customers by their unique identifiers.
func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID { return c.id }

// UserID returns the linked user identity.
func (c *Customer) UserID() kernel.UUID { return c.userID }

// Name returns the customer's display name.
func (c *Customer) Name() string { return c.name }

// Email returns the notification address.
func (c *Customer) Email() string { return c.email }

// Language returns the preferred notification language.
func (c *Customer) Language() Language { return c.language }

// Profile returns the optional business attributes.
func (c *Customer) Profile() Profile { return c.profile }

// TotalOrders returns the denormalized approved-order count.
func (c *Customer) TotalOrders() int { return c.totalOrders }

// TotalSpent returns the denormalized approved-order spend.
func (c *Customer) TotalSpent() kernel.Money { return c.totalSpent }

// CreatedAt returns the creation timestamp.
func (c *Customer) CreatedAt() time.Time { return c.createdAt }

// RecordApprovedOrder bumps the purchase counters by one order of the given
// amount. Callers must persist the customer in the same transaction as the
// approval for the counters to stay consistent.
func (c *Customer) RecordApprovedOrder(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	total, err := c.totalSpent.Add(amount)
	if err != nil {
		return err
	}

	c.totalOrders++
	c.totalSpent = total
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.userID = id
	return nil
}

func (c *Customer) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValidationError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return errs.NewValidationErrorWithCause("email",
			fmt.Errorf("%q is not a valid address", email))
	}
	c.email = email
	return nil
}

func (c *Customer) setLanguage(language Language) error {
	if err := language.Validate(); err != nil {
		return err
	}
	c.language = language
	return nil
}
