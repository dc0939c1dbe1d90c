package kernel

import (
	"fmt"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when a Money instance was not created
// through NewMoney or MoneyFromDecimal.
var ErrMoneyIsNotConstructed = errs.NewValidationError(
	"Money must be created via NewMoney or MoneyFromDecimal")

// DefaultCurrency is used when a caller does not specify a currency code.
const DefaultCurrency = "EUR"

// Money is a value object representing a monetary amount with two fractional
// digits and an attached currency code.
//
// Money follows these invariants:
//   - The amount is always rounded to exactly two fractional digits (banker's
//     rounding is NOT used; amounts round half away from zero, matching the
//     persistence column type decimal(10,2))
//   - The currency code is a non-empty three-letter string; it is stored as
//     given and deliberately not validated against an ISO list
//   - No currency conversion is performed; arithmetic between differing
//     currencies fails
//
// Example:
//
//	price, _ := kernel.NewMoney("25.00", "EUR")
//	subtotal, _ := price.MulInt(2) // 50.00 EUR
type Money struct {
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

// NewMoney parses amount from its decimal string representation and attaches
// the currency code. An empty currency falls back to DefaultCurrency.
func NewMoney(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValidationErrorWithCause("amount", err)
	}
	return MoneyFromDecimal(d, currency)
}

// MoneyFromDecimal creates Money from an already-parsed decimal value,
// rounding to two fractional digits.
func MoneyFromDecimal(amount decimal.Decimal, currency string) (Money, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return Money{}, errs.NewValidationErrorWithCause("currency",
			fmt.Errorf("%q is not a three-letter code", currency))
	}

	return Money{
		amount:   amount.Round(2),
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	m, _ := MoneyFromDecimal(decimal.Zero, currency)
	return m
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the attached currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns the sum of two amounts. Fails if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValidationErrorWithCause("currency",
			fmt.Errorf("cannot add %s to %s", other.currency, m.currency))
	}
	return MoneyFromDecimal(m.amount.Add(other.amount), m.currency)
}

// MulInt returns the amount multiplied by a whole quantity.
func (m Money) MulInt(n int) (Money, error) {
	return MoneyFromDecimal(m.amount.Mul(decimal.NewFromInt(int64(n))), m.currency)
}

// IsEqual compares amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formats the amount with two fractional digits and the currency code,
// e.g. "50.00 EUR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// Validate ensures the Money instance was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
