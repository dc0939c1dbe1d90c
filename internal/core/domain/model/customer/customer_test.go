package customer_test

import (
	"testing"
	"time"

	"atelier/internal/core/domain/model/customer"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(
		kernel.NewUUID(), kernel.NewUUID(), "Marta Janssens", "marta@example.com",
		customer.LanguageNL, customer.Profile{CompanyName: "Janssens BV"},
		time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	t.Run("starts with zeroed counters", func(t *testing.T) {
		c := newTestCustomer(t)

		assert.Zero(t, c.TotalOrders())
		assert.Equal(t, "0.00 EUR", c.TotalSpent().String())
		assert.Equal(t, customer.LanguageNL, c.Language())
		require.NoError(t, c.Validate())
	})

	t.Run("empty language defaults to english", func(t *testing.T) {
		c, err := customer.NewCustomer(
			kernel.NewUUID(), kernel.NewUUID(), "Ana", "ana@example.com",
			"", customer.Profile{}, time.Now())
		require.NoError(t, err)
		assert.Equal(t, customer.LanguageEN, c.Language())
	})

	t.Run("rejects unsupported language", func(t *testing.T) {
		_, err := customer.NewCustomer(
			kernel.NewUUID(), kernel.NewUUID(), "Ana", "ana@example.com",
			customer.Language("de"), customer.Profile{}, time.Now())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects blank name and malformed email", func(t *testing.T) {
		_, err := customer.NewCustomer(
			kernel.NewUUID(), kernel.NewUUID(), "  ", "ana@example.com",
			customer.LanguageEN, customer.Profile{}, time.Now())
		require.ErrorIs(t, err, errs.ErrValidation)

		_, err = customer.NewCustomer(
			kernel.NewUUID(), kernel.NewUUID(), "Ana", "not-an-address",
			customer.LanguageEN, customer.Profile{}, time.Now())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c customer.Customer
		require.ErrorIs(t, c.Validate(), customer.ErrCustomerIsNotConstructed)
	})
}

func TestCustomer_RecordApprovedOrder(t *testing.T) {
	c := newTestCustomer(t)

	first, err := kernel.NewMoney("50.00", kernel.DefaultCurrency)
	require.NoError(t, err)
	second, err := kernel.NewMoney("29.97", kernel.DefaultCurrency)
	require.NoError(t, err)

	require.NoError(t, c.RecordApprovedOrder(first))
	require.NoError(t, c.RecordApprovedOrder(second))

	assert.Equal(t, 2, c.TotalOrders())
	assert.Equal(t, "79.97 EUR", c.TotalSpent().String())
}

func TestRestoreCustomer(t *testing.T) {
	spent, err := kernel.NewMoney("120.00", kernel.DefaultCurrency)
	require.NoError(t, err)

	t.Run("keeps stored counters", func(t *testing.T) {
		c, err := customer.RestoreCustomer(customer.RestoreSpec{
			ID:          kernel.NewUUID(),
			UserID:      kernel.NewUUID(),
			Name:        "Marta Janssens",
			Email:       "marta@example.com",
			Language:    customer.LanguageFR,
			TotalOrders: 3,
			TotalSpent:  spent,
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, c.TotalOrders())
		assert.Equal(t, "120.00 EUR", c.TotalSpent().String())
	})

	t.Run("rejects negative order count", func(t *testing.T) {
		_, err := customer.RestoreCustomer(customer.RestoreSpec{
			ID:          kernel.NewUUID(),
			UserID:      kernel.NewUUID(),
			Name:        "Marta Janssens",
			Email:       "marta@example.com",
			Language:    customer.LanguageEN,
			TotalOrders: -1,
			TotalSpent:  spent,
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
