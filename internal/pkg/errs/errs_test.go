package errs_test

import (
	"errors"
	"testing"

	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	t.Run("NewValidationError", func(t *testing.T) {
		err := errs.NewValidationError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValidation, err.Unwrap())
	})

	t.Run("NewValidationErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be greater than 0")
		err := errs.NewValidationErrorWithCause("quantity", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: quantity (cause: must be greater than 0)", err.Error())
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("sanitize collapses newlines", func(t *testing.T) {
		err := errs.NewValidationErrorWithCause("notes", errors.New("hello\nworld"))
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestAuthorizationError(t *testing.T) {
	err := errs.NewAuthorizationError("approve order")

	assert.Equal(t, "approve order", err.Action)
	assert.Equal(t, "not permitted: approve order", err.Error())
	assert.Equal(t, errs.ErrAuthorization, err.Unwrap())
}

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderID", "123")

		assert.Equal(t, "orderID", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderID", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderID, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("status", "order is not pending approval")

		assert.Equal(t, "conflict: status: order is not pending approval", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicate key value violates unique constraint")
		err := errs.NewConflictErrorWithCause("order_number", "already taken", cause)

		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "duplicate key")
	})
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.NewPersistenceError("insert order", cause)

	assert.Equal(t, "insert order", err.Op)
	assert.Equal(t, "persistence failure: insert order (cause: connection reset)", err.Error())
	assert.Equal(t, errs.ErrPersistence, err.Unwrap())
}
