package returns_test

import (
	"testing"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, kernel.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func testItems(t *testing.T) []*returns.Item {
	t.Helper()
	item, err := returns.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), 1, returns.ReasonWrongSize, "unworn, tags attached")
	require.NoError(t, err)
	return []*returns.Item{item}
}

func newSpec(t *testing.T) returns.NewSpec {
	t.Helper()
	return returns.NewSpec{
		ID:           kernel.NewUUID(),
		ReturnNumber: "RTN-20260829120000-0A1B",
		OrderID:      kernel.NewUUID(),
		CustomerID:   kernel.NewUUID(),
		ReturnType:   returns.TypeRefund,
		Reason:       returns.ReasonWrongSize,
		Description:  "sleeves too short",
		Items:        testItems(t),
		VideoURL:     "https://youtube.com/watch?v=dQw4w9WgXcQ",
		CreatedAt:    time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewItem(t *testing.T) {
	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := returns.NewItem(kernel.NewUUID(), kernel.NewUUID(), 0, returns.ReasonDefective, "")
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects invalid reason", func(t *testing.T) {
		_, err := returns.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, returns.Reason("regret"), "")
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestNewReturn(t *testing.T) {
	t.Run("starts in requested status", func(t *testing.T) {
		spec := newSpec(t)

		ret, err := returns.NewReturn(spec)
		require.NoError(t, err)

		assert.Equal(t, returns.Requested, ret.Status())
		assert.Equal(t, spec.ReturnNumber, ret.ReturnNumber())
		assert.Equal(t, returns.TypeRefund, ret.ReturnType())
		assert.False(t, ret.VideoWaived())
		assert.Nil(t, ret.ApprovedAt())
		assert.Nil(t, ret.CompletedAt())
		require.NoError(t, ret.Validate())
	})

	t.Run("rejects missing video without waiver", func(t *testing.T) {
		spec := newSpec(t)
		spec.VideoURL = ""

		_, err := returns.NewReturn(spec)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("accepts missing video with an admin waiver", func(t *testing.T) {
		spec := newSpec(t)
		spec.VideoURL = ""
		spec.Waiver = &returns.Waiver{AdminID: kernel.NewUUID(), Reason: "long-standing customer"}

		ret, err := returns.NewReturn(spec)
		require.NoError(t, err)
		assert.True(t, ret.VideoWaived())
		assert.Empty(t, ret.VideoURL())
	})

	t.Run("rejects a waiver without a reason", func(t *testing.T) {
		spec := newSpec(t)
		spec.VideoURL = ""
		spec.Waiver = &returns.Waiver{AdminID: kernel.NewUUID()}

		_, err := returns.NewReturn(spec)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		spec := newSpec(t)
		spec.Items = nil

		_, err := returns.NewReturn(spec)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects empty return number", func(t *testing.T) {
		spec := newSpec(t)
		spec.ReturnNumber = ""

		_, err := returns.NewReturn(spec)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var ret returns.Return
		require.ErrorIs(t, ret.Validate(), returns.ErrReturnIsNotConstructed)
	})
}

func TestReturn_ChangeStatus(t *testing.T) {
	at := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	t.Run("approval stamps the approval timestamp", func(t *testing.T) {
		ret, err := returns.NewReturn(newSpec(t))
		require.NoError(t, err)

		err = ret.ChangeStatus(returns.Approved, "looks legitimate", returns.Settlement{}, at)
		require.NoError(t, err)

		assert.Equal(t, returns.Approved, ret.Status())
		require.NotNil(t, ret.ApprovedAt())
		assert.Equal(t, at, *ret.ApprovedAt())
		assert.Equal(t, "looks legitimate", ret.AdminNotes())
	})

	t.Run("refund processing stamps completion and records settlement", func(t *testing.T) {
		ret, err := returns.NewReturn(newSpec(t))
		require.NoError(t, err)

		steps := []returns.Status{
			returns.Approved, returns.LabelSent, returns.ItemShippedBack,
			returns.ItemReceived, returns.InspectedApproved,
		}
		for _, s := range steps {
			require.NoError(t, ret.ChangeStatus(s, "", returns.Settlement{}, at))
		}

		refund := mustMoney(t, "45.00")
		fee := mustMoney(t, "5.00")
		err = ret.ChangeStatus(returns.RefundProcessed, "refund issued",
			returns.Settlement{RefundAmount: &refund, RestockingFee: &fee}, at)
		require.NoError(t, err)

		assert.Equal(t, returns.RefundProcessed, ret.Status())
		require.NotNil(t, ret.CompletedAt())
		assert.Equal(t, at, *ret.CompletedAt())
		require.NotNil(t, ret.Settlement().RefundAmount)
		assert.Equal(t, "45.00 EUR", ret.Settlement().RefundAmount.String())
		require.NotNil(t, ret.Settlement().RestockingFee)
		assert.Equal(t, "5.00 EUR", ret.Settlement().RestockingFee.String())
	})

	t.Run("rejects graph violations without mutating state", func(t *testing.T) {
		ret, err := returns.NewReturn(newSpec(t))
		require.NoError(t, err)

		err = ret.ChangeStatus(returns.RefundProcessed, "", returns.Settlement{}, at)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, returns.Requested, ret.Status())
		assert.Nil(t, ret.CompletedAt())
	})

	t.Run("rejects negative refund amount", func(t *testing.T) {
		ret, err := returns.NewReturn(newSpec(t))
		require.NoError(t, err)

		refund := mustMoney(t, "-1.00")
		err = ret.ChangeStatus(returns.Approved, "",
			returns.Settlement{RefundAmount: &refund}, at)
		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, returns.Requested, ret.Status())
	})

	t.Run("empty notes keep the stored ones", func(t *testing.T) {
		ret, err := returns.NewReturn(newSpec(t))
		require.NoError(t, err)

		require.NoError(t, ret.ChangeStatus(returns.Approved, "first note", returns.Settlement{}, at))
		require.NoError(t, ret.ChangeStatus(returns.LabelSent, "", returns.Settlement{}, at))
		assert.Equal(t, "first note", ret.AdminNotes())
	})
}

func TestRestoreReturn(t *testing.T) {
	t.Run("round trips a settled return", func(t *testing.T) {
		refund := mustMoney(t, "45.00")
		approved := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
		completed := approved.Add(72 * time.Hour)

		spec := returns.RestoreSpec{
			ID:           kernel.NewUUID(),
			ReturnNumber: "RTN-20260829120000-0A1B",
			OrderID:      kernel.NewUUID(),
			CustomerID:   kernel.NewUUID(),
			Status:       returns.RefundProcessed,
			ReturnType:   returns.TypeRefund,
			Reason:       returns.ReasonDefective,
			Items:        testItems(t),
			VideoURL:     "https://youtube.com/watch?v=dQw4w9WgXcQ",
			Settlement:   returns.Settlement{RefundAmount: &refund},
			AdminNotes:   "refund issued",
			ApprovedAt:   &approved,
			CompletedAt:  &completed,
			CreatedAt:    approved.Add(-24 * time.Hour),
		}

		ret, err := returns.RestoreReturn(spec)
		require.NoError(t, err)

		assert.Equal(t, returns.RefundProcessed, ret.Status())
		assert.True(t, ret.Status().IsTerminal())
		assert.Equal(t, spec.AdminNotes, ret.AdminNotes())
		require.NotNil(t, ret.CompletedAt())
		require.NoError(t, ret.Validate())
	})

	t.Run("rejects corrupt status", func(t *testing.T) {
		spec := returns.RestoreSpec{
			ID:           kernel.NewUUID(),
			ReturnNumber: "RTN-20260829120000-0A1B",
			OrderID:      kernel.NewUUID(),
			CustomerID:   kernel.NewUUID(),
			Status:       returns.Status(42),
			ReturnType:   returns.TypeRefund,
			Reason:       returns.ReasonOther,
			Items:        testItems(t),
		}

		_, err := returns.RestoreReturn(spec)
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
