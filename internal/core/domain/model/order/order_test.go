package order_test

import (
	"testing"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, "EUR")
	require.NoError(t, err)
	return m
}

func shirtItems(t *testing.T) []*order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), order.ItemSpec{
		ProductName: "Shirt",
		Quantity:    2,
		UnitPrice:   mustMoney(t, "25.00"),
	})
	require.NoError(t, err)
	return []*order.Item{item}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewReference("ORD", time.Now()),
		kernel.NewUUID(),
		kernel.NewUUID(),
		shirtItems(t),
		"EUR",
		order.Details{},
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("subtotal is quantity times unit price", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), order.ItemSpec{
			ProductName: "Jacket",
			Quantity:    3,
			UnitPrice:   mustMoney(t, "99.99"),
		})

		require.NoError(t, err)
		assert.Equal(t, "299.97 EUR", item.Subtotal().String())
	})

	t.Run("quantity below one rejected", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), order.ItemSpec{
			ProductName: "Jacket",
			Quantity:    0,
			UnitPrice:   mustMoney(t, "10.00"),
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("negative unit price rejected", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), order.ItemSpec{
			ProductName: "Jacket",
			Quantity:    1,
			UnitPrice:   mustMoney(t, "-1.00"),
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("missing product name rejected", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), order.ItemSpec{
			Quantity:  1,
			UnitPrice: mustMoney(t, "10.00"),
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total and starts pending approval", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.PendingApproval, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, "50.00 EUR", o.TotalAmount().String())
	})

	t.Run("total sums multiple items exactly", func(t *testing.T) {
		a, err := order.NewItem(kernel.NewUUID(), order.ItemSpec{
			ProductName: "Shirt", Quantity: 2, UnitPrice: mustMoney(t, "25.00"),
		})
		require.NoError(t, err)
		b, err := order.NewItem(kernel.NewUUID(), order.ItemSpec{
			ProductName: "Tie", Quantity: 3, UnitPrice: mustMoney(t, "9.99"),
		})
		require.NoError(t, err)

		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(),
			[]*order.Item{a, b}, "EUR", order.Details{}, time.Now())

		require.NoError(t, err)
		assert.Equal(t, "79.97 EUR", o.TotalAmount().String())
	})

	t.Run("empty items rejected", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(),
			nil, "EUR", order.Details{}, time.Now())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("missing order number rejected", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "", kernel.NewUUID(), kernel.NewUUID(),
			shirtItems(t), "EUR", order.Details{}, time.Now())
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestOrder_Approve(t *testing.T) {
	consent := func() order.Consent {
		return order.Consent{AcceptedAt: time.Now(), IP: "203.0.113.7"}
	}

	t.Run("owner with accepted terms confirms the order", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Approve(o.CustomerID(), true, consent())

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		require.NotNil(t, o.ConfirmedAt())
		require.NotNil(t, o.Consent())
		assert.Equal(t, "203.0.113.7", o.Consent().IP)
	})

	t.Run("non-owner is rejected and status unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Approve(kernel.NewUUID(), true, consent())

		require.ErrorIs(t, err, errs.ErrAuthorization)
		assert.Equal(t, order.PendingApproval, o.Status())
	})

	t.Run("terms not accepted is a validation error", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Approve(o.CustomerID(), false, consent())

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, order.PendingApproval, o.Status())
		assert.Nil(t, o.ConfirmedAt())
	})

	t.Run("already confirmed is a conflict", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Approve(o.CustomerID(), true, consent()))

		err := o.Approve(o.CustomerID(), true, consent())

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Confirmed, o.Status())
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("delivered stamps actual delivery", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Approve(o.CustomerID(), true, order.Consent{AcceptedAt: time.Now()}))

		for _, s := range []order.Status{
			order.InProduction, order.QualityCheck, order.Packed, order.Shipped,
		} {
			require.NoError(t, o.TransitionTo(s, order.Tracking{}, time.Now()))
		}

		deliveredAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
		err := o.TransitionTo(order.Delivered, order.Tracking{}, deliveredAt)

		require.NoError(t, err)
		require.NotNil(t, o.ActualDelivery())
		assert.Equal(t, deliveredAt, *o.ActualDelivery())
	})

	t.Run("tracking fields merge without clearing", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Approve(o.CustomerID(), true, order.Consent{AcceptedAt: time.Now()}))
		for _, s := range []order.Status{order.InProduction, order.QualityCheck, order.Packed} {
			require.NoError(t, o.TransitionTo(s, order.Tracking{}, time.Now()))
		}

		require.NoError(t, o.TransitionTo(order.Shipped,
			order.Tracking{Number: "1Z999", CourierName: "DHL"}, time.Now()))
		require.NoError(t, o.TransitionTo(order.InTransit,
			order.Tracking{URL: "https://track.example/1Z999"}, time.Now()))

		assert.Equal(t, "1Z999", o.Tracking().Number)
		assert.Equal(t, "DHL", o.Tracking().CourierName)
		assert.Equal(t, "https://track.example/1Z999", o.Tracking().URL)
	})

	t.Run("graph violation leaves status unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.TransitionTo(order.Delivered, order.Tracking{}, time.Now())

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.PendingApproval, o.Status())
		assert.Nil(t, o.ActualDelivery())
	})
}

func TestOrder_ReturnFlow(t *testing.T) {
	deliver := func(t *testing.T) *order.Order {
		o := newTestOrder(t)
		require.NoError(t, o.Approve(o.CustomerID(), true, order.Consent{AcceptedAt: time.Now()}))
		for _, s := range []order.Status{
			order.InProduction, order.QualityCheck, order.Packed,
			order.Shipped, order.Delivered,
		} {
			require.NoError(t, o.TransitionTo(s, order.Tracking{}, time.Now()))
		}
		return o
	}

	t.Run("request return from delivered", func(t *testing.T) {
		o := deliver(t)

		require.NoError(t, o.RequestReturn())
		assert.Equal(t, order.ReturnRequested, o.Status())
	})

	t.Run("request return from completed", func(t *testing.T) {
		o := deliver(t)
		require.NoError(t, o.TransitionTo(order.Completed, order.Tracking{}, time.Now()))

		require.NoError(t, o.RequestReturn())
		assert.Equal(t, order.ReturnRequested, o.Status())
	})

	t.Run("return rejected before delivery", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.RequestReturn()

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.PendingApproval, o.Status())
	})

	t.Run("refund completion flips payment status", func(t *testing.T) {
		o := deliver(t)
		require.NoError(t, o.RequestReturn())
		require.NoError(t, o.MarkReturnApproved())

		require.NoError(t, o.CompleteRefund())
		assert.Equal(t, order.RefundCompleted, o.Status())
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("refund without return track is a conflict", func(t *testing.T) {
		o := deliver(t)

		err := o.CompleteRefund()
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestOrder_AttachVideo(t *testing.T) {
	o := newTestOrder(t)
	at := time.Now()

	require.NoError(t, o.AttachVideo("https://youtube.com/watch?v=dQw4w9WgXcQ", order.VideoLink, at))

	require.NotNil(t, o.Video())
	assert.Equal(t, order.VideoLink, o.Video().Type)
	assert.Equal(t, at, o.Video().UploadedAt)

	require.Error(t, o.AttachVideo("", order.VideoLink, at))
	require.Error(t, o.AttachVideo("https://x.example/v.mp4", order.VideoType("stream"), at))
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trips aggregate state", func(t *testing.T) {
		o := newTestOrder(t)

		restored, err := order.RestoreOrder(order.RestoreSpec{
			ID:            o.ID(),
			OrderNumber:   o.OrderNumber(),
			CustomerID:    o.CustomerID(),
			AdminID:       o.AdminID(),
			Status:        o.Status(),
			Items:         o.Items(),
			TotalAmount:   o.TotalAmount(),
			Currency:      o.Currency(),
			PaymentStatus: o.PaymentStatus(),
			CreatedAt:     o.CreatedAt(),
		})

		require.NoError(t, err)
		assert.True(t, o.IsEqual(restored))
		assert.Equal(t, o.TotalAmount().String(), restored.TotalAmount().String())
	})

	t.Run("rejects corrupt status", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := order.RestoreOrder(order.RestoreSpec{
			ID:            o.ID(),
			OrderNumber:   o.OrderNumber(),
			CustomerID:    o.CustomerID(),
			AdminID:       o.AdminID(),
			Status:        order.Status(77),
			TotalAmount:   o.TotalAmount(),
			PaymentStatus: o.PaymentStatus(),
		})
		require.Error(t, err)
	})
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}
