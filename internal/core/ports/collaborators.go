package ports

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/customer"
	"atelier/internal/core/domain/model/order"
)

// Notifier sends a rendered notification to a recipient address. Delivery is
// best-effort: callers treat failures as retryable, never as a reason to roll
// back committed state.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// StoredMedia describes an uploaded video after the media store accepted it.
type StoredMedia struct {
	URL      string
	Size     int64
	Duration time.Duration
}

// MediaStore persists uploaded package-opening videos.
type MediaStore interface {
	// Upload stores the video content under a generated name and returns
	// where it can be fetched from.
	Upload(ctx context.Context, filename string, content []byte) (StoredMedia, error)

	// Host returns the hostname the store serves media from, used to
	// recognize self-hosted links during validation.
	Host() string
}

// InvoiceRenderer produces a downloadable invoice document for an order.
type InvoiceRenderer interface {
	RenderInvoice(order *order.Order, customer *customer.Customer) ([]byte, error)
}
