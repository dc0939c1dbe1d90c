package order

import (
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// VideoType distinguishes an uploaded package-opening video from an external link.
type VideoType string

const (
	// VideoFile marks a video uploaded to the system's own media store.
	VideoFile VideoType = "file"

	// VideoLink marks an externally hosted video referenced by URL.
	VideoLink VideoType = "link"
)

// Validate checks membership in the video type enumeration.
func (v VideoType) Validate() error {
	if v != VideoFile && v != VideoLink {
		return errs.NewValidationErrorWithCause("video_type",
			fmt.Errorf("%q is not a valid video type", string(v)))
	}
	return nil
}

// Tracking carries courier tracking detail attached during shipping transitions.
// Empty fields leave the previously stored value untouched.
type Tracking struct {
	Number      string
	URL         string
	CourierName string
}

// VideoEvidence records the package-opening video attached to an order.
type VideoEvidence struct {
	URL        string
	Type       VideoType
	UploadedAt time.Time
}

// Consent records the customer's terms acceptance captured during approval.
type Consent struct {
	AcceptedAt time.Time
	IP         string
	UserAgent  string
}

// Details carries the optional attributes supplied at order creation.
type Details struct {
	PaymentMethod       string
	ShippingAddressID   *kernel.UUID
	BillingAddressID    *kernel.UUID
	SpecialInstructions string
	InternalNotes       string
	EstimatedDelivery   *time.Time
}

// Order represents a customer's purchase tracked through the fulfillment
// lifecycle. It is the aggregate root owning its order lines.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty, immutable order number
//   - Must reference the owning customer and the creating admin
//   - Must own at least one item; the total amount equals the sum of item
//     subtotals at creation time
//   - Status is always a member of the fixed enumeration and every change is
//     validated before being applied
//   - Can only be created through NewOrder (or rehydrated through RestoreOrder)
type Order struct {
	id            kernel.UUID
	orderNumber   string
	customerID    kernel.UUID
	adminID       kernel.UUID
	status        Status
	items         []*Item
	totalAmount   kernel.Money
	currency      string
	paymentStatus PaymentStatus
	details       Details
	tracking      Tracking
	consent       *Consent
	video         *VideoEvidence

	confirmedAt    *time.Time
	actualDelivery *time.Time
	createdAt      time.Time

	isConstructed bool
}

// NewOrder creates a new Order in PendingApproval status with payment pending.
//
// All items must be priced in the given currency (empty currency falls back to
// the kernel default). The total amount is computed as the exact sum of item
// subtotals; callers never supply it.
//
// Returns a validation error when the item list is empty, any item is invalid,
// or any identifier fails validation.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	adminID kernel.UUID,
	items []*Item,
	currency string,
	details Details,
	createdAt time.Time,
) (*Order, error) {
	if currency == "" {
		currency = kernel.DefaultCurrency
	}

	order := &Order{
		status:        PendingApproval,
		paymentStatus: PaymentPending,
		currency:      currency,
		details:       details,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setCustomerID(customerID),
		order.setAdminID(adminID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreSpec carries the full persisted state of an order for rehydration.
type RestoreSpec struct {
	ID             kernel.UUID
	OrderNumber    string
	CustomerID     kernel.UUID
	AdminID        kernel.UUID
	Status         Status
	Items          []*Item
	TotalAmount    kernel.Money
	Currency       string
	PaymentStatus  PaymentStatus
	Details        Details
	Tracking       Tracking
	Consent        *Consent
	Video          *VideoEvidence
	ConfirmedAt    *time.Time
	ActualDelivery *time.Time
	CreatedAt      time.Time
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder, the
// stored status and total are kept, but both are validated so corrupt rows
// surface as errors instead of invalid aggregates.
func RestoreOrder(spec RestoreSpec) (*Order, error) {
	if err := errors.Join(
		spec.ID.Validate(),
		spec.CustomerID.Validate(),
		spec.AdminID.Validate(),
		spec.Status.Validate(),
		spec.PaymentStatus.Validate(),
		spec.TotalAmount.Validate(),
	); err != nil {
		return nil, err
	}
	if spec.OrderNumber == "" {
		return nil, errs.NewValidationError("order_number")
	}

	return &Order{
		id:             spec.ID,
		orderNumber:    spec.OrderNumber,
		customerID:     spec.CustomerID,
		adminID:        spec.AdminID,
		status:         spec.Status,
		items:          spec.Items,
		totalAmount:    spec.TotalAmount,
		currency:       spec.Currency,
		paymentStatus:  spec.PaymentStatus,
		details:        spec.Details,
		tracking:       spec.Tracking,
		consent:        spec.Consent,
		video:          spec.Video,
		confirmedAt:    spec.ConfirmedAt,
		actualDelivery: spec.ActualDelivery,
		createdAt:      spec.CreatedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Called by repositories before persisting to prevent bypassing validation
// with a directly instantiated struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the immutable human-readable order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// AdminID returns the identifier of the admin who created the order.
func (o *Order) AdminID() kernel.UUID { return o.adminID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Items returns the order lines.
func (o *Order) Items() []*Item { return o.items }

// TotalAmount returns the sum of item subtotals computed at creation time.
func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }

// Currency returns the order currency code.
func (o *Order) Currency() string { return o.currency }

// PaymentStatus returns the payment-side status.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Details returns the optional creation attributes.
func (o *Order) Details() Details { return o.details }

// Tracking returns the courier tracking detail.
func (o *Order) Tracking() Tracking { return o.tracking }

// Consent returns the recorded terms acceptance, or nil before approval.
func (o *Order) Consent() *Consent { return o.consent }

// Video returns the attached package-opening video, or nil.
func (o *Order) Video() *VideoEvidence { return o.video }

// ConfirmedAt returns the approval timestamp, or nil before approval.
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// ActualDelivery returns the delivery timestamp, or nil before delivery.
func (o *Order) ActualDelivery() *time.Time { return o.actualDelivery }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Approve records the owning customer's approval of a pending order.
//
// Business rules, checked in this sequence:
//   - the caller must be the owning customer (authorization error otherwise)
//   - terms must be accepted (validation error otherwise)
//   - the order must currently be in PendingApproval (conflict error otherwise)
//
// On success the order moves to Confirmed, the confirmation timestamp is
// stamped, and the consent record is stored. On any failure the order is left
// completely unchanged.
func (o *Order) Approve(byCustomer kernel.UUID, termsAccepted bool, consent Consent) error {
	if !o.customerID.IsEqual(byCustomer) {
		return errs.NewAuthorizationError("approve order")
	}
	if !termsAccepted {
		return errs.NewValidationErrorWithCause("terms_accepted",
			errors.New("terms and conditions must be accepted"))
	}
	if o.status != PendingApproval {
		return errs.NewConflictError("status",
			fmt.Sprintf("order %s cannot be approved in status %s", o.orderNumber, o.status))
	}

	o.status = Confirmed
	at := consent.AcceptedAt
	o.confirmedAt = &at
	o.consent = &consent
	return nil
}

// TransitionTo applies an admin-initiated status change, validated against the
// adjacency graph. Tracking fields that are non-empty replace the stored ones.
// Moving to Delivered stamps the actual-delivery timestamp.
func (o *Order) TransitionTo(next Status, tracking Tracking, at time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.mergeTracking(tracking)
	if newStatus == Delivered {
		o.actualDelivery = &at
	}
	return nil
}

// RequestReturn flips a delivered or completed order to ReturnRequested.
// This is the only path out of Completed; it is driven by the return
// lifecycle, not by the admin transition graph.
func (o *Order) RequestReturn() error {
	if !o.status.IsReturnEligible() {
		return errs.NewConflictError("status",
			fmt.Sprintf("order %s is not eligible for return in status %s", o.orderNumber, o.status))
	}

	o.status = ReturnRequested
	return nil
}

// MarkReturnApproved flips the order to ReturnApproved when its return request
// is accepted by an admin.
func (o *Order) MarkReturnApproved() error {
	if o.status != ReturnRequested {
		return errs.NewConflictError("status",
			fmt.Sprintf("order %s has no pending return request in status %s", o.orderNumber, o.status))
	}

	o.status = ReturnApproved
	return nil
}

// CompleteRefund closes the return flow: the order moves to RefundCompleted
// and the payment status flips to refunded. Valid only while the order is on
// the return track.
func (o *Order) CompleteRefund() error {
	switch o.status {
	case ReturnApproved, ReturnInTransit, Returned, RefundInitiated:
		o.status = RefundCompleted
		o.paymentStatus = PaymentRefunded
		return nil
	default:
		return errs.NewConflictError("status",
			fmt.Sprintf("order %s cannot complete a refund in status %s", o.orderNumber, o.status))
	}
}

// AttachVideo stores the package-opening video reference.
func (o *Order) AttachVideo(url string, videoType VideoType, at time.Time) error {
	if url == "" {
		return errs.NewValidationError("video_url")
	}
	if err := videoType.Validate(); err != nil {
		return err
	}

	o.video = &VideoEvidence{URL: url, Type: videoType, UploadedAt: at}
	return nil
}

func (o *Order) mergeTracking(t Tracking) {
	if t.Number != "" {
		o.tracking.Number = t.Number
	}
	if t.URL != "" {
		o.tracking.URL = t.URL
	}
	if t.CourierName != "" {
		o.tracking.CourierName = t.CourierName
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(number string) error {
	if number == "" {
		return errs.NewValidationError("order_number")
	}
	o.orderNumber = number
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.adminID = id
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValidationErrorWithCause("items",
			errors.New("order must contain at least one item"))
	}

	total := kernel.Zero(o.currency)
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}

		var err error
		total, err = total.Add(item.Subtotal())
		if err != nil {
			return err
		}
	}

	if !total.IsPositive() {
		return errs.NewValidationErrorWithCause("total_amount",
			fmt.Errorf("%s is not greater than 0", total))
	}

	o.items = items
	o.totalAmount = total
	return nil
}
