package returns

import (
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

var (
	// ErrReturnIsNotConstructed is returned when a Return instance was not created
	// through the NewReturn factory method.
	ErrReturnIsNotConstructed = errors.New("Return must be created via NewReturn constructor")
)

// Waiver records an admin's decision to accept a return without the otherwise
// mandatory package-opening video.
type Waiver struct {
	AdminID kernel.UUID
	Reason  string
}

// Settlement carries the monetary outcome recorded while processing a refund.
type Settlement struct {
	RefundAmount  *kernel.Money
	RestockingFee *kernel.Money
}

// Return represents a customer's request to send back items from a delivered
// order for refund or exchange. It is the aggregate root owning its lines.
//
// Return follows these invariants:
//   - Must have a valid unique identifier and a non-empty, immutable return number
//   - Must reference the parent order and the owning customer
//   - Must own at least one item
//   - A customer-initiated return carries a package-opening video unless an
//     admin waived it with a recorded reason
//   - Status is always a member of the fixed enumeration and every change is
//     validated against the transition graph
//   - Can only be created through NewReturn (or rehydrated through RestoreReturn)
type Return struct {
	id           kernel.UUID
	returnNumber string
	orderID      kernel.UUID
	customerID   kernel.UUID
	status       Status
	returnType   Type
	reason       Reason
	description  string
	items        []*Item

	videoURL string
	waiver   *Waiver

	settlement Settlement
	adminNotes string

	approvedAt  *time.Time
	completedAt *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewSpec carries the inputs for creating a return request.
type NewSpec struct {
	ID           kernel.UUID
	ReturnNumber string
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	ReturnType   Type
	Reason       Reason
	Description  string
	Items        []*Item
	VideoURL     string
	Waiver       *Waiver
	CreatedAt    time.Time
}

// NewReturn creates a return request in Requested status.
//
// A package-opening video is mandatory unless an admin explicitly waived it;
// a waiver without a recorded reason is rejected.
func NewReturn(spec NewSpec) (*Return, error) {
	ret := &Return{
		status:        Requested,
		description:   spec.Description,
		createdAt:     spec.CreatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		ret.setID(spec.ID),
		ret.setReturnNumber(spec.ReturnNumber),
		ret.setOrderID(spec.OrderID),
		ret.setCustomerID(spec.CustomerID),
		ret.setType(spec.ReturnType),
		ret.setReason(spec.Reason),
		ret.setItems(spec.Items),
		ret.setEvidence(spec.VideoURL, spec.Waiver),
	); err != nil {
		return nil, err
	}

	return ret, nil
}

// RestoreSpec carries the full persisted state of a return for rehydration.
type RestoreSpec struct {
	ID           kernel.UUID
	ReturnNumber string
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	Status       Status
	ReturnType   Type
	Reason       Reason
	Description  string
	Items        []*Item
	VideoURL     string
	Waiver       *Waiver
	Settlement   Settlement
	AdminNotes   string
	ApprovedAt   *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
}

// RestoreReturn reconstructs a Return from persistence. The stored status is
// kept as-is but validated, so corrupt rows surface as errors.
func RestoreReturn(spec RestoreSpec) (*Return, error) {
	if err := errors.Join(
		spec.ID.Validate(),
		spec.OrderID.Validate(),
		spec.CustomerID.Validate(),
		spec.Status.Validate(),
		spec.ReturnType.Validate(),
		spec.Reason.Validate(),
	); err != nil {
		return nil, err
	}
	if spec.ReturnNumber == "" {
		return nil, errs.NewValidationError("return_number")
	}

	return &Return{
		id:            spec.ID,
		returnNumber:  spec.ReturnNumber,
		orderID:       spec.OrderID,
		customerID:    spec.CustomerID,
		status:        spec.Status,
		returnType:    spec.ReturnType,
		reason:        spec.Reason,
		description:   spec.Description,
		items:         spec.Items,
		videoURL:      spec.VideoURL,
		waiver:        spec.Waiver,
		settlement:    spec.Settlement,
		adminNotes:    spec.AdminNotes,
		approvedAt:    spec.ApprovedAt,
		completedAt:   spec.CompletedAt,
		createdAt:     spec.CreatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Return instance was properly constructed.
func (r *Return) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnIsNotConstructed
	}
	return nil
}

// IsEqual compares two returns by their unique identifiers.
func (r *Return) IsEqual(other *Return) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the return's unique identifier.
func (r *Return) ID() kernel.UUID { return r.id }

// ReturnNumber returns the immutable human-readable return number.
func (r *Return) ReturnNumber() string { return r.returnNumber }

// OrderID returns the parent order's identifier.
func (r *Return) OrderID() kernel.UUID { return r.orderID }

// CustomerID returns the owning customer's identifier.
func (r *Return) CustomerID() kernel.UUID { return r.customerID }

// Status returns the current lifecycle status.
func (r *Return) Status() Status { return r.status }

// ReturnType reports whether the return settles as refund or exchange.
func (r *Return) ReturnType() Type { return r.returnType }

// Reason returns the overall return reason.
func (r *Return) Reason() Reason { return r.reason }

// Description returns the customer's free-form description.
func (r *Return) Description() string { return r.description }

// Items returns the return lines.
func (r *Return) Items() []*Item { return r.items }

// VideoURL returns the package-opening video reference, empty when waived.
func (r *Return) VideoURL() string { return r.videoURL }

// VideoWaived reports whether an admin waived the video requirement.
func (r *Return) VideoWaived() bool { return r.waiver != nil }

// Waiver returns the recorded video waiver, or nil.
func (r *Return) Waiver() *Waiver { return r.waiver }

// Settlement returns the recorded refund amount and restocking fee.
func (r *Return) Settlement() Settlement { return r.settlement }

// AdminNotes returns the notes recorded during status changes.
func (r *Return) AdminNotes() string { return r.adminNotes }

// ApprovedAt returns the approval timestamp, or nil before approval.
func (r *Return) ApprovedAt() *time.Time { return r.approvedAt }

// CompletedAt returns the settlement timestamp, or nil until the return
// reaches refund_processed or exchange_shipped.
func (r *Return) CompletedAt() *time.Time { return r.completedAt }

// CreatedAt returns the creation timestamp.
func (r *Return) CreatedAt() time.Time { return r.createdAt }

// ChangeStatus applies an admin-initiated status change, validated against the
// transition graph.
//
// Moving to Approved stamps the approval timestamp. Moving to RefundProcessed
// or ExchangeShipped stamps the completion timestamp. Non-empty admin notes
// replace the stored ones; a provided refund amount or restocking fee is
// recorded on the settlement.
func (r *Return) ChangeStatus(next Status, adminNotes string, settlement Settlement, at time.Time) error {
	newStatus, err := r.status.TransitionTo(next)
	if err != nil {
		return err
	}

	if settlement.RefundAmount != nil {
		if settlement.RefundAmount.IsNegative() {
			return errs.NewValidationErrorWithCause("refund_amount",
				fmt.Errorf("%s is negative", settlement.RefundAmount))
		}
		r.settlement.RefundAmount = settlement.RefundAmount
	}
	if settlement.RestockingFee != nil {
		if settlement.RestockingFee.IsNegative() {
			return errs.NewValidationErrorWithCause("restocking_fee",
				fmt.Errorf("%s is negative", settlement.RestockingFee))
		}
		r.settlement.RestockingFee = settlement.RestockingFee
	}

	r.status = newStatus
	if adminNotes != "" {
		r.adminNotes = adminNotes
	}

	switch newStatus {
	case Approved:
		t := at
		r.approvedAt = &t
	case RefundProcessed, ExchangeShipped:
		t := at
		r.completedAt = &t
	}

	return nil
}

func (r *Return) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Return) setReturnNumber(number string) error {
	if number == "" {
		return errs.NewValidationError("return_number")
	}
	r.returnNumber = number
	return nil
}

func (r *Return) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.orderID = id
	return nil
}

func (r *Return) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.customerID = id
	return nil
}

func (r *Return) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.returnType = t
	return nil
}

func (r *Return) setReason(reason Reason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	r.reason = reason
	return nil
}

func (r *Return) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValidationErrorWithCause("items",
			errors.New("return must contain at least one item"))
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	r.items = items
	return nil
}

func (r *Return) setEvidence(videoURL string, waiver *Waiver) error {
	if waiver != nil {
		if err := waiver.AdminID.Validate(); err != nil {
			return err
		}
		if waiver.Reason == "" {
			return errs.NewValidationErrorWithCause("waiver_reason",
				errors.New("waiving the video requirement needs a recorded reason"))
		}
		r.waiver = waiver
		r.videoURL = videoURL
		return nil
	}

	if videoURL == "" {
		return errs.NewValidationErrorWithCause("video_evidence",
			errors.New("a package-opening video is required unless waived by an admin"))
	}
	r.videoURL = videoURL
	return nil
}
