package order

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit adjacency graph so every
// transition is validated before it is applied.
//
// The happy path runs:
//
//	pending_approval -> confirmed -> in_production -> quality_check -> packed
//	  -> shipped -> in_transit -> out_for_delivery -> delivered -> completed
//
// Side tracks cover holds, cancellation, and the return/refund flow. Return
// driven flips (return_requested and onward) are applied through dedicated
// Order methods with their own preconditions; the graph governs the
// admin-initiated TransitionTo operation.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is a transient pre-creation state; persisted orders never stay here.
	Draft

	// PendingApproval is the state an order enters immediately upon creation
	// by an admin. The order waits for the owning customer's approval.
	PendingApproval

	// Confirmed indicates the customer approved the order and accepted terms.
	Confirmed

	// InProduction indicates the items are being made.
	InProduction

	// QualityCheck indicates finished items are under inspection.
	QualityCheck

	// Packed indicates the order is packaged and ready to ship.
	Packed

	// Shipped indicates the package has been handed to the courier.
	Shipped

	// InTransit indicates the package is on its way.
	InTransit

	// OutForDelivery indicates the package is out with the last-mile courier.
	OutForDelivery

	// Delivered indicates the package reached the customer.
	// Delivery stamps the actual-delivery timestamp.
	Delivered

	// Completed is a final state: the order is fulfilled and closed.
	Completed

	// OnHold pauses an active order; it can resume to any production state.
	OnHold

	// Cancelled is a final state reached from any pre-shipping state.
	Cancelled

	// ReturnRequested indicates the customer opened a return for this order.
	ReturnRequested

	// ReturnApproved indicates an admin accepted the return request.
	ReturnApproved

	// ReturnInTransit indicates the customer shipped the items back.
	ReturnInTransit

	// Returned is a final state: items arrived back and the case is closed
	// without a refund being initiated through this order.
	Returned

	// RefundInitiated indicates a refund is being processed for the return.
	RefundInitiated

	// RefundCompleted is a final state: the refund was paid out.
	RefundCompleted
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Draft:           "draft",
		PendingApproval: "pending_approval",
		Confirmed:       "confirmed",
		InProduction:    "in_production",
		QualityCheck:    "quality_check",
		Packed:          "packed",
		Shipped:         "shipped",
		InTransit:       "in_transit",
		OutForDelivery:  "out_for_delivery",
		Delivered:       "delivered",
		Completed:       "completed",
		OnHold:          "on_hold",
		Cancelled:       "cancelled",
		ReturnRequested: "return_requested",
		ReturnApproved:  "return_approved",
		ReturnInTransit: "return_in_transit",
		Returned:        "returned",
		RefundInitiated: "refund_initiated",
		RefundCompleted: "refund_completed",
	}
}

// transitions is the adjacency graph for admin-initiated status changes.
// A status missing from the map (or mapped to nil) has no outgoing admin
// transitions: it is terminal for TransitionTo.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:           {PendingApproval, Cancelled},
		PendingApproval: {Confirmed, OnHold, Cancelled},
		Confirmed:       {InProduction, OnHold, Cancelled},
		InProduction:    {QualityCheck, OnHold, Cancelled},
		QualityCheck:    {Packed, InProduction, OnHold, Cancelled},
		Packed:          {Shipped, OnHold, Cancelled},
		Shipped:         {InTransit, Delivered},
		InTransit:       {OutForDelivery, Delivered},
		OutForDelivery:  {Delivered},
		Delivered:       {Completed},
		OnHold:          {Confirmed, InProduction, QualityCheck, Packed, Cancelled},
		ReturnRequested: {ReturnApproved, Delivered},
		ReturnApproved:  {ReturnInTransit, RefundInitiated},
		ReturnInTransit: {Returned, RefundInitiated},
		RefundInitiated: {RefundCompleted},
	}
}

// StatusFromString parses the snake_case representation used on the wire and
// in the database. Returns a validation error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is a member of the enumeration.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing admin transitions.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// CanTransitionTo reports whether the adjacency graph contains an edge from
// s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the adjacency graph and returns the
// new status. Returns a conflict error when no edge exists, leaving the
// caller's state untouched.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewConflictError("status",
			fmt.Sprintf("cannot transition from %s to %s", s, next))
	}

	return next, nil
}

// IsReturnEligible reports whether a return may be opened against an order in
// this status.
func (s Status) IsReturnEligible() bool {
	return s == Delivered || s == Completed
}
