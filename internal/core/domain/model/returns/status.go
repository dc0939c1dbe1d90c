package returns

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Status represents the lifecycle state of a return request.
// Like the order status, transitions are validated against an explicit
// adjacency graph before being applied.
//
// The refund path runs:
//
//	requested -> approved -> label_sent -> item_shipped_back -> item_received
//	  -> inspected_approved -> refund_processed
//
// with rejection exits at request and inspection time, and exchange_shipped
// as the alternative completion for exchange-type returns.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Requested is the initial state of every return.
	Requested

	// Approved indicates an admin accepted the return request.
	Approved

	// Rejected is a final state: the request was declined outright.
	Rejected

	// LabelSent indicates a shipping label was issued to the customer.
	LabelSent

	// ItemShippedBack indicates the customer dispatched the items.
	ItemShippedBack

	// ItemReceived indicates the items arrived back at the warehouse.
	ItemReceived

	// InspectedApproved indicates inspection passed and settlement follows.
	InspectedApproved

	// InspectedRejected is a final state: inspection failed.
	InspectedRejected

	// RefundProcessed is a final state: the refund was paid out.
	RefundProcessed

	// ExchangeShipped is a final state: replacement items were dispatched.
	ExchangeShipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "unknown",
		Requested:         "requested",
		Approved:          "approved",
		Rejected:          "rejected",
		LabelSent:         "label_sent",
		ItemShippedBack:   "item_shipped_back",
		ItemReceived:      "item_received",
		InspectedApproved: "inspected_approved",
		InspectedRejected: "inspected_rejected",
		RefundProcessed:   "refund_processed",
		ExchangeShipped:   "exchange_shipped",
	}
}

// transitions is the adjacency graph for return status changes. Statuses with
// no entry are terminal.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Requested:         {Approved, Rejected},
		Approved:          {LabelSent, ItemShippedBack},
		LabelSent:         {ItemShippedBack},
		ItemShippedBack:   {ItemReceived},
		ItemReceived:      {InspectedApproved, InspectedRejected},
		InspectedApproved: {RefundProcessed, ExchangeShipped},
	}
}

// StatusFromString parses the snake_case wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationErrorWithCause("status",
		fmt.Errorf("%q is not a valid return status", s))
}

// Validate checks membership in the enumeration.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%d is not a valid return status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// CanTransitionTo reports whether the graph contains an edge from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the graph and returns the new status.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewConflictError("status",
			fmt.Sprintf("cannot transition return from %s to %s", s, next))
	}

	return next, nil
}
