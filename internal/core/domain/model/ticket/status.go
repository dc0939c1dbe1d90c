package ticket

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Category classifies what a support ticket is about.
type Category string

const (
	CategoryOrderIssue      Category = "order_issue"
	CategoryPayment         Category = "payment"
	CategoryShipping        Category = "shipping"
	CategoryReturn          Category = "return"
	CategoryProductQuestion Category = "product_question"
	CategoryOther           Category = "other"
)

// Validate checks membership in the category enumeration.
func (c Category) Validate() error {
	switch c {
	case CategoryOrderIssue, CategoryPayment, CategoryShipping,
		CategoryReturn, CategoryProductQuestion, CategoryOther:
		return nil
	default:
		return errs.NewValidationErrorWithCause("category",
			fmt.Errorf("%q is not a valid ticket category", string(c)))
	}
}

// Priority ranks how urgently a ticket needs attention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Validate checks membership in the priority enumeration.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	default:
		return errs.NewValidationErrorWithCause("priority",
			fmt.Errorf("%q is not a valid ticket priority", string(p)))
	}
}

// Status represents the handling state of a support ticket.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Open is the initial state of every ticket.
	Open

	// InProgress indicates an admin picked the ticket up.
	InProgress

	// WaitingCustomer indicates the admin is blocked on a customer reply.
	WaitingCustomer

	// WaitingAdmin indicates the customer replied and the ball is back with support.
	WaitingAdmin

	// Resolved indicates the issue was answered; the customer may still reopen.
	Resolved

	// Closed is the final state.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Open:            "open",
		InProgress:      "in_progress",
		WaitingCustomer: "waiting_customer",
		WaitingAdmin:    "waiting_admin",
		Resolved:        "resolved",
		Closed:          "closed",
	}
}

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Open:            {InProgress, Resolved, Closed},
		InProgress:      {WaitingCustomer, WaitingAdmin, Resolved, Closed},
		WaitingCustomer: {WaitingAdmin, InProgress, Resolved, Closed},
		WaitingAdmin:    {InProgress, WaitingCustomer, Resolved, Closed},
		Resolved:        {Closed, InProgress},
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
		fmt.Errorf("%q is not a valid ticket status", s))
}

// Validate checks membership in the enumeration.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%d is not a valid ticket status", s))
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
			fmt.Sprintf("cannot transition ticket from %s to %s", s, next))
	}

	return next, nil
}
