package returns

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Reason is the customer-stated cause of a return.
type Reason string

const (
	ReasonWrongSize      Reason = "wrong_size"
	ReasonWrongColor     Reason = "wrong_color"
	ReasonDefective      Reason = "defective"
	ReasonNotAsDescribed Reason = "not_as_described"
	ReasonChangedMind    Reason = "changed_mind"
	ReasonOther          Reason = "other"
)

// Validate checks membership in the reason enumeration.
func (r Reason) Validate() error {
	switch r {
	case ReasonWrongSize, ReasonWrongColor, ReasonDefective,
		ReasonNotAsDescribed, ReasonChangedMind, ReasonOther:
		return nil
	default:
		return errs.NewValidationErrorWithCause("reason",
			fmt.Errorf("%q is not a valid return reason", string(r)))
	}
}

// Type distinguishes a refund request from an exchange request.
type Type string

const (
	// TypeRefund settles the return by refunding the payment.
	TypeRefund Type = "refund"

	// TypeExchange settles the return by shipping replacement items.
	TypeExchange Type = "exchange"
)

// Validate checks membership in the return type enumeration.
func (t Type) Validate() error {
	if t != TypeRefund && t != TypeExchange {
		return errs.NewValidationErrorWithCause("return_type",
			fmt.Errorf("%q is not a valid return type", string(t)))
	}
	return nil
}
