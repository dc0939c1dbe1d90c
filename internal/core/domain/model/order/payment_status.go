package order

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order independently from the
// fulfillment lifecycle.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending is the initial payment state of every order.
	PaymentPending

	// PaymentPaid indicates payment was received.
	PaymentPaid

	// PaymentFailed indicates a payment attempt failed.
	PaymentFailed

	// PaymentRefunded indicates the payment was returned to the customer.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

// PaymentStatusFromString parses the snake_case wire representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValidationErrorWithCause("payment_status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks membership in the enumeration.
func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok || p == PaymentUnknown {
		return errs.NewValidationErrorWithCause("payment_status",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the snake_case name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}
