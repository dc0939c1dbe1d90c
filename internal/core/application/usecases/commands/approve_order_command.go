package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/guard"
)

var (
	ErrApproveOrderCommandIsNotConstructed = errors.New(
		"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
	)
)

// ApproveOrderCommand represents the owning customer's approval of a pending
// order, capturing the consent context (terms flag, policy versions, client
// address, user agent) for the consent log.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	termsAccepted bool
	termsVersion  string
	policyVersion string
	ip            string
	userAgent     string

	guard guard.ConstructorGuard
}

// NewApproveOrderCommand creates an approval command. The terms flag is
// carried as-is: rejecting an unaccepted approval is a domain rule, not an
// envelope check, so the documented validation error comes from the aggregate.
func NewApproveOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	termsAccepted bool,
	termsVersion string,
	policyVersion string,
	ip string,
	userAgent string,
) (ApproveOrderCommand, error) {
	cmd := ApproveOrderCommand{
		termsAccepted: termsAccepted,
		termsVersion:  termsVersion,
		policyVersion: policyVersion,
		ip:            ip,
		userAgent:     userAgent,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return ApproveOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

// OrderID returns the order being approved.
func (c ApproveOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the approving customer.
func (c ApproveOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// TermsAccepted reports whether the customer ticked the terms checkbox.
func (c ApproveOrderCommand) TermsAccepted() bool { return c.termsAccepted }

// TermsVersion returns the terms document version shown to the customer.
func (c ApproveOrderCommand) TermsVersion() string { return c.termsVersion }

// PolicyVersion returns the privacy policy version shown to the customer.
func (c ApproveOrderCommand) PolicyVersion() string { return c.policyVersion }

// IP returns the requesting client address.
func (c ApproveOrderCommand) IP() string { return c.ip }

// UserAgent returns the requesting client's user agent.
func (c ApproveOrderCommand) UserAgent() string { return c.userAgent }

func (c *ApproveOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ApproveOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}
