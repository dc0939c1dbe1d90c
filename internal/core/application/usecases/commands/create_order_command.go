package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// CreateOrderCommand represents a request to register a new order for a
// customer. Item-level validation (quantities, prices) happens in the domain
// when the aggregate is built; the command only checks the envelope.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, adminID, items, "EUR", details, clientIP)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	adminID    kernel.UUID
	items      []order.ItemSpec
	currency   string
	details    order.Details
	ip         string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that both identifiers are valid and the item list is non-empty.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	adminID kernel.UUID,
	items []order.ItemSpec,
	currency string,
	details order.Details,
	ip string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		currency: currency,
		details:  details,
		ip:       ip,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setAdminID(adminID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the customer the order is created for.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// AdminID returns the admin creating the order.
func (c CreateOrderCommand) AdminID() kernel.UUID { return c.adminID }

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []order.ItemSpec { return c.items }

// Currency returns the order currency code, empty for the default.
func (c CreateOrderCommand) Currency() string { return c.currency }

// Details returns the optional order attributes.
func (c CreateOrderCommand) Details() order.Details { return c.details }

// IP returns the requesting client address for the activity log.
func (c CreateOrderCommand) IP() string { return c.ip }

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.ItemSpec) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	c.items = items
	return nil
}
