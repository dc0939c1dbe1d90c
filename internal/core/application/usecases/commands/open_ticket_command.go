package commands

import (
	"errors"
	"strings"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/pkg/guard"
)

var (
	ErrOpenTicketCommandIsNotConstructed = errors.New(
		"OpenTicketCommand must be created via NewOpenTicketCommand constructor",
	)
	ErrSubjectIsRequired = errors.New("subject is required")
	ErrMessageIsRequired = errors.New("message is required")
)

// OpenTicketCommand represents a customer opening a support ticket with its
// first message, optionally linked to one of their orders.
type OpenTicketCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	orderID    *kernel.UUID
	subject    string
	category   ticket.Category
	priority   ticket.Priority
	message    string
	ip         string

	guard guard.ConstructorGuard
}

// NewOpenTicketCommand creates an open-ticket command. An empty priority is
// left for the aggregate to default.
func NewOpenTicketCommand(
	customerID kernel.UUID,
	orderID *kernel.UUID,
	subject string,
	category ticket.Category,
	priority ticket.Priority,
	message string,
	ip string,
) (OpenTicketCommand, error) {
	cmd := OpenTicketCommand{
		priority: priority,
		ip:       ip,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setOrderID(orderID),
		cmd.setSubject(subject),
		cmd.setCategory(category),
		cmd.setMessage(message),
	); err != nil {
		return OpenTicketCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenTicketCommand) Validate() error {
	return c.guard.Validate(ErrOpenTicketCommandIsNotConstructed)
}

// CustomerID returns the customer opening the ticket.
func (c OpenTicketCommand) CustomerID() kernel.UUID { return c.customerID }

// OrderID returns the linked order, or nil.
func (c OpenTicketCommand) OrderID() *kernel.UUID { return c.orderID }

// Subject returns the ticket subject line.
func (c OpenTicketCommand) Subject() string { return c.subject }

// Category returns the problem category.
func (c OpenTicketCommand) Category() ticket.Category { return c.category }

// Priority returns the requested priority, possibly empty.
func (c OpenTicketCommand) Priority() ticket.Priority { return c.priority }

// Message returns the first message body.
func (c OpenTicketCommand) Message() string { return c.message }

// IP returns the requesting client address.
func (c OpenTicketCommand) IP() string { return c.ip }

func (c *OpenTicketCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *OpenTicketCommand) setOrderID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *OpenTicketCommand) setSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return ErrSubjectIsRequired
	}
	c.subject = subject
	return nil
}

func (c *OpenTicketCommand) setCategory(category ticket.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	c.category = category
	return nil
}

func (c *OpenTicketCommand) setMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrMessageIsRequired
	}
	c.message = message
	return nil
}
