package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/ticket"
	"atelier/internal/pkg/guard"
)

var (
	ErrUpdateTicketCommandIsNotConstructed = errors.New(
		"UpdateTicketCommand must be created via NewUpdateTicketCommand constructor",
	)
	ErrNothingToUpdate = errors.New("at least one of status, priority, or assignee must be set")
)

// UpdateTicketCommand represents an admin updating a ticket's handling state:
// status, priority, assignee, or any combination.
type UpdateTicketCommand struct { //nolint:recvcheck //using for validation
	ticketID   kernel.UUID
	adminID    kernel.UUID
	nextStatus *ticket.Status
	priority   *ticket.Priority
	assigneeID *kernel.UUID
	ip         string

	guard guard.ConstructorGuard
}

// NewUpdateTicketCommand creates a ticket update command. Nil fields are left
// untouched; at least one must be set.
func NewUpdateTicketCommand(
	ticketID kernel.UUID,
	adminID kernel.UUID,
	nextStatus *ticket.Status,
	priority *ticket.Priority,
	assigneeID *kernel.UUID,
	ip string,
) (UpdateTicketCommand, error) {
	cmd := UpdateTicketCommand{
		nextStatus: nextStatus,
		priority:   priority,
		assigneeID: assigneeID,
		ip:         ip,
		guard:      guard.NewConstructorGuard(),
	}

	if nextStatus == nil && priority == nil && assigneeID == nil {
		return UpdateTicketCommand{}, ErrNothingToUpdate
	}

	if err := errors.Join(
		cmd.setTicketID(ticketID),
		cmd.setAdminID(adminID),
	); err != nil {
		return UpdateTicketCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTicketCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTicketCommandIsNotConstructed)
}

// TicketID returns the ticket being updated.
func (c UpdateTicketCommand) TicketID() kernel.UUID { return c.ticketID }

// AdminID returns the admin performing the update.
func (c UpdateTicketCommand) AdminID() kernel.UUID { return c.adminID }

// NextStatus returns the target status, or nil to keep the current one.
func (c UpdateTicketCommand) NextStatus() *ticket.Status { return c.nextStatus }

// Priority returns the new priority, or nil to keep the current one.
func (c UpdateTicketCommand) Priority() *ticket.Priority { return c.priority }

// AssigneeID returns the admin to assign, or nil to keep the current one.
func (c UpdateTicketCommand) AssigneeID() *kernel.UUID { return c.assigneeID }

// IP returns the requesting client address.
func (c UpdateTicketCommand) IP() string { return c.ip }

func (c *UpdateTicketCommand) setTicketID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.ticketID = id
	return nil
}

func (c *UpdateTicketCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}
