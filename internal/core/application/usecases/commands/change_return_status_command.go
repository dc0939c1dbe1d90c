package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/pkg/guard"
)

var (
	ErrChangeReturnStatusCommandIsNotConstructed = errors.New(
		"ChangeReturnStatusCommand must be created via NewChangeReturnStatusCommand constructor",
	)
)

// ChangeReturnStatusCommand represents an admin-initiated return status
// change, optionally recording the refund amount and restocking fee.
type ChangeReturnStatusCommand struct { //nolint:recvcheck //using for validation
	returnID   kernel.UUID
	next       returns.Status
	adminID    kernel.UUID
	notes      string
	settlement returns.Settlement
	ip         string

	guard guard.ConstructorGuard
}

// NewChangeReturnStatusCommand creates a return status change command.
func NewChangeReturnStatusCommand(
	returnID kernel.UUID,
	next returns.Status,
	adminID kernel.UUID,
	notes string,
	settlement returns.Settlement,
	ip string,
) (ChangeReturnStatusCommand, error) {
	cmd := ChangeReturnStatusCommand{
		notes:      notes,
		settlement: settlement,
		ip:         ip,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setNext(next),
		cmd.setAdminID(adminID),
	); err != nil {
		return ChangeReturnStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeReturnStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeReturnStatusCommandIsNotConstructed)
}

// ReturnID returns the return being transitioned.
func (c ChangeReturnStatusCommand) ReturnID() kernel.UUID { return c.returnID }

// Next returns the target status.
func (c ChangeReturnStatusCommand) Next() returns.Status { return c.next }

// AdminID returns the admin performing the change.
func (c ChangeReturnStatusCommand) AdminID() kernel.UUID { return c.adminID }

// Notes returns the admin note recorded on the return.
func (c ChangeReturnStatusCommand) Notes() string { return c.notes }

// Settlement returns the refund amount and restocking fee to record.
func (c ChangeReturnStatusCommand) Settlement() returns.Settlement { return c.settlement }

// IP returns the requesting client address.
func (c ChangeReturnStatusCommand) IP() string { return c.ip }

func (c *ChangeReturnStatusCommand) setReturnID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.returnID = id
	return nil
}

func (c *ChangeReturnStatusCommand) setNext(next returns.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	c.next = next
	return nil
}

func (c *ChangeReturnStatusCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}
