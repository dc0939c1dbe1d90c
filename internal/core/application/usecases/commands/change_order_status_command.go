package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents an admin-initiated order status change,
// optionally carrying courier tracking detail for shipping transitions.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	next     order.Status
	actorID  kernel.UUID
	notes    string
	tracking order.Tracking
	ip       string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a status change command. The target
// status must be a member of the enumeration; whether the edge from the
// current status is allowed is decided by the aggregate against its graph.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	next order.Status,
	actorID kernel.UUID,
	notes string,
	tracking order.Tracking,
	ip string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		notes:    notes,
		tracking: tracking,
		ip:       ip,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNext(next),
		cmd.setActorID(actorID),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order being transitioned.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Next returns the target status.
func (c ChangeOrderStatusCommand) Next() order.Status { return c.next }

// ActorID returns the admin performing the change.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID { return c.actorID }

// Notes returns the free-form note recorded in the history row.
func (c ChangeOrderStatusCommand) Notes() string { return c.notes }

// Tracking returns the courier tracking detail to merge into the order.
func (c ChangeOrderStatusCommand) Tracking() order.Tracking { return c.tracking }

// IP returns the requesting client address.
func (c ChangeOrderStatusCommand) IP() string { return c.ip }

func (c *ChangeOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ChangeOrderStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	c.next = next
	return nil
}

func (c *ChangeOrderStatusCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
