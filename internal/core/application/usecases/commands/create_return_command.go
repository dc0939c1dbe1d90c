package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/pkg/guard"
)

var (
	ErrCreateReturnCommandIsNotConstructed = errors.New(
		"CreateReturnCommand must be created via NewCreateReturnCommand constructor",
	)
	ErrReturnItemsAreRequired = errors.New("at least one return item is required")
)

// ReturnItemInput is one order line the caller wants to send back.
type ReturnItemInput struct {
	OrderItemID kernel.UUID
	Quantity    int
	Reason      returns.Reason
	Condition   string
}

// CreateReturnCommand represents a request to open a return against a
// delivered or completed order. The video-evidence rule (mandatory unless an
// admin waives it with a reason) is enforced by the Return aggregate.
type CreateReturnCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID
	returnType  returns.Type
	reason      returns.Reason
	description string
	items       []ReturnItemInput
	videoURL    string
	waiver      *returns.Waiver
	ip          string

	guard guard.ConstructorGuard
}

// NewCreateReturnCommand creates a return request command. requesterID is the
// customer sending the items back; for admin-initiated returns with a video
// waiver the acting admin is named in the waiver itself.
func NewCreateReturnCommand(
	orderID kernel.UUID,
	requesterID kernel.UUID,
	returnType returns.Type,
	reason returns.Reason,
	description string,
	items []ReturnItemInput,
	videoURL string,
	waiver *returns.Waiver,
	ip string,
) (CreateReturnCommand, error) {
	cmd := CreateReturnCommand{
		description: description,
		videoURL:    videoURL,
		waiver:      waiver,
		ip:          ip,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequesterID(requesterID),
		cmd.setReturnType(returnType),
		cmd.setReason(reason),
		cmd.setItems(items),
	); err != nil {
		return CreateReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReturnCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnCommandIsNotConstructed)
}

// OrderID returns the parent order.
func (c CreateReturnCommand) OrderID() kernel.UUID { return c.orderID }

// RequesterID returns the customer requesting the return.
func (c CreateReturnCommand) RequesterID() kernel.UUID { return c.requesterID }

// ReturnType reports whether a refund or an exchange is requested.
func (c CreateReturnCommand) ReturnType() returns.Type { return c.returnType }

// Reason returns the overall return reason.
func (c CreateReturnCommand) Reason() returns.Reason { return c.reason }

// Description returns the customer's free-form description.
func (c CreateReturnCommand) Description() string { return c.description }

// Items returns the requested return lines.
func (c CreateReturnCommand) Items() []ReturnItemInput { return c.items }

// VideoURL returns the package-opening video reference, possibly empty.
func (c CreateReturnCommand) VideoURL() string { return c.videoURL }

// Waiver returns the admin video waiver, or nil.
func (c CreateReturnCommand) Waiver() *returns.Waiver { return c.waiver }

// IP returns the requesting client address.
func (c CreateReturnCommand) IP() string { return c.ip }

func (c *CreateReturnCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateReturnCommand) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}

func (c *CreateReturnCommand) setReturnType(t returns.Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.returnType = t
	return nil
}

func (c *CreateReturnCommand) setReason(reason returns.Reason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	c.reason = reason
	return nil
}

func (c *CreateReturnCommand) setItems(items []ReturnItemInput) error {
	if len(items) == 0 {
		return ErrReturnItemsAreRequired
	}
	c.items = items
	return nil
}
