package returns

import (
	"errors"
	"fmt"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// Item is a single order line included in a return, carrying its own
// condition note and reason. Items belong to exactly one Return.
type Item struct {
	id          kernel.UUID
	orderItemID kernel.UUID
	quantity    int
	reason      Reason
	condition   string
}

// NewItem creates a return line referencing an order item. The quantity must
// be at least one; the condition note is optional.
func NewItem(id kernel.UUID, orderItemID kernel.UUID, quantity int, reason Reason, condition string) (*Item, error) {
	if err := errors.Join(id.Validate(), orderItemID.Validate(), reason.Validate()); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValidationErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return &Item{
		id:          id,
		orderItemID: orderItemID,
		quantity:    quantity,
		reason:      reason,
		condition:   condition,
	}, nil
}

// RestoreItem reconstructs a return line from persistence.
func RestoreItem(id kernel.UUID, orderItemID kernel.UUID, quantity int, reason Reason, condition string) (*Item, error) {
	return NewItem(id, orderItemID, quantity, reason, condition)
}

// Validate reports whether the item was built through a constructor.
func (i *Item) Validate() error {
	if i == nil || i.id.Validate() != nil {
		return errs.NewValidationError("return_item")
	}
	return nil
}

// ID returns the return line's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// OrderItemID returns the referenced order line.
func (i *Item) OrderItemID() kernel.UUID { return i.orderItemID }

// Quantity returns the number of units being sent back.
func (i *Item) Quantity() int { return i.quantity }

// Reason returns the per-item return reason.
func (i *Item) Reason() Reason { return i.reason }

// Condition returns the customer's free-form condition note.
func (i *Item) Condition() string { return i.condition }
