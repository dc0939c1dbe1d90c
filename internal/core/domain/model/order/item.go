package order

import (
	"errors"
	"fmt"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ItemSpec carries the caller-supplied attributes of an order line.
// ProductName, Quantity, and UnitPrice are required; the rest is optional
// garment detail.
type ItemSpec struct {
	ProductName  string
	SKU          string
	Description  string
	Quantity     int
	UnitPrice    kernel.Money
	Size         string
	Color        string
	Material     string
	Measurements string
}

// Item is an order line owned by exactly one Order.
//
// Item invariants:
//   - quantity is at least 1
//   - unit price is non-negative
//   - subtotal always equals quantity times unit price; it is recomputed from
//     those two fields on every construction and never stored independently
type Item struct {
	id           kernel.UUID
	productName  string
	sku          string
	description  string
	quantity     int
	unitPrice    kernel.Money
	subtotal     kernel.Money
	size         string
	color        string
	material     string
	measurements string

	isConstructed bool
}

// NewItem creates a validated order line. The subtotal is derived from the
// spec's quantity and unit price.
func NewItem(id kernel.UUID, spec ItemSpec) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if spec.ProductName == "" {
		return nil, errs.NewValidationError("product_name")
	}
	if spec.Quantity < 1 {
		return nil, errs.NewValidationErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", spec.Quantity))
	}
	if err := spec.UnitPrice.Validate(); err != nil {
		return nil, err
	}
	if spec.UnitPrice.IsNegative() {
		return nil, errs.NewValidationErrorWithCause("unit_price",
			fmt.Errorf("%s is negative", spec.UnitPrice))
	}

	subtotal, err := spec.UnitPrice.MulInt(spec.Quantity)
	if err != nil {
		return nil, err
	}

	return &Item{
		id:            id,
		productName:   spec.ProductName,
		sku:           spec.SKU,
		description:   spec.Description,
		quantity:      spec.Quantity,
		unitPrice:     spec.UnitPrice,
		subtotal:      subtotal,
		size:          spec.Size,
		color:         spec.Color,
		material:      spec.Material,
		measurements:  spec.Measurements,
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs an order line from persistence. The subtotal is
// recomputed rather than trusted from storage.
func RestoreItem(id kernel.UUID, spec ItemSpec) (*Item, error) {
	return NewItem(id, spec)
}

// Validate ensures the Item instance was created via NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// ProductName returns the product name.
func (i *Item) ProductName() string { return i.productName }

// SKU returns the stock keeping unit, if any.
func (i *Item) SKU() string { return i.sku }

// Description returns the free-form line description.
func (i *Item) Description() string { return i.description }

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int { return i.quantity }

// UnitPrice returns the per-unit price.
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }

// Subtotal returns quantity times unit price.
func (i *Item) Subtotal() kernel.Money { return i.subtotal }

// Size returns the garment size, if any.
func (i *Item) Size() string { return i.size }

// Color returns the garment color, if any.
func (i *Item) Color() string { return i.color }

// Material returns the garment material, if any.
func (i *Item) Material() string { return i.material }

// Measurements returns custom measurement notes, if any.
func (i *Item) Measurements() string { return i.measurements }
