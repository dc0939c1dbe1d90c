// Package orderrepo persists order aggregates. It maps the aggregate and its
// line items onto the orders and order_items tables and reconstructs the
// aggregate through its restore constructor.
package orderrepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database row for an order aggregate. Statuses are stored
// in their string form so the tables stay readable without the enum maps.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber   string          `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;index"`
	AdminID       uuid.UUID       `gorm:"type:uuid"`
	Status        string          `gorm:"index;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency      string          `gorm:"size:3"`
	PaymentStatus string          `gorm:"not null"`

	PaymentMethod       string
	ShippingAddressID   *uuid.UUID `gorm:"type:uuid"`
	BillingAddressID    *uuid.UUID `gorm:"type:uuid"`
	SpecialInstructions string
	InternalNotes       string
	EstimatedDelivery   *time.Time

	TrackingNumber string
	TrackingURL    string
	CourierName    string

	ConsentAcceptedAt *time.Time
	ConsentIP         string
	ConsentUserAgent  string

	VideoURL        string
	VideoType       string
	VideoUploadedAt *time.Time

	ConfirmedAt    *time.Time
	ActualDelivery *time.Time
	CreatedAt      time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the database row for one order line item.
type ItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName  string          `gorm:"not null"`
	SKU          string          `gorm:"column:sku"`
	Description  string
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency     string          `gorm:"size:3"`
	Size         string
	Color        string
	Material     string
	Measurements string
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) (OrderDTO, []ItemDTO) {
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		AdminID:       aggregate.AdminID().Bytes(),
		Status:        aggregate.Status().String(),
		TotalAmount:   aggregate.TotalAmount().Amount(),
		Currency:      aggregate.Currency(),
		PaymentStatus: aggregate.PaymentStatus().String(),

		PaymentMethod:       aggregate.Details().PaymentMethod,
		SpecialInstructions: aggregate.Details().SpecialInstructions,
		InternalNotes:       aggregate.Details().InternalNotes,
		EstimatedDelivery:   aggregate.Details().EstimatedDelivery,

		TrackingNumber: aggregate.Tracking().Number,
		TrackingURL:    aggregate.Tracking().URL,
		CourierName:    aggregate.Tracking().CourierName,

		ConfirmedAt:    aggregate.ConfirmedAt(),
		ActualDelivery: aggregate.ActualDelivery(),
		CreatedAt:      aggregate.CreatedAt(),
	}

	if id := aggregate.Details().ShippingAddressID; id != nil {
		raw := id.Bytes()
		dto.ShippingAddressID = &raw
	}
	if id := aggregate.Details().BillingAddressID; id != nil {
		raw := id.Bytes()
		dto.BillingAddressID = &raw
	}
	if consent := aggregate.Consent(); consent != nil {
		acceptedAt := consent.AcceptedAt
		dto.ConsentAcceptedAt = &acceptedAt
		dto.ConsentIP = consent.IP
		dto.ConsentUserAgent = consent.UserAgent
	}
	if video := aggregate.Video(); video != nil {
		uploadedAt := video.UploadedAt
		dto.VideoURL = video.URL
		dto.VideoType = string(video.Type)
		dto.VideoUploadedAt = &uploadedAt
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:           item.ID().Bytes(),
			OrderID:      aggregate.ID().Bytes(),
			ProductName:  item.ProductName(),
			SKU:          item.SKU(),
			Description:  item.Description(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().Amount(),
			Subtotal:     item.Subtotal().Amount(),
			Currency:     item.UnitPrice().Currency(),
			Size:         item.Size(),
			Color:        item.Color(),
			Material:     item.Material(),
			Measurements: item.Measurements(),
		})
	}

	return dto, items
}

func toDomain(dto OrderDTO, itemDTOs []ItemDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	adminID, err := kernel.UUIDFromBytes(dto.AdminID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	totalAmount, err := kernel.MoneyFromDecimal(dto.TotalAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	details := order.Details{
		PaymentMethod:       dto.PaymentMethod,
		SpecialInstructions: dto.SpecialInstructions,
		InternalNotes:       dto.InternalNotes,
		EstimatedDelivery:   dto.EstimatedDelivery,
	}
	if dto.ShippingAddressID != nil {
		addrID, addrErr := kernel.UUIDFromBytes((*dto.ShippingAddressID)[:])
		if addrErr != nil {
			return nil, addrErr
		}
		details.ShippingAddressID = &addrID
	}
	if dto.BillingAddressID != nil {
		addrID, addrErr := kernel.UUIDFromBytes((*dto.BillingAddressID)[:])
		if addrErr != nil {
			return nil, addrErr
		}
		details.BillingAddressID = &addrID
	}

	var consent *order.Consent
	if dto.ConsentAcceptedAt != nil {
		consent = &order.Consent{
			AcceptedAt: *dto.ConsentAcceptedAt,
			IP:         dto.ConsentIP,
			UserAgent:  dto.ConsentUserAgent,
		}
	}

	var video *order.VideoEvidence
	if dto.VideoUploadedAt != nil {
		video = &order.VideoEvidence{
			URL:        dto.VideoURL,
			Type:       order.VideoType(dto.VideoType),
			UploadedAt: *dto.VideoUploadedAt,
		}
	}

	return order.RestoreOrder(order.RestoreSpec{
		ID:            id,
		OrderNumber:   dto.OrderNumber,
		CustomerID:    customerID,
		AdminID:       adminID,
		Status:        status,
		Items:         items,
		TotalAmount:   totalAmount,
		Currency:      dto.Currency,
		PaymentStatus: paymentStatus,
		Details:       details,
		Tracking: order.Tracking{
			Number:      dto.TrackingNumber,
			URL:         dto.TrackingURL,
			CourierName: dto.CourierName,
		},
		Consent:        consent,
		Video:          video,
		ConfirmedAt:    dto.ConfirmedAt,
		ActualDelivery: dto.ActualDelivery,
		CreatedAt:      dto.CreatedAt,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	unitPrice, err := kernel.MoneyFromDecimal(dto.UnitPrice, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, order.ItemSpec{
		ProductName:  dto.ProductName,
		SKU:          dto.SKU,
		Description:  dto.Description,
		Quantity:     dto.Quantity,
		UnitPrice:    unitPrice,
		Size:         dto.Size,
		Color:        dto.Color,
		Material:     dto.Material,
		Measurements: dto.Measurements,
	})
}
