// Package returnrepo persists return aggregates onto the returns and
// return_items tables.
package returnrepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnDTO is the database row for a return aggregate.
type ReturnDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnNumber string    `gorm:"uniqueIndex;not null"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index"`
	Status       string    `gorm:"index;not null"`
	ReturnType   string    `gorm:"not null"`
	Reason       string    `gorm:"not null"`
	Description  string

	VideoURL      string
	WaiverAdminID *uuid.UUID `gorm:"type:uuid"`
	WaiverReason  string

	RefundAmount  *decimal.Decimal `gorm:"type:numeric(12,2)"`
	RestockingFee *decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency      string           `gorm:"size:3"`
	AdminNotes    string

	ApprovedAt  *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming to use "returns".
func (ReturnDTO) TableName() string {
	return "returns"
}

// ReturnItemDTO is the database row for one returned line item.
type ReturnItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnID    uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity    int       `gorm:"not null"`
	Reason      string    `gorm:"not null"`
	Condition   string
}

// TableName overrides GORM's default naming to use "return_items".
func (ReturnItemDTO) TableName() string {
	return "return_items"
}

func fromDomain(aggregate *returns.Return) (ReturnDTO, []ReturnItemDTO) {
	dto := ReturnDTO{
		ID:           aggregate.ID().Bytes(),
		ReturnNumber: aggregate.ReturnNumber(),
		OrderID:      aggregate.OrderID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		Status:       aggregate.Status().String(),
		ReturnType:   string(aggregate.ReturnType()),
		Reason:       string(aggregate.Reason()),
		Description:  aggregate.Description(),
		VideoURL:     aggregate.VideoURL(),
		AdminNotes:   aggregate.AdminNotes(),
		ApprovedAt:   aggregate.ApprovedAt(),
		CompletedAt:  aggregate.CompletedAt(),
		CreatedAt:    aggregate.CreatedAt(),
	}

	if waiver := aggregate.Waiver(); waiver != nil {
		raw := waiver.AdminID.Bytes()
		dto.WaiverAdminID = &raw
		dto.WaiverReason = waiver.Reason
	}

	settlement := aggregate.Settlement()
	if settlement.RefundAmount != nil {
		amount := settlement.RefundAmount.Amount()
		dto.RefundAmount = &amount
		dto.Currency = settlement.RefundAmount.Currency()
	}
	if settlement.RestockingFee != nil {
		fee := settlement.RestockingFee.Amount()
		dto.RestockingFee = &fee
		dto.Currency = settlement.RestockingFee.Currency()
	}

	items := make([]ReturnItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ReturnItemDTO{
			ID:          item.ID().Bytes(),
			ReturnID:    aggregate.ID().Bytes(),
			OrderItemID: item.OrderItemID().Bytes(),
			Quantity:    item.Quantity(),
			Reason:      string(item.Reason()),
			Condition:   item.Condition(),
		})
	}

	return dto, items
}

func toDomain(dto ReturnDTO, itemDTOs []ReturnItemDTO) (*returns.Return, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := returns.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*returns.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var waiver *returns.Waiver
	if dto.WaiverAdminID != nil {
		adminID, waiverErr := kernel.UUIDFromBytes((*dto.WaiverAdminID)[:])
		if waiverErr != nil {
			return nil, waiverErr
		}
		waiver = &returns.Waiver{AdminID: adminID, Reason: dto.WaiverReason}
	}

	var settlement returns.Settlement
	if dto.RefundAmount != nil {
		amount, moneyErr := kernel.MoneyFromDecimal(*dto.RefundAmount, dto.Currency)
		if moneyErr != nil {
			return nil, moneyErr
		}
		settlement.RefundAmount = &amount
	}
	if dto.RestockingFee != nil {
		fee, moneyErr := kernel.MoneyFromDecimal(*dto.RestockingFee, dto.Currency)
		if moneyErr != nil {
			return nil, moneyErr
		}
		settlement.RestockingFee = &fee
	}

	return returns.RestoreReturn(returns.RestoreSpec{
		ID:           id,
		ReturnNumber: dto.ReturnNumber,
		OrderID:      orderID,
		CustomerID:   customerID,
		Status:       status,
		ReturnType:   returns.Type(dto.ReturnType),
		Reason:       returns.Reason(dto.Reason),
		Description:  dto.Description,
		Items:        items,
		VideoURL:     dto.VideoURL,
		Waiver:       waiver,
		Settlement:   settlement,
		AdminNotes:   dto.AdminNotes,
		ApprovedAt:   dto.ApprovedAt,
		CompletedAt:  dto.CompletedAt,
		CreatedAt:    dto.CreatedAt,
	})
}

func itemToDomain(dto ReturnItemDTO) (*returns.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}

	return returns.RestoreItem(id, orderItemID, dto.Quantity, returns.Reason(dto.Reason), dto.Condition)
}
