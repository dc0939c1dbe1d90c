// Package customerrepo persists customer aggregates onto the customers table.
package customerrepo

import (
	"time"

	"atelier/internal/core/domain/model/customer"
	"atelier/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDTO is the database row for a customer aggregate. The order count
// and spend total are denormalized counters maintained on order approval.
type CustomerDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name     string    `gorm:"not null"`
	Email    string    `gorm:"not null"`
	Language string    `gorm:"size:2"`

	CompanyName string
	VATNumber   string `gorm:"column:vat_number"`
	Whatsapp    string

	TotalOrders int             `gorm:"not null"`
	TotalSpent  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency    string          `gorm:"size:3"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          aggregate.ID().Bytes(),
		UserID:      aggregate.UserID().Bytes(),
		Name:        aggregate.Name(),
		Email:       aggregate.Email(),
		Language:    string(aggregate.Language()),
		CompanyName: aggregate.Profile().CompanyName,
		VATNumber:   aggregate.Profile().VATNumber,
		Whatsapp:    aggregate.Profile().Whatsapp,
		TotalOrders: aggregate.TotalOrders(),
		TotalSpent:  aggregate.TotalSpent().Amount(),
		Currency:    aggregate.TotalSpent().Currency(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	totalSpent, err := kernel.MoneyFromDecimal(dto.TotalSpent, dto.Currency)
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(customer.RestoreSpec{
		ID:       id,
		UserID:   userID,
		Name:     dto.Name,
		Email:    dto.Email,
		Language: customer.Language(dto.Language),
		Profile: customer.Profile{
			CompanyName: dto.CompanyName,
			VATNumber:   dto.VATNumber,
			Whatsapp:    dto.Whatsapp,
		},
		TotalOrders: dto.TotalOrders,
		TotalSpent:  totalSpent,
		CreatedAt:   dto.CreatedAt,
	})
}
