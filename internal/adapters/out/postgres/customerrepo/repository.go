package customerrepo

import (
	"context"
	"errors"

	"atelier/internal/adapters/out/postgres/dberr"
	"atelier/internal/core/domain/model/customer"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add saves a new customer. A second customer for the same user identity
// comes back as a ConflictError.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("user_id", aggregate.UserID().String(), err)
		}
		return errs.NewPersistenceError("create customer", err)
	}

	return nil
}

// Update saves an existing customer, including the purchase counters.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update customer", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer_id", aggregate.ID())
	}

	return nil
}

// Get retrieves a customer by ID.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer_id", id)
		}
		return nil, errs.NewPersistenceError("get customer", err)
	}

	return toDomain(dto)
}

// GetByUserID retrieves the customer linked to a user identity.
func (r *GormCustomerRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*customer.Customer, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user_id", userID)
		}
		return nil, errs.NewPersistenceError("get customer by user", err)
	}

	return toDomain(dto)
}
