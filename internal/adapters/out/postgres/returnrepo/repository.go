package returnrepo

import (
	"context"
	"errors"

	"atelier/internal/adapters/out/postgres/dberr"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReturnRepository implements ports.ReturnRepository using GORM.
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GORM return repository.
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Add saves a new return and its items. A duplicate return number comes back
// as a ConflictError so callers can regenerate the number and retry.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *returns.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("return_number", dto.ReturnNumber, err)
		}
		return errs.NewPersistenceError("create return", err)
	}

	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return errs.NewPersistenceError("create return items", err)
		}
	}

	return nil
}

// Update saves an existing return. Items are immutable after creation.
func (r *GormReturnRepository) Update(ctx context.Context, aggregate *returns.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _ := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ReturnDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update return", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("return_id", aggregate.ID())
	}

	return nil
}

// Get retrieves a return with its items by ID.
func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return_id", id)
		}
		return nil, errs.NewPersistenceError("get return", err)
	}

	return r.load(ctx, dto)
}

// GetByOrder retrieves every return filed against one order, oldest first.
func (r *GormReturnRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.Return, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get returns by order", err)
	}

	result := make([]*returns.Return, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, loadErr := r.load(ctx, dto)
		if loadErr != nil {
			return nil, loadErr
		}
		result = append(result, aggregate)
	}

	return result, nil
}

func (r *GormReturnRepository) load(ctx context.Context, dto ReturnDTO) (*returns.Return, error) {
	var items []ReturnItemDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&items, "return_id = ?", dto.ID).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get return items", err)
	}

	return toDomain(dto, items)
}
