package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductTypeRepository implements catalog.ProductTypeRepository using GORM
type GormProductTypeRepository struct {
	db *gorm.DB
}

// NewGormProductTypeRepository creates a new GormProductTypeRepository
func NewGormProductTypeRepository(db *gorm.DB) *GormProductTypeRepository {
	return &GormProductTypeRepository{db: db}
}

// FindByID finds a product type by its ID
func (r *GormProductTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductType, error) {
	var productType catalog.ProductType
	if err := r.db.WithContext(ctx).First(&productType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &productType, nil
}

// FindByIDs finds multiple product types by their IDs
func (r *GormProductTypeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductType, error) {
	if len(ids) == 0 {
		return []catalog.ProductType{}, nil
	}
	var productTypes []catalog.ProductType
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&productTypes).Error; err != nil {
		return nil, err
	}
	return productTypes, nil
}

// FindByIDsForUpdate finds product types by ID with row locks
func (r *GormProductTypeRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductType, error) {
	if len(ids) == 0 {
		return []catalog.ProductType{}, nil
	}
	var productTypes []catalog.ProductType
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&productTypes).Error; err != nil {
		return nil, err
	}
	return productTypes, nil
}

// FindByName finds a product type by its unique name
func (r *GormProductTypeRepository) FindByName(ctx context.Context, name string) (*catalog.ProductType, error) {
	var productType catalog.ProductType
	if err := r.db.WithContext(ctx).First(&productType, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &productType, nil
}

// FindAll returns all product types ordered by name
func (r *GormProductTypeRepository) FindAll(ctx context.Context) ([]catalog.ProductType, error) {
	var productTypes []catalog.ProductType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&productTypes).Error; err != nil {
		return nil, err
	}
	return productTypes, nil
}

// Save creates or updates a product type
func (r *GormProductTypeRepository) Save(ctx context.Context, productType *catalog.ProductType) error {
	return r.db.WithContext(ctx).Save(productType).Error
}

// SaveWithLock updates stock count with an optimistic version check
func (r *GormProductTypeRepository) SaveWithLock(ctx context.Context, productType *catalog.ProductType) error {
	result := r.db.WithContext(ctx).
		Model(productType).
		Where("id = ? AND version = ?", productType.ID, productType.Version-1).
		Updates(map[string]interface{}{
			"stock_count": productType.StockCount,
			"version":     productType.Version,
			"updated_at":  productType.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Product type was modified by another transaction")
	}
	return nil
}

var _ catalog.ProductTypeRepository = (*GormProductTypeRepository)(nil)
