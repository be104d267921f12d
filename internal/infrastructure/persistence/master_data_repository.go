package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements catalog.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Supplier, error) {
	var supplier catalog.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByCode finds a supplier by its unique code
func (r *GormSupplierRepository) FindByCode(ctx context.Context, code string) (*catalog.Supplier, error) {
	var supplier catalog.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll returns all suppliers ordered by code
func (r *GormSupplierRepository) FindAll(ctx context.Context) ([]catalog.Supplier, error) {
	var suppliers []catalog.Supplier
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *catalog.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// GormWoodTypeRepository implements catalog.WoodTypeRepository using GORM
type GormWoodTypeRepository struct {
	db *gorm.DB
}

// NewGormWoodTypeRepository creates a new GormWoodTypeRepository
func NewGormWoodTypeRepository(db *gorm.DB) *GormWoodTypeRepository {
	return &GormWoodTypeRepository{db: db}
}

// FindByID finds a wood type by its ID
func (r *GormWoodTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.WoodType, error) {
	var woodType catalog.WoodType
	if err := r.db.WithContext(ctx).First(&woodType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &woodType, nil
}

// FindByName finds a wood type by its unique name
func (r *GormWoodTypeRepository) FindByName(ctx context.Context, name string) (*catalog.WoodType, error) {
	var woodType catalog.WoodType
	if err := r.db.WithContext(ctx).First(&woodType, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &woodType, nil
}

// FindAll returns all wood types ordered by name
func (r *GormWoodTypeRepository) FindAll(ctx context.Context) ([]catalog.WoodType, error) {
	var woodTypes []catalog.WoodType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&woodTypes).Error; err != nil {
		return nil, err
	}
	return woodTypes, nil
}

// Save creates or updates a wood type
func (r *GormWoodTypeRepository) Save(ctx context.Context, woodType *catalog.WoodType) error {
	return r.db.WithContext(ctx).Save(woodType).Error
}

var (
	_ catalog.SupplierRepository = (*GormSupplierRepository)(nil)
	_ catalog.WoodTypeRepository = (*GormWoodTypeRepository)(nil)
)
