package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductTypeRepository defines the interface for product type persistence
type ProductTypeRepository interface {
	// FindByID finds a product type by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductType, error)

	// FindByIDs finds multiple product types by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductType, error)

	// FindByIDsForUpdate finds multiple product types by ID with row locks.
	// Must be called inside a transaction.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]ProductType, error)

	// FindByName finds a product type by its unique name
	FindByName(ctx context.Context, name string) (*ProductType, error)

	// FindAll returns all product types ordered by name
	FindAll(ctx context.Context) ([]ProductType, error)

	// Save creates or updates a product type
	Save(ctx context.Context, productType *ProductType) error

	// SaveWithLock updates stock count with an optimistic version check
	SaveWithLock(ctx context.Context, productType *ProductType) error
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByCode(ctx context.Context, code string) (*Supplier, error)
	FindAll(ctx context.Context) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
}

// WoodTypeRepository defines the interface for wood type persistence
type WoodTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WoodType, error)
	FindByName(ctx context.Context, name string) (*WoodType, error)
	FindAll(ctx context.Context) ([]WoodType, error)
	Save(ctx context.Context, woodType *WoodType) error
}
