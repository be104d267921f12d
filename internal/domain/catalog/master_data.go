package catalog

import (
	"github.com/sawmill/backend/internal/domain/shared"
)

// Supplier is a master record for a timber supplier
type Supplier struct {
	shared.BaseEntity
	Code string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier master record
func NewSupplier(code, name string) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name cannot be empty")
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
	}, nil
}

// WoodType is a master record for a timber species
type WoodType struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (WoodType) TableName() string {
	return "wood_types"
}

// NewWoodType creates a new wood type master record
func NewWoodType(name string) (*WoodType, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Wood type name cannot be empty")
	}
	return &WoodType{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
