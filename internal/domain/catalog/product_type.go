package catalog

import (
	"time"

	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductType defines a finished good the mill produces. StandardVolume is
// the business constant relating one produced unit back to billable raw
// volume; StockCount only ever increases through production.
type ProductType struct {
	shared.BaseAggregateRoot
	Name           string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	StandardVolume decimal.Decimal `gorm:"type:decimal(18,4);not null"` // points per produced unit
	StockCount     int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductType) TableName() string {
	return "product_types"
}

// NewProductType creates a new finished-good definition
func NewProductType(name string, standardVolume decimal.Decimal) (*ProductType, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if standardVolume.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Standard volume must be positive")
	}

	return &ProductType{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		StandardVolume:    standardVolume,
		StockCount:        0,
	}, nil
}

// IncreaseStock adds produced units to the running stock count
func (p *ProductType) IncreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Produced quantity must be positive")
	}
	p.StockCount += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// InventoryVolume returns the billable volume currently held as finished
// goods (stock count * standard volume). Derived, never stored.
func (p *ProductType) InventoryVolume() decimal.Decimal {
	return p.StandardVolume.Mul(decimal.NewFromInt(p.StockCount))
}
