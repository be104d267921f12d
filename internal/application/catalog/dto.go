package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest represents a supplier master record entry
type CreateSupplierRequest struct {
	Code string `json:"code" binding:"required,min=1,max=20"`
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateWoodTypeRequest represents a wood type master record entry
type CreateWoodTypeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// WoodTypeResponse represents a wood type in API responses
type WoodTypeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductTypeRequest represents a finished-good definition entry
type CreateProductTypeRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	StandardVolume decimal.Decimal `json:"standard_volume" binding:"required,dgt0"`
}

// ProductTypeResponse represents a product type in API responses
type ProductTypeResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	StandardVolume decimal.Decimal `json:"standard_volume"`
	StockCount     int64           `json:"stock_count"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToSupplierResponse converts a supplier to its API representation
func ToSupplierResponse(s *catalog.Supplier) SupplierResponse {
	return SupplierResponse{ID: s.ID, Code: s.Code, Name: s.Name, CreatedAt: s.CreatedAt}
}

// ToWoodTypeResponse converts a wood type to its API representation
func ToWoodTypeResponse(w *catalog.WoodType) WoodTypeResponse {
	return WoodTypeResponse{ID: w.ID, Name: w.Name, CreatedAt: w.CreatedAt}
}

// ToProductTypeResponse converts a product type to its API representation
func ToProductTypeResponse(p *catalog.ProductType) ProductTypeResponse {
	return ProductTypeResponse{
		ID:             p.ID,
		Name:           p.Name,
		StandardVolume: p.StandardVolume,
		StockCount:     p.StockCount,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
	}
}
