package audit

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationReport is the outcome of one audit pass over the ledger
type ReconciliationReport struct {
	PhysicalValue decimal.Decimal `json:"physical_value"` // Σ unit cost * remaining quantity
	LedgerValue   decimal.Decimal `json:"ledger_value"`   // Σ signed ledger amounts
	Discrepancy   decimal.Decimal `json:"discrepancy"`
	Tolerance     decimal.Decimal `json:"tolerance"`
	Passed        bool            `json:"passed"`
}

// ProductInventoryLine is one finished good in the derived inventory report
type ProductInventoryLine struct {
	ProductTypeID  uuid.UUID       `json:"product_type_id"`
	Name           string          `json:"name"`
	StandardVolume decimal.Decimal `json:"standard_volume"`
	StockCount     int64           `json:"stock_count"`
	TotalVolume    decimal.Decimal `json:"total_volume"`
}

// ProductInventoryReport aggregates finished-goods stock by product type
type ProductInventoryReport struct {
	Products        []ProductInventoryLine `json:"products"`
	TotalStockCount int64                  `json:"total_stock_count"`
	TotalVolume     decimal.Decimal        `json:"total_volume"`
}
