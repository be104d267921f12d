package timber

import (
	"time"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
)

// CreateLogRequest represents a timber purchase entry
type CreateLogRequest struct {
	TagID         string          `json:"tag_id"`
	SupplierID    uuid.UUID       `json:"supplier_id" binding:"required"`
	WoodTypeID    uuid.UUID       `json:"wood_type_id" binding:"required"`
	Circumference decimal.Decimal `json:"circumference" binding:"required,dgt0"`
	Length        decimal.Decimal `json:"length" binding:"required,dgt0"`
	Quantity      int64           `json:"quantity" binding:"required,gt=0"`
	MarketPrice   decimal.Decimal `json:"market_price" binding:"required,dgt0"`
}

// LogResponse represents a log batch in API responses
type LogResponse struct {
	ID                 uuid.UUID       `json:"id"`
	TagID              string          `json:"tag_id"`
	SupplierID         uuid.UUID       `json:"supplier_id"`
	WoodTypeID         uuid.UUID       `json:"wood_type_id"`
	Circumference      decimal.Decimal `json:"circumference"`
	Length             decimal.Decimal `json:"length"`
	Quantity           int64           `json:"quantity"`
	RemainingQuantity  int64           `json:"remaining_quantity"`
	Diameter           decimal.Decimal `json:"diameter"`
	VolumeRaw          decimal.Decimal `json:"volume_raw"`
	VolumeFinal        decimal.Decimal `json:"volume_final"`
	MarketPricePerUnit decimal.Decimal `json:"market_price_per_unit"`
	TotalPurchasePrice decimal.Decimal `json:"total_purchase_price"`
	RemainingValue     decimal.Decimal `json:"remaining_value"`
	Status             string          `json:"status"`
	ProductionBatchID  *uuid.UUID      `json:"production_batch_id,omitempty"`
	PurchaseDate       time.Time       `json:"purchase_date"`
	CreatedAt          time.Time       `json:"created_at"`
	Version            int             `json:"version"`
}

// ValuationPreviewRequest asks for a valuation without persisting anything
type ValuationPreviewRequest struct {
	Circumference decimal.Decimal `json:"circumference" binding:"required,dgt0"`
	Length        decimal.Decimal `json:"length" binding:"required,dgt0"`
	Quantity      int64           `json:"quantity" binding:"required,gt=0"`
	MarketPrice   decimal.Decimal `json:"market_price" binding:"required,dgt0"`
}

// ValuationPreviewResponse is the computed valuation for a prospective purchase
type ValuationPreviewResponse struct {
	Diameter    decimal.Decimal `json:"diameter"`
	RawVolume   decimal.Decimal `json:"raw_volume"`
	VolumeFinal decimal.Decimal `json:"volume_final"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// StockSummaryResponse is the raw-material KPI block for the dashboard
type StockSummaryResponse struct {
	TotalLogs          int64           `json:"total_logs"`
	TotalVolume        decimal.Decimal `json:"total_volume"`
	TotalPurchaseValue decimal.Decimal `json:"total_purchase_value"`
	RemainingValue     decimal.Decimal `json:"remaining_value"`
}

// LedgerEntryResponse represents one audit ledger entry
type LedgerEntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	LogID        uuid.UUID       `json:"log_id"`
	Action       string          `json:"action"`
	AmountChange decimal.Decimal `json:"amount_change"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToLogResponse converts a domain log to its API representation
func ToLogResponse(log *timber.Log) LogResponse {
	return LogResponse{
		ID:                 log.ID,
		TagID:              log.TagID,
		SupplierID:         log.SupplierID,
		WoodTypeID:         log.WoodTypeID,
		Circumference:      log.Circumference,
		Length:             log.Length,
		Quantity:           log.Quantity,
		RemainingQuantity:  log.RemainingQuantity,
		Diameter:           log.Diameter,
		VolumeRaw:          log.VolumeRaw,
		VolumeFinal:        log.VolumeFinal,
		MarketPricePerUnit: log.MarketPricePerUnit,
		TotalPurchasePrice: log.TotalPurchasePrice,
		RemainingValue:     log.RemainingValue(),
		Status:             log.Status.String(),
		ProductionBatchID:  log.ProductionBatchID,
		PurchaseDate:       log.PurchaseDate,
		CreatedAt:          log.CreatedAt,
		Version:            log.Version,
	}
}

// ToLedgerEntryResponse converts a ledger entry to its API representation
func ToLedgerEntryResponse(entry *timber.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:           entry.ID,
		LogID:        entry.LogID,
		Action:       entry.Action.String(),
		AmountChange: entry.AmountChange,
		CreatedAt:    entry.CreatedAt,
	}
}

