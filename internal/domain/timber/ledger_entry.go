package timber

import (
	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerAction tags the business event behind a ledger entry
type LedgerAction string

const (
	// LedgerActionPurchase records value entering stock at purchase
	LedgerActionPurchase LedgerAction = "PURCHASE"
	// LedgerActionProductionUse records value leaving stock via a production run
	LedgerActionProductionUse LedgerAction = "PRODUCTION_USE"
)

// String returns the string representation of LedgerAction
func (a LedgerAction) String() string {
	return string(a)
}

// IsValid returns true if the action is a known ledger action
func (a LedgerAction) IsValid() bool {
	switch a {
	case LedgerActionPurchase, LedgerActionProductionUse:
		return true
	}
	return false
}

// LedgerEntry is an immutable, append-only audit record of value moving in or
// out of raw-material stock. The running sum of entries for a log must always
// equal the log's remaining purchase value; that is the reconciliation
// invariant the audit pass verifies.
type LedgerEntry struct {
	shared.BaseEntity
	LogID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Action       LedgerAction    `gorm:"type:varchar(20);not null;index"`
	AmountChange decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed: purchases positive, consumption negative
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "inventory_ledger"
}

// NewPurchaseEntry creates the positive ledger entry written when a log is
// purchased, carrying its full purchase price into stock.
func NewPurchaseEntry(log *Log) *LedgerEntry {
	return &LedgerEntry{
		BaseEntity:   shared.NewBaseEntity(),
		LogID:        log.ID,
		Action:       LedgerActionPurchase,
		AmountChange: log.TotalPurchasePrice,
	}
}

// NewConsumptionEntry creates the negative ledger entry for drawing qtyUsed
// units out of a log at its proportional unit cost.
func NewConsumptionEntry(log *Log, qtyUsed int64) *LedgerEntry {
	return &LedgerEntry{
		BaseEntity:   shared.NewBaseEntity(),
		LogID:        log.ID,
		Action:       LedgerActionProductionUse,
		AmountChange: log.UnitCost().Mul(decimal.NewFromInt(qtyUsed)).Neg(),
	}
}
