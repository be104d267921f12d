package timber

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LogStatus represents the consumption state of a log batch
type LogStatus string

const (
	// LogStatusInStock means no quantity has been consumed yet
	LogStatusInStock LogStatus = "IN_STOCK"
	// LogStatusPartial means some but not all quantity has been consumed
	LogStatusPartial LogStatus = "PARTIAL"
	// LogStatusConsumed means the remaining quantity reached zero
	LogStatusConsumed LogStatus = "CONSUMED"
)

// String returns the string representation of LogStatus
func (s LogStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the known states
func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusInStock, LogStatusPartial, LogStatusConsumed:
		return true
	}
	return false
}

// Log is the aggregate root for a purchased batch of raw timber logs.
// Physical dimensions and the valuation snapshot are immutable after
// creation; only RemainingQuantity and Status change, and RemainingQuantity
// only ever decreases ("gas tank" semantics).
type Log struct {
	shared.BaseAggregateRoot
	TagID              string          `gorm:"type:varchar(40);not null;uniqueIndex"`
	SupplierID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	WoodTypeID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Circumference      decimal.Decimal `gorm:"type:decimal(10,2);not null"` // cm
	Length             decimal.Decimal `gorm:"type:decimal(10,2);not null"` // cm
	Quantity           int64           `gorm:"not null"`                    // physical log count at purchase
	RemainingQuantity  int64           `gorm:"not null"`
	Diameter           decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	VolumeRaw          decimal.Decimal `gorm:"type:decimal(24,4);not null"`
	VolumeFinal        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // billable points
	CalculationFactor  int64           `gorm:"not null"`
	MarketPricePerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status             LogStatus       `gorm:"type:varchar(20);not null;index"`
	ProductionBatchID  *uuid.UUID      `gorm:"type:uuid;index"` // set only once fully consumed
	PurchaseDate       time.Time       `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "logs"
}

// NewLog creates a log from purchase input, capturing the valuation snapshot.
// The tag is generated from the purchase timestamp when empty.
func NewLog(tagID string, supplierID, woodTypeID uuid.UUID, circumference, length decimal.Decimal, quantity int64, marketPrice decimal.Decimal) (*Log, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier ID cannot be empty")
	}
	if woodTypeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Wood type ID cannot be empty")
	}
	if circumference.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Circumference must be positive")
	}
	if length.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Length must be positive")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if marketPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Market price must be positive")
	}

	now := time.Now()
	if tagID == "" {
		tagID = fmt.Sprintf("LOG-%d", now.UnixMilli())
	}

	valuation := Valuate(circumference, length, quantity, marketPrice)

	return &Log{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		TagID:              tagID,
		SupplierID:         supplierID,
		WoodTypeID:         woodTypeID,
		Circumference:      circumference,
		Length:             length,
		Quantity:           quantity,
		RemainingQuantity:  quantity,
		Diameter:           valuation.Diameter,
		VolumeRaw:          valuation.RawVolume,
		VolumeFinal:        valuation.VolumeFinal,
		CalculationFactor:  CalculationBasis,
		MarketPricePerUnit: marketPrice,
		TotalPurchasePrice: valuation.TotalPrice,
		Status:             LogStatusInStock,
		PurchaseDate:       now,
	}, nil
}

// Allocate draws down qtyUsed units from the remaining quantity and derives
// the new status. Over-drafting fails without mutating the log.
func (l *Log) Allocate(qtyUsed int64) error {
	if qtyUsed <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Allocation quantity must be positive")
	}
	if qtyUsed > l.RemainingQuantity {
		return shared.NewDomainError("OVER_DRAFT",
			fmt.Sprintf("Log %s has %d remaining, requested %d (short by %d)",
				l.TagID, l.RemainingQuantity, qtyUsed, qtyUsed-l.RemainingQuantity))
	}

	l.RemainingQuantity -= qtyUsed
	l.Status = statusForRemaining(l.RemainingQuantity, l.Quantity)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// AssignBatch records the production batch that fully consumed this log.
// A log drawn down across several batches keeps a nil lineage, since no
// single batch owns it.
func (l *Log) AssignBatch(batchID uuid.UUID) error {
	if l.Status != LogStatusConsumed {
		return shared.NewDomainError("INVALID_STATE", "Batch lineage is only assigned to fully consumed logs")
	}
	l.ProductionBatchID = &batchID
	return nil
}

// UnitCost returns the purchase cost of a single physical log in the batch
func (l *Log) UnitCost() decimal.Decimal {
	if l.Quantity == 0 {
		return decimal.Zero
	}
	return l.TotalPurchasePrice.Div(decimal.NewFromInt(l.Quantity))
}

// RemainingValue returns the purchase value still held in stock
func (l *Log) RemainingValue() decimal.Decimal {
	return l.UnitCost().Mul(decimal.NewFromInt(l.RemainingQuantity))
}

// ProRatedVolume returns the share of the batch's billable volume carried by
// qty physical logs. Fractional points are preserved.
func (l *Log) ProRatedVolume(qty int64) decimal.Decimal {
	if l.Quantity == 0 {
		return decimal.Zero
	}
	return l.VolumeFinal.Div(decimal.NewFromInt(l.Quantity)).Mul(decimal.NewFromInt(qty))
}

// HasStock returns true if any quantity remains
func (l *Log) HasStock() bool {
	return l.RemainingQuantity > 0
}

func statusForRemaining(remaining, total int64) LogStatus {
	switch {
	case remaining == 0:
		return LogStatusConsumed
	case remaining == total:
		return LogStatusInStock
	default:
		return LogStatusPartial
	}
}
