package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WasteReason is recorded on auto-calculated waste records
const WasteReason = "Production waste (auto-calculated)"

// ProductionBatch is the aggregate root for a single atomic production event.
// It is immutable once created: the batch captures the allocated input volume
// at run time, and owns its output rows and waste record.
type ProductionBatch struct {
	shared.BaseAggregateRoot
	Date         time.Time       `gorm:"type:timestamptz;not null;index"`
	TargetVolume decimal.Decimal `gorm:"type:decimal(18,4);not null"` // total allocated input volume in points

	Outputs []ProductionOutput `gorm:"foreignKey:BatchID;references:ID"`
	Waste   *WasteRecord       `gorm:"foreignKey:BatchID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductionBatch) TableName() string {
	return "production_batches"
}

// ProductionOutput is a child row of a batch: quantity of one finished good
// produced and the billable volume it represents at run time.
type ProductionOutput struct {
	shared.BaseEntity
	BatchID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductTypeID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       int64           `gorm:"not null"`
	VolumeProduced decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductionOutput) TableName() string {
	return "production_outputs"
}

// WasteRecord is a child row of a batch: the volume lost between allocated
// input and declared output. Non-negative by the conservation invariant.
type WasteRecord struct {
	shared.BaseEntity
	BatchID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	VolumeLoss decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason     string          `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (WasteRecord) TableName() string {
	return "waste_records"
}

// NewProductionBatch creates a batch for a production run with the given
// allocated input volume.
func NewProductionBatch(date time.Time, targetVolume decimal.Decimal) (*ProductionBatch, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Batch date cannot be empty")
	}
	if targetVolume.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Target volume cannot be negative")
	}

	return &ProductionBatch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		TargetVolume:      targetVolume,
		Outputs:           make([]ProductionOutput, 0),
	}, nil
}

// AddOutput appends a finished-good output row to the batch
func (b *ProductionBatch) AddOutput(productTypeID uuid.UUID, quantity int64, volumeProduced decimal.Decimal) error {
	if productTypeID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Product type ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Output quantity must be positive")
	}
	if volumeProduced.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Produced volume cannot be negative")
	}

	b.Outputs = append(b.Outputs, ProductionOutput{
		BaseEntity:     shared.NewBaseEntity(),
		BatchID:        b.ID,
		ProductTypeID:  productTypeID,
		Quantity:       quantity,
		VolumeProduced: volumeProduced,
	})
	return nil
}

// RecordWaste attaches the batch's single waste record. The conservation
// check belongs to the production run engine; by the time waste is recorded
// it must be non-negative.
func (b *ProductionBatch) RecordWaste(volumeLoss decimal.Decimal) error {
	if volumeLoss.IsNegative() {
		return shared.NewDomainError("PHYSICS_VIOLATION", "Waste volume cannot be negative")
	}
	if b.Waste != nil {
		return shared.NewDomainError("INVALID_STATE", "Batch already has a waste record")
	}

	b.Waste = &WasteRecord{
		BaseEntity: shared.NewBaseEntity(),
		BatchID:    b.ID,
		VolumeLoss: volumeLoss,
		Reason:     WasteReason,
	}
	return nil
}

// TotalOutputVolume sums the produced volume over all output rows
func (b *ProductionBatch) TotalOutputVolume() decimal.Decimal {
	total := decimal.Zero
	for _, out := range b.Outputs {
		total = total.Add(out.VolumeProduced)
	}
	return total
}
