package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/production"
	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
)

// AllocationInput is one requested draw-down against a log batch
type AllocationInput struct {
	LogID   uuid.UUID `json:"log_id" binding:"required"`
	QtyUsed int64     `json:"qty_used" binding:"required,gt=0"`
}

// OutputInput is one declared finished-good output of the run
type OutputInput struct {
	ProductTypeID uuid.UUID `json:"product_type_id" binding:"required"`
	Quantity      int64     `json:"quantity" binding:"required,gt=0"`
}

// ProductionRunRequest represents a request to record a production run
type ProductionRunRequest struct {
	Date           time.Time         `json:"date" binding:"required"`
	Allocations    []AllocationInput `json:"allocations" binding:"required,min=1,dive"`
	Outputs        []OutputInput     `json:"outputs" binding:"dive"`
	IdempotencyKey string            `json:"idempotency_key"`
}

// ConsumedLogResult reports the post-run state of one allocated log
type ConsumedLogResult struct {
	LogID             uuid.UUID       `json:"log_id"`
	TagID             string          `json:"tag_id"`
	QtyUsed           int64           `json:"qty_used"`
	RemainingQuantity int64           `json:"remaining_quantity"`
	Status            string          `json:"status"`
	VolumeAllocated   decimal.Decimal `json:"volume_allocated"`
	ValueConsumed     decimal.Decimal `json:"value_consumed"`
}

// OutputResult reports one produced finished good with its new stock level
type OutputResult struct {
	ProductTypeID  uuid.UUID       `json:"product_type_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int64           `json:"quantity"`
	VolumeProduced decimal.Decimal `json:"volume_produced"`
	NewStockCount  int64           `json:"new_stock_count"`
}

// ProductionRunResponse represents the outcome of a committed production run
type ProductionRunResponse struct {
	BatchID      uuid.UUID           `json:"batch_id"`
	Date         time.Time           `json:"date"`
	InputVolume  decimal.Decimal     `json:"input_volume"`
	OutputVolume decimal.Decimal     `json:"output_volume"`
	WasteVolume  decimal.Decimal     `json:"waste_volume"`
	Efficiency   decimal.Decimal     `json:"efficiency"` // percent, 2dp
	ConsumedLogs []ConsumedLogResult `json:"consumed_logs"`
	Outputs      []OutputResult      `json:"outputs"`
}

// BatchResponse represents a stored production batch in API responses
type BatchResponse struct {
	ID           uuid.UUID             `json:"id"`
	Date         time.Time             `json:"date"`
	TargetVolume decimal.Decimal       `json:"target_volume"`
	OutputVolume decimal.Decimal       `json:"output_volume"`
	WasteVolume  decimal.Decimal       `json:"waste_volume"`
	Efficiency   decimal.Decimal       `json:"efficiency"`
	Outputs      []BatchOutputResponse `json:"outputs"`
	CreatedAt    time.Time             `json:"created_at"`
}

// BatchOutputResponse represents one output row of a stored batch
type BatchOutputResponse struct {
	ProductTypeID  uuid.UUID       `json:"product_type_id"`
	Quantity       int64           `json:"quantity"`
	VolumeProduced decimal.Decimal `json:"volume_produced"`
}

// AutoAllocateRequest asks for a FIFO allocation proposal covering a quantity
type AutoAllocateRequest struct {
	TotalNeeded int64 `json:"total_needed" binding:"required,gt=0"`
}

// AutoAllocateResponse is the proposed plan; nothing is mutated
type AutoAllocateResponse struct {
	Items          []AllocationProposal `json:"items"`
	TotalAllocated int64                `json:"total_allocated"`
	PlannedVolume  decimal.Decimal      `json:"planned_volume"`
	Shortfall      int64                `json:"shortfall"`
	FullyFulfilled bool                 `json:"fully_fulfilled"`
}

// AllocationProposal is one proposed draw-down in an auto-allocation plan
type AllocationProposal struct {
	LogID   uuid.UUID `json:"log_id"`
	TagID   string    `json:"tag_id"`
	QtyUsed int64     `json:"qty_used"`
}

// ToBatchResponse converts a stored batch to its API representation
func ToBatchResponse(batch *production.ProductionBatch) BatchResponse {
	outputs := make([]BatchOutputResponse, 0, len(batch.Outputs))
	for _, out := range batch.Outputs {
		outputs = append(outputs, BatchOutputResponse{
			ProductTypeID:  out.ProductTypeID,
			Quantity:       out.Quantity,
			VolumeProduced: out.VolumeProduced,
		})
	}

	waste := decimal.Zero
	if batch.Waste != nil {
		waste = batch.Waste.VolumeLoss
	}
	outputVolume := batch.TotalOutputVolume()

	return BatchResponse{
		ID:           batch.ID,
		Date:         batch.Date,
		TargetVolume: batch.TargetVolume,
		OutputVolume: outputVolume,
		WasteVolume:  waste,
		Efficiency:   efficiencyPercent(outputVolume, batch.TargetVolume),
		Outputs:      outputs,
		CreatedAt:    batch.CreatedAt,
	}
}

// ToAutoAllocateResponse converts a domain allocation plan to its API representation
func ToAutoAllocateResponse(plan *timber.AllocationPlan) AutoAllocateResponse {
	items := make([]AllocationProposal, 0, len(plan.Items))
	for _, item := range plan.Items {
		items = append(items, AllocationProposal{
			LogID:   item.LogID,
			TagID:   item.TagID,
			QtyUsed: item.QtyUsed,
		})
	}
	return AutoAllocateResponse{
		Items:          items,
		TotalAllocated: plan.TotalAllocated,
		PlannedVolume:  plan.PlannedVolume,
		Shortfall:      plan.Shortfall,
		FullyFulfilled: plan.FullyFulfilled,
	}
}

// efficiencyPercent returns output/input as a percentage rounded to two
// decimal places, zero when no input volume was allocated.
func efficiencyPercent(output, input decimal.Decimal) decimal.Decimal {
	if input.IsZero() {
		return decimal.Zero
	}
	return output.Div(input).Mul(decimal.NewFromInt(100)).Round(2)
}
