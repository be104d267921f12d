package timber

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AllocationPlanItem is one proposed draw-down against a single log
type AllocationPlanItem struct {
	LogID   uuid.UUID
	TagID   string
	QtyUsed int64
}

// AllocationPlan is the result of planning an allocation across logs.
// It is a proposal only; nothing is mutated until the plan is submitted
// as a production run.
type AllocationPlan struct {
	Items          []AllocationPlanItem
	TotalAllocated int64
	PlannedVolume  decimal.Decimal // pro-rated billable volume of the plan
	Shortfall      int64           // quantity that could not be fulfilled
	FullyFulfilled bool
}

// PlanFIFOAllocation greedily selects logs oldest-purchase-first until the
// requested quantity is covered. Logs without remaining stock are skipped.
// Allocation order is ultimately a caller decision; this helper encodes the
// mill's default first-in-first-out costing convention.
func PlanFIFOAllocation(requested int64, logs []Log) (*AllocationPlan, error) {
	if requested <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requested quantity must be positive")
	}

	available := make([]Log, 0, len(logs))
	for _, log := range logs {
		if log.HasStock() {
			available = append(available, log)
		}
	}

	sort.Slice(available, func(i, j int) bool {
		if !available[i].PurchaseDate.Equal(available[j].PurchaseDate) {
			return available[i].PurchaseDate.Before(available[j].PurchaseDate)
		}
		return available[i].CreatedAt.Before(available[j].CreatedAt)
	})

	plan := &AllocationPlan{
		Items:         make([]AllocationPlanItem, 0, len(available)),
		PlannedVolume: decimal.Zero,
	}

	remaining := requested
	for _, log := range available {
		if remaining == 0 {
			break
		}
		take := log.RemainingQuantity
		if take > remaining {
			take = remaining
		}
		plan.Items = append(plan.Items, AllocationPlanItem{
			LogID:   log.ID,
			TagID:   log.TagID,
			QtyUsed: take,
		})
		plan.PlannedVolume = plan.PlannedVolume.Add(log.ProRatedVolume(take))
		plan.TotalAllocated += take
		remaining -= take
	}

	plan.Shortfall = remaining
	plan.FullyFulfilled = remaining == 0

	return plan, nil
}
