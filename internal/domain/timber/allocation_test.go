package timber

import (
	"testing"
	"time"

	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockLog(t *testing.T, tag string, quantity int64, purchased time.Time) Log {
	t.Helper()
	log := newTestLog(t, quantity)
	log.TagID = tag
	log.PurchaseDate = purchased
	log.CreatedAt = purchased
	return *log
}

func TestPlanFIFOAllocation(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("drains oldest purchase first", func(t *testing.T) {
		logs := []Log{
			stockLog(t, "NEW", 100, base.AddDate(0, 0, 2)),
			stockLog(t, "OLD", 30, base),
			stockLog(t, "MID", 50, base.AddDate(0, 0, 1)),
		}

		plan, err := PlanFIFOAllocation(60, logs)
		require.NoError(t, err)

		require.Len(t, plan.Items, 2)
		assert.Equal(t, "OLD", plan.Items[0].TagID)
		assert.Equal(t, int64(30), plan.Items[0].QtyUsed)
		assert.Equal(t, "MID", plan.Items[1].TagID)
		assert.Equal(t, int64(30), plan.Items[1].QtyUsed)
		assert.Equal(t, int64(60), plan.TotalAllocated)
		assert.True(t, plan.FullyFulfilled)
		assert.Zero(t, plan.Shortfall)
	})

	t.Run("breaks purchase-date ties by creation time", func(t *testing.T) {
		first := stockLog(t, "FIRST", 10, base)
		second := stockLog(t, "SECOND", 10, base)
		second.CreatedAt = first.CreatedAt.Add(time.Second)

		plan, err := PlanFIFOAllocation(5, []Log{second, first})
		require.NoError(t, err)

		require.Len(t, plan.Items, 1)
		assert.Equal(t, "FIRST", plan.Items[0].TagID)
	})

	t.Run("skips logs without remaining stock", func(t *testing.T) {
		drained := stockLog(t, "DRAINED", 20, base)
		require.NoError(t, (&drained).Allocate(20))
		fresh := stockLog(t, "FRESH", 20, base.AddDate(0, 0, 1))

		plan, err := PlanFIFOAllocation(10, []Log{drained, fresh})
		require.NoError(t, err)

		require.Len(t, plan.Items, 1)
		assert.Equal(t, "FRESH", plan.Items[0].TagID)
	})

	t.Run("reports shortfall when stock is insufficient", func(t *testing.T) {
		logs := []Log{
			stockLog(t, "A", 10, base),
			stockLog(t, "B", 15, base.AddDate(0, 0, 1)),
		}

		plan, err := PlanFIFOAllocation(40, logs)
		require.NoError(t, err)

		assert.Equal(t, int64(25), plan.TotalAllocated)
		assert.Equal(t, int64(15), plan.Shortfall)
		assert.False(t, plan.FullyFulfilled)
	})

	t.Run("accumulates pro-rated volume of the plan", func(t *testing.T) {
		// Each test log carries 9812 points over 100 units, 98.12 per unit.
		logs := []Log{stockLog(t, "A", 100, base)}

		plan, err := PlanFIFOAllocation(25, logs)
		require.NoError(t, err)

		assert.Equal(t, "2453", plan.PlannedVolume.String())
	})

	t.Run("rejects non-positive request", func(t *testing.T) {
		_, err := PlanFIFOAllocation(0, nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}
