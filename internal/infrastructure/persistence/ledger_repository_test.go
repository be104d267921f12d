package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLedgerRepository(t *testing.T) {
	db := setupLogTestDB(t)
	logRepo := NewGormLogRepository(db)
	repo := NewGormLedgerRepository(db)
	ctx := context.Background()

	log := makeLog(t, "LOG-L", 100, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, logRepo.Save(ctx, log))

	t.Run("appends purchase and consumption entries", func(t *testing.T) {
		require.NoError(t, repo.Append(ctx, timber.NewPurchaseEntry(log)))
		require.NoError(t, repo.Append(ctx, timber.NewConsumptionEntry(log, 25)))

		entries, err := repo.FindByLog(ctx, log.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, timber.LedgerActionPurchase, entries[0].Action)
		assert.Equal(t, timber.LedgerActionProductionUse, entries[1].Action)
		assert.True(t, entries[0].AmountChange.Equal(decimal.NewFromInt(9812000)))
		assert.True(t, entries[1].AmountChange.Equal(decimal.NewFromInt(-2453000)))
	})

	t.Run("sums signed amounts", func(t *testing.T) {
		total, err := repo.SumAmounts(ctx)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(7359000)), "got %s", total)

		byLog, err := repo.SumAmountsByLog(ctx, log.ID)
		require.NoError(t, err)
		assert.True(t, byLog.Equal(total))
	})

	t.Run("empty ledger sums to zero for unknown log", func(t *testing.T) {
		other := makeLog(t, "LOG-EMPTY", 10, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))
		sum, err := repo.SumAmountsByLog(ctx, other.ID)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}
