package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&timber.Log{}, &timber.LedgerEntry{})
	require.NoError(t, err)

	return db
}

func makeLog(t *testing.T, tag string, quantity int64, purchased time.Time) *timber.Log {
	t.Helper()
	log, err := timber.NewLog(tag, uuid.New(), uuid.New(),
		decimal.NewFromInt(100), decimal.NewFromInt(200), quantity, decimal.NewFromInt(1000))
	require.NoError(t, err)
	log.PurchaseDate = purchased
	return log
}

func TestGormLogRepository_SaveAndFind(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewGormLogRepository(db)
	ctx := context.Background()

	t.Run("round-trips a log", func(t *testing.T) {
		log := makeLog(t, "LOG-RT", 100, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, log))

		found, err := repo.FindByID(ctx, log.ID)
		require.NoError(t, err)
		assert.Equal(t, "LOG-RT", found.TagID)
		assert.Equal(t, int64(100), found.RemainingQuantity)
		assert.Equal(t, timber.LogStatusInStock, found.Status)
		assert.True(t, found.VolumeFinal.Equal(decimal.NewFromInt(9812)))
	})

	t.Run("finds by tag", func(t *testing.T) {
		found, err := repo.FindByTagID(ctx, "LOG-RT")
		require.NoError(t, err)
		assert.Equal(t, "LOG-RT", found.TagID)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByTagID(ctx, "LOG-MISSING")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLogRepository_FindInStock(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewGormLogRepository(db)
	ctx := context.Background()

	newer := makeLog(t, "LOG-NEW", 10, time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC))
	older := makeLog(t, "LOG-OLD", 10, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	drained := makeLog(t, "LOG-DRAINED", 10, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, drained.Allocate(10))

	for _, log := range []*timber.Log{newer, older, drained} {
		require.NoError(t, repo.Save(ctx, log))
	}

	logs, err := repo.FindInStock(ctx)
	require.NoError(t, err)

	require.Len(t, logs, 2)
	assert.Equal(t, "LOG-OLD", logs[0].TagID)
	assert.Equal(t, "LOG-NEW", logs[1].TagID)
}

func TestGormLogRepository_SaveWithLock(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewGormLogRepository(db)
	ctx := context.Background()

	t.Run("persists a versioned draw-down", func(t *testing.T) {
		log := makeLog(t, "LOG-V", 100, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, log))

		require.NoError(t, log.Allocate(25))
		require.NoError(t, repo.SaveWithLock(ctx, log))

		found, err := repo.FindByID(ctx, log.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(75), found.RemainingQuantity)
		assert.Equal(t, timber.LogStatusPartial, found.Status)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		log := makeLog(t, "LOG-STALE", 100, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, log))

		first, err := repo.FindByID(ctx, log.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, log.ID)
		require.NoError(t, err)

		require.NoError(t, first.Allocate(10))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.Allocate(20))
		err = repo.SaveWithLock(ctx, second)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_FAILED", domainErr.Code)

		found, err := repo.FindByID(ctx, log.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(90), found.RemainingQuantity, "stale writer must not win")
	})
}

func TestGormLogRepository_Sums(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewGormLogRepository(db)
	ctx := context.Background()

	a := makeLog(t, "LOG-A", 100, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) // 9812 points, 9,812,000
	b := makeLog(t, "LOG-B", 50, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))  // 4906 points, 4,906,000
	require.NoError(t, a.Allocate(25))
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	volume, err := repo.SumVolume(ctx)
	require.NoError(t, err)
	assert.True(t, volume.Equal(decimal.NewFromInt(14718)), "got %s", volume)

	purchase, err := repo.SumPurchaseValue(ctx)
	require.NoError(t, err)
	assert.True(t, purchase.Equal(decimal.NewFromInt(14718000)), "got %s", purchase)

	remaining, err := repo.SumRemainingValue(ctx)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(decimal.NewFromInt(12265000)), "got %s", remaining)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
