package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerRepository implements timber.LedgerRepository using GORM.
// The ledger is append-only: no update or delete path exists.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists a new ledger entry
func (r *GormLedgerRepository) Append(ctx context.Context, entry *timber.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByLog returns all entries for a log in insertion order
func (r *GormLedgerRepository) FindByLog(ctx context.Context, logID uuid.UUID) ([]timber.LedgerEntry, error) {
	var entries []timber.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("log_id = ?", logID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumAmounts sums the signed amount over all entries
func (r *GormLedgerRepository) SumAmounts(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&timber.LedgerEntry{}).
		Select("COALESCE(SUM(amount_change), 0) as total").
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumAmountsByLog sums the signed amount over all entries of one log
func (r *GormLedgerRepository) SumAmountsByLog(ctx context.Context, logID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&timber.LedgerEntry{}).
		Select("COALESCE(SUM(amount_change), 0) as total").
		Where("log_id = ?", logID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ timber.LedgerRepository = (*GormLedgerRepository)(nil)
