package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLogRepository implements timber.LogRepository using GORM
type GormLogRepository struct {
	db *gorm.DB
}

// NewGormLogRepository creates a new GormLogRepository
func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

// FindByID finds a log by its ID
func (r *GormLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*timber.Log, error) {
	var log timber.Log
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindByTagID finds a log by its unique tag
func (r *GormLogRepository) FindByTagID(ctx context.Context, tagID string) (*timber.Log, error) {
	var log timber.Log
	if err := r.db.WithContext(ctx).First(&log, "tag_id = ?", tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindByIDs finds multiple logs by their IDs
func (r *GormLogRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]timber.Log, error) {
	if len(ids) == 0 {
		return []timber.Log{}, nil
	}
	var logs []timber.Log
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByIDsForUpdate finds logs by ID with SELECT ... FOR UPDATE row locks.
// Concurrent production runs against the same logs block here until the
// earlier transaction commits, then re-read the committed state.
func (r *GormLogRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]timber.Log, error) {
	if len(ids) == 0 {
		return []timber.Log{}, nil
	}
	var logs []timber.Log
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindInStock finds logs with remaining quantity, oldest purchase first
func (r *GormLogRepository) FindInStock(ctx context.Context) ([]timber.Log, error) {
	var logs []timber.Log
	if err := r.db.WithContext(ctx).
		Where("remaining_quantity > 0").
		Order("purchase_date ASC, created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindAll finds logs matching the filter
func (r *GormLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]timber.Log, error) {
	var logs []timber.Log
	query := r.applyFilter(r.db.WithContext(ctx).Model(&timber.Log{}), filter)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts logs matching the filter
func (r *GormLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&timber.Log{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a log
func (r *GormLogRepository) Save(ctx context.Context, log *timber.Log) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// SaveWithLock updates the mutable log state with an optimistic version check
func (r *GormLogRepository) SaveWithLock(ctx context.Context, log *timber.Log) error {
	result := r.db.WithContext(ctx).
		Model(log).
		Where("id = ? AND version = ?", log.ID, log.Version-1).
		Updates(map[string]interface{}{
			"remaining_quantity":  log.RemainingQuantity,
			"status":              log.Status,
			"production_batch_id": log.ProductionBatchID,
			"version":             log.Version,
			"updated_at":          log.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Log was modified by another transaction")
	}
	return nil
}

// SumRemainingValue sums the purchase value still held in raw stock
func (r *GormLogRepository) SumRemainingValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "COALESCE(SUM((total_purchase_price / quantity) * remaining_quantity), 0) as total")
}

// SumVolume sums the billable volume over all logs
func (r *GormLogRepository) SumVolume(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "COALESCE(SUM(volume_final), 0) as total")
}

// SumPurchaseValue sums the total purchase price over all logs
func (r *GormLogRepository) SumPurchaseValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "COALESCE(SUM(total_purchase_price), 0) as total")
}

func (r *GormLogRepository) sum(ctx context.Context, selectExpr string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&timber.Log{}).
		Select(selectExpr).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *GormLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LogSortFields, "purchase_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("tag_id ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "wood_type_id":
			query = query.Where("wood_type_id = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("remaining_quantity > 0")
			}
		}
	}
	return query
}

var _ timber.LogRepository = (*GormLogRepository)(nil)
