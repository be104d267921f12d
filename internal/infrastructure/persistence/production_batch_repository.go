package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/production"
	"github.com/sawmill/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductionBatchRepository implements production.ProductionBatchRepository
// using GORM. Output rows and the waste record are saved through the
// aggregate's associations.
type GormProductionBatchRepository struct {
	db *gorm.DB
}

// NewGormProductionBatchRepository creates a new GormProductionBatchRepository
func NewGormProductionBatchRepository(db *gorm.DB) *GormProductionBatchRepository {
	return &GormProductionBatchRepository{db: db}
}

// FindByID finds a batch with its outputs and waste record
func (r *GormProductionBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionBatch, error) {
	var batch production.ProductionBatch
	if err := r.db.WithContext(ctx).
		Preload("Outputs").
		Preload("Waste").
		First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAll finds batches matching the filter, newest production date first
func (r *GormProductionBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.ProductionBatch, error) {
	var batches []production.ProductionBatch
	query := r.applyFilter(r.db.WithContext(ctx).Model(&production.ProductionBatch{}), filter).
		Preload("Outputs").
		Preload("Waste")
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Count counts batches matching the filter
func (r *GormProductionBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&production.ProductionBatch{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a batch together with its children
func (r *GormProductionBatchRepository) Save(ctx context.Context, batch *production.ProductionBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

func (r *GormProductionBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BatchSortFields, "date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormProductionBatchRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "date_from":
			query = query.Where("date >= ?", value)
		case "date_to":
			query = query.Where("date <= ?", value)
		}
	}
	return query
}

var _ production.ProductionBatchRepository = (*GormProductionBatchRepository)(nil)
