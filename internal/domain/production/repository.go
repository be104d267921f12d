package production

import (
	"context"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
)

// ProductionBatchRepository defines the interface for batch persistence.
// Saving a batch cascades its output rows and waste record.
type ProductionBatchRepository interface {
	// FindByID finds a batch with its outputs and waste record
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionBatch, error)

	// FindAll finds batches matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionBatch, error)

	// Count counts batches matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists a batch together with its children
	Save(ctx context.Context, batch *ProductionBatch) error
}
