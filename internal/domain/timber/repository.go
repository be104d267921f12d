package timber

import (
	"context"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LogRepository defines the interface for log persistence
type LogRepository interface {
	// FindByID finds a log by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Log, error)

	// FindByTagID finds a log by its unique tag
	FindByTagID(ctx context.Context, tagID string) (*Log, error)

	// FindByIDs finds multiple logs by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Log, error)

	// FindByIDsForUpdate finds multiple logs by ID, acquiring row locks so
	// that concurrent production runs against the same logs serialize.
	// Must be called inside a transaction.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]Log, error)

	// FindInStock finds logs with remaining quantity, oldest purchase first
	FindInStock(ctx context.Context) ([]Log, error)

	// FindAll finds logs matching the filter (tag search, pagination)
	FindAll(ctx context.Context, filter shared.Filter) ([]Log, error)

	// Count counts logs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a log
	Save(ctx context.Context, log *Log) error

	// SaveWithLock updates the mutable log state with an optimistic version check
	SaveWithLock(ctx context.Context, log *Log) error

	// SumRemainingValue sums (unit cost * remaining quantity) over all logs
	SumRemainingValue(ctx context.Context) (decimal.Decimal, error)

	// SumVolume sums the billable volume over all logs
	SumVolume(ctx context.Context) (decimal.Decimal, error)

	// SumPurchaseValue sums the total purchase price over all logs
	SumPurchaseValue(ctx context.Context) (decimal.Decimal, error)
}

// LedgerRepository defines the interface for the append-only inventory ledger.
// Entries are never updated or deleted.
type LedgerRepository interface {
	// Append persists a new ledger entry
	Append(ctx context.Context, entry *LedgerEntry) error

	// FindByLog returns all entries for a log in insertion order
	FindByLog(ctx context.Context, logID uuid.UUID) ([]LedgerEntry, error)

	// SumAmounts sums the signed amount over all entries
	SumAmounts(ctx context.Context) (decimal.Decimal, error)

	// SumAmountsByLog sums the signed amount over all entries of one log
	SumAmountsByLog(ctx context.Context, logID uuid.UUID) (decimal.Decimal, error)
}
