package persistence

import (
	"context"

	apptimber "github.com/sawmill/backend/internal/application/timber"
	"github.com/sawmill/backend/internal/domain/timber"
	"gorm.io/gorm"
)

// GormPurchaseScope implements the purchase TransactionScope using GORM
// transactions: the log row and its opening ledger entry land together.
type GormPurchaseScope struct {
	db *gorm.DB
}

// NewGormPurchaseScope creates a new GormPurchaseScope.
func NewGormPurchaseScope(db *gorm.DB) *GormPurchaseScope {
	return &GormPurchaseScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *GormPurchaseScope) Execute(ctx context.Context, fn func(repos apptimber.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPurchaseRepositories{tx: tx})
	})
}

type gormPurchaseRepositories struct {
	tx *gorm.DB
}

// LogRepo returns the log repository scoped to the current transaction.
func (r *gormPurchaseRepositories) LogRepo() timber.LogRepository {
	return NewGormLogRepository(r.tx)
}

// LedgerRepo returns the inventory ledger repository scoped to the current transaction.
func (r *gormPurchaseRepositories) LedgerRepo() timber.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

var _ apptimber.TransactionScope = (*GormPurchaseScope)(nil)
var _ apptimber.TransactionalRepositories = (*gormPurchaseRepositories)(nil)
