package persistence

import (
	"context"

	appproduction "github.com/sawmill/backend/internal/application/production"
	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/production"
	"github.com/sawmill/backend/internal/domain/timber"
	"gorm.io/gorm"
)

// GormProductionScope implements the production run TransactionScope using
// GORM transactions. Every repository handed to the callback shares one
// transaction, so a run commits or rolls back as a unit.
type GormProductionScope struct {
	db *gorm.DB
}

// NewGormProductionScope creates a new GormProductionScope.
func NewGormProductionScope(db *gorm.DB) *GormProductionScope {
	return &GormProductionScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *GormProductionScope) Execute(ctx context.Context, fn func(repos appproduction.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProductionRepositories{tx: tx})
	})
}

type gormProductionRepositories struct {
	tx *gorm.DB
}

// LogRepo returns the log repository scoped to the current transaction.
func (r *gormProductionRepositories) LogRepo() timber.LogRepository {
	return NewGormLogRepository(r.tx)
}

// ProductTypeRepo returns the product type repository scoped to the current transaction.
func (r *gormProductionRepositories) ProductTypeRepo() catalog.ProductTypeRepository {
	return NewGormProductTypeRepository(r.tx)
}

// BatchRepo returns the production batch repository scoped to the current transaction.
func (r *gormProductionRepositories) BatchRepo() production.ProductionBatchRepository {
	return NewGormProductionBatchRepository(r.tx)
}

// LedgerRepo returns the inventory ledger repository scoped to the current transaction.
func (r *gormProductionRepositories) LedgerRepo() timber.LedgerRepository {
	return NewGormLedgerRepository(r.tx)
}

var _ appproduction.TransactionScope = (*GormProductionScope)(nil)
var _ appproduction.TransactionalRepositories = (*gormProductionRepositories)(nil)
