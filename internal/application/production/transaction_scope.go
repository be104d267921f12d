package production

import (
	"context"

	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/production"
	"github.com/sawmill/backend/internal/domain/timber"
)

// TransactionScope provides transactional access to the repositories a
// production run touches. When a function is executed within a transaction
// scope, all repository operations are part of the same database transaction
// and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories a production
// run writes to, bound to one shared transaction.
//
// Aggregate boundary notes:
//   - LogRepo: the Log aggregate. Draw-downs go through SaveWithLock after
//     the rows were read FOR UPDATE, so racing runs serialize.
//   - ProductTypeRepo: the ProductType aggregate, for stock increments.
//   - BatchRepo: the ProductionBatch aggregate; saving cascades output rows
//     and the waste record.
//   - LedgerRepo: append-only, one consumption entry per draw-down.
type TransactionalRepositories interface {
	// LogRepo returns the log repository scoped to the current transaction
	LogRepo() timber.LogRepository
	// ProductTypeRepo returns the product type repository scoped to the current transaction
	ProductTypeRepo() catalog.ProductTypeRepository
	// BatchRepo returns the production batch repository scoped to the current transaction
	BatchRepo() production.ProductionBatchRepository
	// LedgerRepo returns the inventory ledger repository scoped to the current transaction
	LedgerRepo() timber.LedgerRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests and for stores without transaction support.
type NoOpTransactionScope struct {
	logRepo         timber.LogRepository
	productTypeRepo catalog.ProductTypeRepository
	batchRepo       production.ProductionBatchRepository
	ledgerRepo      timber.LedgerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	logRepo timber.LogRepository,
	productTypeRepo catalog.ProductTypeRepository,
	batchRepo production.ProductionBatchRepository,
	ledgerRepo timber.LedgerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		logRepo:         logRepo,
		productTypeRepo: productTypeRepo,
		batchRepo:       batchRepo,
		ledgerRepo:      ledgerRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// LogRepo returns the log repository.
func (s *NoOpTransactionScope) LogRepo() timber.LogRepository {
	return s.logRepo
}

// ProductTypeRepo returns the product type repository.
func (s *NoOpTransactionScope) ProductTypeRepo() catalog.ProductTypeRepository {
	return s.productTypeRepo
}

// BatchRepo returns the production batch repository.
func (s *NoOpTransactionScope) BatchRepo() production.ProductionBatchRepository {
	return s.batchRepo
}

// LedgerRepo returns the inventory ledger repository.
func (s *NoOpTransactionScope) LedgerRepo() timber.LedgerRepository {
	return s.ledgerRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
