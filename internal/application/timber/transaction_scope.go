package timber

import (
	"context"

	"github.com/sawmill/backend/internal/domain/timber"
)

// TransactionScope provides transactional access to the repositories a
// purchase touches: the new log row and its opening ledger entry commit or
// roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the log and ledger repositories bound
// to one shared transaction.
type TransactionalRepositories interface {
	// LogRepo returns the log repository scoped to the current transaction
	LogRepo() timber.LogRepository
	// LedgerRepo returns the inventory ledger repository scoped to the current transaction
	LedgerRepo() timber.LedgerRepository
}

// NoOpTransactionScope is a transaction scope without real transactions,
// for tests and stores without transaction support.
type NoOpTransactionScope struct {
	logRepo    timber.LogRepository
	ledgerRepo timber.LedgerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(logRepo timber.LogRepository, ledgerRepo timber.LedgerRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{logRepo: logRepo, ledgerRepo: ledgerRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// LogRepo returns the log repository.
func (s *NoOpTransactionScope) LogRepo() timber.LogRepository {
	return s.logRepo
}

// LedgerRepo returns the inventory ledger repository.
func (s *NoOpTransactionScope) LedgerRepo() timber.LedgerRepository {
	return s.ledgerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
