package production

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/production"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
)

// fakeLogRepo is an in-memory LogRepository. Finders return copies, so
// callers mutate their own snapshots and nothing sticks until Save.
type fakeLogRepo struct {
	mu   sync.Mutex
	logs map[uuid.UUID]timber.Log
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[uuid.UUID]timber.Log)}
}

func (r *fakeLogRepo) FindByID(_ context.Context, id uuid.UUID) (*timber.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log, ok := r.logs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &log, nil
}

func (r *fakeLogRepo) FindByTagID(_ context.Context, tagID string) (*timber.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, log := range r.logs {
		if log.TagID == tagID {
			return &log, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeLogRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]timber.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]timber.Log, 0, len(ids))
	for _, id := range ids {
		if log, ok := r.logs[id]; ok {
			found = append(found, log)
		}
	}
	return found, nil
}

func (r *fakeLogRepo) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]timber.Log, error) {
	return r.FindByIDs(ctx, ids)
}

func (r *fakeLogRepo) FindInStock(_ context.Context) ([]timber.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]timber.Log, 0, len(r.logs))
	for _, log := range r.logs {
		if log.HasStock() {
			found = append(found, log)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].PurchaseDate.Before(found[j].PurchaseDate) })
	return found, nil
}

func (r *fakeLogRepo) FindAll(_ context.Context, _ shared.Filter) ([]timber.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]timber.Log, 0, len(r.logs))
	for _, log := range r.logs {
		found = append(found, log)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].PurchaseDate.Before(found[j].PurchaseDate) })
	return found, nil
}

func (r *fakeLogRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.logs)), nil
}

func (r *fakeLogRepo) Save(_ context.Context, log *timber.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[log.ID] = *log
	return nil
}

func (r *fakeLogRepo) SaveWithLock(_ context.Context, log *timber.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.logs[log.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version >= log.Version {
		return shared.ErrConcurrencyConflict
	}
	r.logs[log.ID] = *log
	return nil
}

func (r *fakeLogRepo) SumRemainingValue(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, log := range r.logs {
		sum = sum.Add(log.RemainingValue())
	}
	return sum, nil
}

func (r *fakeLogRepo) SumVolume(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, log := range r.logs {
		sum = sum.Add(log.VolumeFinal)
	}
	return sum, nil
}

func (r *fakeLogRepo) SumPurchaseValue(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, log := range r.logs {
		sum = sum.Add(log.TotalPurchasePrice)
	}
	return sum, nil
}

// fakeProductTypeRepo is an in-memory ProductTypeRepository
type fakeProductTypeRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]catalog.ProductType
}

func newFakeProductTypeRepo() *fakeProductTypeRepo {
	return &fakeProductTypeRepo{products: make(map[uuid.UUID]catalog.ProductType)}
}

func (r *fakeProductTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.ProductType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pt, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &pt, nil
}

func (r *fakeProductTypeRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.ProductType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]catalog.ProductType, 0, len(ids))
	for _, id := range ids {
		if pt, ok := r.products[id]; ok {
			found = append(found, pt)
		}
	}
	return found, nil
}

func (r *fakeProductTypeRepo) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductType, error) {
	return r.FindByIDs(ctx, ids)
}

func (r *fakeProductTypeRepo) FindByName(_ context.Context, name string) (*catalog.ProductType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pt := range r.products {
		if pt.Name == name {
			return &pt, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductTypeRepo) FindAll(_ context.Context) ([]catalog.ProductType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]catalog.ProductType, 0, len(r.products))
	for _, pt := range r.products {
		found = append(found, pt)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

func (r *fakeProductTypeRepo) Save(_ context.Context, pt *catalog.ProductType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[pt.ID] = *pt
	return nil
}

func (r *fakeProductTypeRepo) SaveWithLock(_ context.Context, pt *catalog.ProductType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[pt.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version >= pt.Version {
		return shared.ErrConcurrencyConflict
	}
	r.products[pt.ID] = *pt
	return nil
}

// fakeBatchRepo is an in-memory ProductionBatchRepository
type fakeBatchRepo struct {
	mu      sync.Mutex
	batches map[uuid.UUID]production.ProductionBatch
	order   []uuid.UUID
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[uuid.UUID]production.ProductionBatch)}
}

func (r *fakeBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*production.ProductionBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &batch, nil
}

func (r *fakeBatchRepo) FindAll(_ context.Context, _ shared.Filter) ([]production.ProductionBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]production.ProductionBatch, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		found = append(found, r.batches[r.order[i]])
	}
	return found, nil
}

func (r *fakeBatchRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.batches)), nil
}

func (r *fakeBatchRepo) Save(_ context.Context, batch *production.ProductionBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[batch.ID]; !ok {
		r.order = append(r.order, batch.ID)
	}
	r.batches[batch.ID] = *batch
	return nil
}

// fakeLedgerRepo is an in-memory append-only LedgerRepository
type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []timber.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (r *fakeLedgerRepo) Append(_ context.Context, entry *timber.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLedgerRepo) FindByLog(_ context.Context, logID uuid.UUID) ([]timber.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make([]timber.LedgerEntry, 0)
	for _, entry := range r.entries {
		if entry.LogID == logID {
			found = append(found, entry)
		}
	}
	return found, nil
}

func (r *fakeLedgerRepo) SumAmounts(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, entry := range r.entries {
		sum = sum.Add(entry.AmountChange)
	}
	return sum, nil
}

func (r *fakeLedgerRepo) SumAmountsByLog(_ context.Context, logID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, entry := range r.entries {
		if entry.LogID == logID {
			sum = sum.Add(entry.AmountChange)
		}
	}
	return sum, nil
}

// fakeIdempotencyStore is an in-memory IdempotencyStore without TTL expiry
type fakeIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{keys: make(map[string]time.Time)}
}

func (s *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = time.Now().Add(ttl)
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *fakeIdempotencyStore) Close() error { return nil }

var (
	_ timber.LogRepository                 = (*fakeLogRepo)(nil)
	_ catalog.ProductTypeRepository        = (*fakeProductTypeRepo)(nil)
	_ production.ProductionBatchRepository = (*fakeBatchRepo)(nil)
	_ timber.LedgerRepository              = (*fakeLedgerRepo)(nil)
	_ shared.IdempotencyStore              = (*fakeIdempotencyStore)(nil)
)
