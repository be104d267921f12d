package production

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/production"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
)

// ProductionService coordinates atomic production runs: draw raw logs down,
// mint finished goods, derive waste, and keep the value ledger in step.
// Everything a run touches is validated before the first write; the commit
// itself happens inside a single transaction scope.
type ProductionService struct {
	scope            TransactionScope
	logRepo          timber.LogRepository
	batchRepo        production.ProductionBatchRepository
	idempotencyStore shared.IdempotencyStore
	idempotencyCfg   shared.IdempotencyConfig
}

// NewProductionService creates a new ProductionService
func NewProductionService(
	scope TransactionScope,
	logRepo timber.LogRepository,
	batchRepo production.ProductionBatchRepository,
) *ProductionService {
	return &ProductionService{
		scope:          scope,
		logRepo:        logRepo,
		batchRepo:      batchRepo,
		idempotencyCfg: shared.DefaultIdempotencyConfig(),
	}
}

// SetIdempotencyStore enables duplicate-submission detection for requests
// carrying an idempotency key.
func (s *ProductionService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotencyStore = store
	s.idempotencyCfg = cfg
}

// RecordProductionRun validates and commits one production run. Either every
// effect lands (batch, log draw-downs, ledger entries, stock increments,
// waste record) or none do.
func (s *ProductionService) RecordProductionRun(ctx context.Context, req ProductionRunRequest) (*ProductionRunResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.checkIdempotency(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	var response *ProductionRunResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := s.executeRun(ctx, repos, req)
		if err != nil {
			return err
		}
		response = result
		return nil
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, shared.NewDomainError("TRANSACTION_FAILURE", fmt.Sprintf("Production run failed: %v", err))
	}

	s.markProcessed(ctx, req.IdempotencyKey)

	return response, nil
}

// executeRun performs the work of a production run inside the transaction:
// lock and validate all inputs first, write only once everything holds.
func (s *ProductionService) executeRun(ctx context.Context, repos TransactionalRepositories, req ProductionRunRequest) (*ProductionRunResponse, error) {
	// Resolve and row-lock the allocated logs so racing runs serialize.
	logIDs := make([]uuid.UUID, 0, len(req.Allocations))
	for _, alloc := range req.Allocations {
		logIDs = append(logIDs, alloc.LogID)
	}
	logs, err := repos.LogRepo().FindByIDsForUpdate(ctx, logIDs)
	if err != nil {
		return nil, err
	}
	logByID := make(map[uuid.UUID]*timber.Log, len(logs))
	for i := range logs {
		logByID[logs[i].ID] = &logs[i]
	}
	if missing := missingIDs(logIDs, func(id uuid.UUID) bool { _, ok := logByID[id]; return ok }); len(missing) > 0 {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Logs not found: %s", strings.Join(missing, ", ")))
	}

	// Draw down in memory. Over-drafting any log aborts the run before a
	// single row is written.
	inputVolume := decimal.Zero
	consumed := make([]ConsumedLogResult, 0, len(req.Allocations))
	ledgerEntries := make([]*timber.LedgerEntry, 0, len(req.Allocations))
	for _, alloc := range req.Allocations {
		log := logByID[alloc.LogID]

		volumeShare := log.ProRatedVolume(alloc.QtyUsed)
		entry := timber.NewConsumptionEntry(log, alloc.QtyUsed)
		if err := log.Allocate(alloc.QtyUsed); err != nil {
			return nil, err
		}

		inputVolume = inputVolume.Add(volumeShare)
		ledgerEntries = append(ledgerEntries, entry)
		consumed = append(consumed, ConsumedLogResult{
			LogID:             log.ID,
			TagID:             log.TagID,
			QtyUsed:           alloc.QtyUsed,
			RemainingQuantity: log.RemainingQuantity,
			Status:            log.Status.String(),
			VolumeAllocated:   volumeShare,
			ValueConsumed:     entry.AmountChange.Neg(),
		})
	}

	// Resolve and row-lock the produced goods, then price the output side.
	products, err := s.lockProducts(ctx, repos, req.Outputs)
	if err != nil {
		return nil, err
	}
	outputVolume := decimal.Zero
	outputVolumes := make([]decimal.Decimal, len(req.Outputs))
	for i, out := range req.Outputs {
		product := products[out.ProductTypeID]
		outputVolumes[i] = product.StandardVolume.Mul(decimal.NewFromInt(out.Quantity))
		outputVolume = outputVolume.Add(outputVolumes[i])
	}

	// Conservation of mass: output can never exceed allocated input.
	waste := inputVolume.Sub(outputVolume)
	if waste.IsNegative() {
		return nil, shared.NewDomainError("PHYSICS_VIOLATION",
			fmt.Sprintf("Output volume %s exceeds allocated input volume %s by %s",
				outputVolume, inputVolume, waste.Neg()))
	}

	// All checks passed; persist the run.
	batch, err := production.NewProductionBatch(req.Date, inputVolume)
	if err != nil {
		return nil, err
	}
	outputResults := make([]OutputResult, 0, len(req.Outputs))
	for i, out := range req.Outputs {
		product := products[out.ProductTypeID]
		if err := batch.AddOutput(product.ID, out.Quantity, outputVolumes[i]); err != nil {
			return nil, err
		}
		if err := product.IncreaseStock(out.Quantity); err != nil {
			return nil, err
		}
		outputResults = append(outputResults, OutputResult{
			ProductTypeID:  product.ID,
			ProductName:    product.Name,
			Quantity:       out.Quantity,
			VolumeProduced: outputVolumes[i],
			NewStockCount:  product.StockCount,
		})
	}
	if err := batch.RecordWaste(waste); err != nil {
		return nil, err
	}

	if err := repos.BatchRepo().Save(ctx, batch); err != nil {
		return nil, err
	}

	for i, alloc := range req.Allocations {
		log := logByID[alloc.LogID]
		// Lineage only attaches when this run finished the whole batch of logs.
		if log.Status == timber.LogStatusConsumed {
			if err := log.AssignBatch(batch.ID); err != nil {
				return nil, err
			}
		}
		if err := repos.LogRepo().SaveWithLock(ctx, log); err != nil {
			return nil, err
		}
		if err := repos.LedgerRepo().Append(ctx, ledgerEntries[i]); err != nil {
			return nil, err
		}
	}

	for _, out := range req.Outputs {
		if err := repos.ProductTypeRepo().SaveWithLock(ctx, products[out.ProductTypeID]); err != nil {
			return nil, err
		}
	}

	return &ProductionRunResponse{
		BatchID:      batch.ID,
		Date:         batch.Date,
		InputVolume:  inputVolume,
		OutputVolume: outputVolume,
		WasteVolume:  waste,
		Efficiency:   efficiencyPercent(outputVolume, inputVolume),
		ConsumedLogs: consumed,
		Outputs:      outputResults,
	}, nil
}

// lockProducts resolves all referenced product types with row locks and
// reports any missing IDs in one error.
func (s *ProductionService) lockProducts(ctx context.Context, repos TransactionalRepositories, outputs []OutputInput) (map[uuid.UUID]*catalog.ProductType, error) {
	if len(outputs) == 0 {
		return map[uuid.UUID]*catalog.ProductType{}, nil
	}

	productIDs := make([]uuid.UUID, 0, len(outputs))
	for _, out := range outputs {
		productIDs = append(productIDs, out.ProductTypeID)
	}
	products, err := repos.ProductTypeRepo().FindByIDsForUpdate(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uuid.UUID]*catalog.ProductType, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}
	if missing := missingIDs(productIDs, func(id uuid.UUID) bool { _, ok := productByID[id]; return ok }); len(missing) > 0 {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product types not found: %s", strings.Join(missing, ", ")))
	}
	return productByID, nil
}

// validateRequest performs the structural checks that need no store access
func (s *ProductionService) validateRequest(req ProductionRunRequest) error {
	if req.Date.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Production date is required")
	}
	if len(req.Allocations) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "At least one log allocation is required")
	}

	seenLogs := make(map[uuid.UUID]struct{}, len(req.Allocations))
	for _, alloc := range req.Allocations {
		if alloc.LogID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Allocation log ID cannot be empty")
		}
		if alloc.QtyUsed <= 0 {
			return shared.NewDomainError("INVALID_INPUT", "Allocation quantity must be positive")
		}
		if _, dup := seenLogs[alloc.LogID]; dup {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Log %s is allocated more than once", alloc.LogID))
		}
		seenLogs[alloc.LogID] = struct{}{}
	}

	seenProducts := make(map[uuid.UUID]struct{}, len(req.Outputs))
	for _, out := range req.Outputs {
		if out.ProductTypeID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Output product type ID cannot be empty")
		}
		if out.Quantity <= 0 {
			return shared.NewDomainError("INVALID_INPUT", "Output quantity must be positive")
		}
		if _, dup := seenProducts[out.ProductTypeID]; dup {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Product type %s appears more than once", out.ProductTypeID))
		}
		seenProducts[out.ProductTypeID] = struct{}{}
	}

	return nil
}

// checkIdempotency rejects a request whose key was already processed
func (s *ProductionService) checkIdempotency(ctx context.Context, key string) error {
	if s.idempotencyStore == nil || !s.idempotencyCfg.Enabled || key == "" {
		return nil
	}
	processed, err := s.idempotencyStore.IsProcessed(ctx, key)
	if err != nil {
		return shared.NewDomainError("TRANSACTION_FAILURE", fmt.Sprintf("Idempotency check failed: %v", err))
	}
	if processed {
		return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Production run %s was already recorded", key))
	}
	return nil
}

// markProcessed records a successfully committed key. Failures are ignored;
// the worst case is that a replay is rejected by business state instead.
func (s *ProductionService) markProcessed(ctx context.Context, key string) {
	if s.idempotencyStore == nil || !s.idempotencyCfg.Enabled || key == "" {
		return
	}
	_, _ = s.idempotencyStore.MarkProcessed(ctx, key, s.idempotencyCfg.TTL)
}

// AutoAllocate proposes a first-in-first-out draw-down plan covering
// totalNeeded physical logs from current stock. Read-only.
func (s *ProductionService) AutoAllocate(ctx context.Context, totalNeeded int64) (*AutoAllocateResponse, error) {
	logs, err := s.logRepo.FindInStock(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := timber.PlanFIFOAllocation(totalNeeded, logs)
	if err != nil {
		return nil, err
	}
	response := ToAutoAllocateResponse(plan)
	return &response, nil
}

// GetBatch returns a stored batch with derived volume figures
func (s *ProductionService) GetBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBatchResponse(batch)
	return &response, nil
}

// ListBatches returns batches matching the filter, newest first
func (s *ProductionService) ListBatches(ctx context.Context, filter shared.Filter) (*shared.Paginated[BatchResponse], error) {
	batches, err := s.batchRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.batchRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]BatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, ToBatchResponse(&batches[i]))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// missingIDs returns the string form of IDs for which found() is false,
// de-duplicated in request order.
func missingIDs(ids []uuid.UUID, found func(uuid.UUID) bool) []string {
	var missing []string
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if !found(id) {
			missing = append(missing, id.String())
		}
	}
	return missing
}
