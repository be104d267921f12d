package timber

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/domain/timber"
)

// LogService handles timber purchase entry and raw-material stock queries
type LogService struct {
	scope      TransactionScope
	logRepo    timber.LogRepository
	ledgerRepo timber.LedgerRepository
}

// NewLogService creates a new LogService
func NewLogService(scope TransactionScope, logRepo timber.LogRepository, ledgerRepo timber.LedgerRepository) *LogService {
	return &LogService{
		scope:      scope,
		logRepo:    logRepo,
		ledgerRepo: ledgerRepo,
	}
}

// CreateLog records a timber purchase: the log row and its opening PURCHASE
// ledger entry are written in one transaction.
func (s *LogService) CreateLog(ctx context.Context, req CreateLogRequest) (*LogResponse, error) {
	log, err := timber.NewLog(req.TagID, req.SupplierID, req.WoodTypeID,
		req.Circumference, req.Length, req.Quantity, req.MarketPrice)
	if err != nil {
		return nil, err
	}

	if existing, err := s.logRepo.FindByTagID(ctx, log.TagID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Log tag %s already exists", log.TagID))
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.LogRepo().Save(ctx, log); err != nil {
			return err
		}
		return repos.LedgerRepo().Append(ctx, timber.NewPurchaseEntry(log))
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, shared.NewDomainError("TRANSACTION_FAILURE", fmt.Sprintf("Purchase entry failed: %v", err))
	}

	response := ToLogResponse(log)
	return &response, nil
}

// PreviewValuation computes the valuation for a prospective purchase without
// persisting anything.
func (s *LogService) PreviewValuation(req ValuationPreviewRequest) (*ValuationPreviewResponse, error) {
	if req.Circumference.Sign() <= 0 || req.Length.Sign() <= 0 || req.Quantity <= 0 || req.MarketPrice.Sign() <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "All valuation inputs must be positive")
	}
	v := timber.Valuate(req.Circumference, req.Length, req.Quantity, req.MarketPrice)
	return &ValuationPreviewResponse{
		Diameter:    v.Diameter,
		RawVolume:   v.RawVolume,
		VolumeFinal: v.VolumeFinal,
		TotalPrice:  v.TotalPrice,
	}, nil
}

// GetByID retrieves a log by ID
func (s *LogService) GetByID(ctx context.Context, id uuid.UUID) (*LogResponse, error) {
	log, err := s.logRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLogResponse(log)
	return &response, nil
}

// GetByTag retrieves a log by its unique tag
func (s *LogService) GetByTag(ctx context.Context, tagID string) (*LogResponse, error) {
	log, err := s.logRepo.FindByTagID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	response := ToLogResponse(log)
	return &response, nil
}

// List returns logs matching the filter with pagination
func (s *LogService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[LogResponse], error) {
	logs, err := s.logRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.logRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]LogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, ToLogResponse(&logs[i]))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// ListInStock returns logs with remaining quantity, oldest purchase first
func (s *LogService) ListInStock(ctx context.Context) ([]LogResponse, error) {
	logs, err := s.logRepo.FindInStock(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]LogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, ToLogResponse(&logs[i]))
	}
	return responses, nil
}

// GetLedger returns the audit ledger entries of one log in insertion order
func (s *LogService) GetLedger(ctx context.Context, logID uuid.UUID) ([]LedgerEntryResponse, error) {
	if _, err := s.logRepo.FindByID(ctx, logID); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.FindByLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	responses := make([]LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToLedgerEntryResponse(&entries[i]))
	}
	return responses, nil
}

// StockSummary returns the raw-material KPI block
func (s *LogService) StockSummary(ctx context.Context) (*StockSummaryResponse, error) {
	totalLogs, err := s.logRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	totalVolume, err := s.logRepo.SumVolume(ctx)
	if err != nil {
		return nil, err
	}
	purchaseValue, err := s.logRepo.SumPurchaseValue(ctx)
	if err != nil {
		return nil, err
	}
	remainingValue, err := s.logRepo.SumRemainingValue(ctx)
	if err != nil {
		return nil, err
	}

	return &StockSummaryResponse{
		TotalLogs:          totalLogs,
		TotalVolume:        totalVolume,
		TotalPurchaseValue: purchaseValue,
		RemainingValue:     remainingValue,
	}, nil
}
