package audit

import (
	"context"

	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/timber"
	"github.com/shopspring/decimal"
)

// ReconciliationTolerance is the accepted absolute discrepancy, in minor
// currency units, between physical stock value and the ledger sum.
// Pro-rated unit costs accumulate rounding, so exact equality is too strict.
var ReconciliationTolerance = decimal.NewFromInt(100)

// AuditService verifies the double-entry invariant between the gas-tank
// stock state and the append-only value ledger. Read-only and idempotent.
type AuditService struct {
	logRepo         timber.LogRepository
	ledgerRepo      timber.LedgerRepository
	productTypeRepo catalog.ProductTypeRepository
}

// NewAuditService creates a new AuditService
func NewAuditService(
	logRepo timber.LogRepository,
	ledgerRepo timber.LedgerRepository,
	productTypeRepo catalog.ProductTypeRepository,
) *AuditService {
	return &AuditService{
		logRepo:         logRepo,
		ledgerRepo:      ledgerRepo,
		productTypeRepo: productTypeRepo,
	}
}

// Reconcile compares the value physically held in raw stock against the
// running ledger sum and reports whether they agree within tolerance.
func (s *AuditService) Reconcile(ctx context.Context) (*ReconciliationReport, error) {
	physicalValue, err := s.logRepo.SumRemainingValue(ctx)
	if err != nil {
		return nil, err
	}
	ledgerValue, err := s.ledgerRepo.SumAmounts(ctx)
	if err != nil {
		return nil, err
	}

	discrepancy := physicalValue.Sub(ledgerValue)

	return &ReconciliationReport{
		PhysicalValue: physicalValue,
		LedgerValue:   ledgerValue,
		Discrepancy:   discrepancy,
		Tolerance:     ReconciliationTolerance,
		Passed:        discrepancy.Abs().LessThanOrEqual(ReconciliationTolerance),
	}, nil
}

// ProductInventory derives the finished-goods inventory report. Volumes are
// computed from stock counts and standard volumes, never stored.
func (s *AuditService) ProductInventory(ctx context.Context) (*ProductInventoryReport, error) {
	productTypes, err := s.productTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &ProductInventoryReport{
		Products:    make([]ProductInventoryLine, 0, len(productTypes)),
		TotalVolume: decimal.Zero,
	}
	for i := range productTypes {
		pt := &productTypes[i]
		volume := pt.InventoryVolume()
		report.Products = append(report.Products, ProductInventoryLine{
			ProductTypeID:  pt.ID,
			Name:           pt.Name,
			StandardVolume: pt.StandardVolume,
			StockCount:     pt.StockCount,
			TotalVolume:    volume,
		})
		report.TotalStockCount += pt.StockCount
		report.TotalVolume = report.TotalVolume.Add(volume)
	}
	return report, nil
}
