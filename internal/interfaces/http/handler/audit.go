package handler

import (
	auditapp "github.com/sawmill/backend/internal/application/audit"
	"github.com/gin-gonic/gin"
)

// AuditHandler handles reconciliation and inventory report endpoints
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// Reconcile godoc
// @Summary      Run a ledger reconciliation
// @Description  Compares physical stock valuation against the summed ledger and reports the discrepancy
// @Tags         audit
// @Produce      json
// @Success      200 {object} dto.Response{data=auditapp.ReconciliationReport}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audit/reconciliation [get]
func (h *AuditHandler) Reconcile(c *gin.Context) {
	report, err := h.auditService.Reconcile(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// ProductInventory godoc
// @Summary      Finished goods inventory report
// @Description  Aggregates finished-good stock counts and derived volume by product type
// @Tags         audit
// @Produce      json
// @Success      200 {object} dto.Response{data=auditapp.ProductInventoryReport}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /audit/inventory [get]
func (h *AuditHandler) ProductInventory(c *gin.Context) {
	report, err := h.auditService.ProductInventory(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
