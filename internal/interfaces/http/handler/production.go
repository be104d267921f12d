package handler

import (
	productionapp "github.com/sawmill/backend/internal/application/production"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/interfaces/http/dto"
)

// ProductionHandler handles production run API endpoints
type ProductionHandler struct {
	BaseHandler
	productionService *productionapp.ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(productionService *productionapp.ProductionService) *ProductionHandler {
	return &ProductionHandler{
		productionService: productionService,
	}
}

// RecordRun godoc
// @Summary      Record a production run
// @Description  Atomically consume log stock, record outputs, waste and ledger entries
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        request body productionapp.ProductionRunRequest true "Production run"
// @Success      201 {object} dto.Response{data=productionapp.ProductionRunResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /production/runs [post]
func (h *ProductionHandler) RecordRun(c *gin.Context) {
	var req productionapp.ProductionRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Header takes precedence over the body field
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}

	result, err := h.productionService.RecordProductionRun(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// AutoAllocate godoc
// @Summary      Propose a FIFO allocation plan
// @Description  Computes which logs would cover the requested quantity, oldest first; nothing is mutated
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        request body productionapp.AutoAllocateRequest true "Quantity needed"
// @Success      200 {object} dto.Response{data=productionapp.AutoAllocateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /production/auto-allocate [post]
func (h *ProductionHandler) AutoAllocate(c *gin.Context) {
	var req productionapp.AutoAllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.productionService.AutoAllocate(c.Request.Context(), req.TotalNeeded)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// GetBatch godoc
// @Summary      Get a production batch by ID
// @Tags         production
// @Produce      json
// @Param        id path string true "Batch ID" format(uuid)
// @Success      200 {object} dto.Response{data=productionapp.BatchResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /production/batches/{id} [get]
func (h *ProductionHandler) GetBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	batch, err := h.productionService.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// ListBatches godoc
// @Summary      List production batches
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]productionapp.BatchResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /production/batches [get]
func (h *ProductionHandler) ListBatches(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}

	result, err := h.productionService.ListBatches(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
