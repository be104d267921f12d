package handler

import (
	timberapp "github.com/sawmill/backend/internal/application/timber"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/interfaces/http/dto"
)

// LogHandler handles timber log API endpoints
type LogHandler struct {
	BaseHandler
	logService *timberapp.LogService
}

// NewLogHandler creates a new LogHandler
func NewLogHandler(logService *timberapp.LogService) *LogHandler {
	return &LogHandler{
		logService: logService,
	}
}

// LogListRequest represents query parameters for listing logs
type LogListRequest struct {
	dto.ListRequest
	Status     string `form:"status" binding:"omitempty,oneof=IN_STOCK PARTIAL CONSUMED"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	WoodTypeID string `form:"wood_type_id" binding:"omitempty,uuid"`
	HasStock   bool   `form:"has_stock"`
}

// Create godoc
// @Summary      Record a timber purchase
// @Description  Create a new log batch with its valuation and opening ledger entry
// @Tags         timber
// @Accept       json
// @Produce      json
// @Param        request body timberapp.CreateLogRequest true "Purchase entry"
// @Success      201 {object} dto.Response{data=timberapp.LogResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /timber/logs [post]
func (h *LogHandler) Create(c *gin.Context) {
	var req timberapp.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	log, err := h.logService.CreateLog(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, log)
}

// PreviewValuation godoc
// @Summary      Preview a purchase valuation
// @Description  Compute diameter, volume and total price without persisting anything
// @Tags         timber
// @Accept       json
// @Produce      json
// @Param        request body timberapp.ValuationPreviewRequest true "Dimensions and price"
// @Success      200 {object} dto.Response{data=timberapp.ValuationPreviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /timber/valuation/preview [post]
func (h *LogHandler) PreviewValuation(c *gin.Context) {
	var req timberapp.ValuationPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	preview, err := h.logService.PreviewValuation(req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, preview)
}

// List godoc
// @Summary      List log batches
// @Description  Retrieve a paginated list of log batches with optional filtering
// @Tags         timber
// @Produce      json
// @Param        search query string false "Search term (tag ID)"
// @Param        status query string false "Log status" Enums(IN_STOCK, PARTIAL, CONSUMED)
// @Param        supplier_id query string false "Supplier ID" format(uuid)
// @Param        wood_type_id query string false "Wood type ID" format(uuid)
// @Param        has_stock query bool false "Only logs with remaining quantity"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]timberapp.LogResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /timber/logs [get]
func (h *LogHandler) List(c *gin.Context) {
	req := LogListRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  make(map[string]interface{}),
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.SupplierID != "" {
		filter.Filters["supplier_id"] = req.SupplierID
	}
	if req.WoodTypeID != "" {
		filter.Filters["wood_type_id"] = req.WoodTypeID
	}
	if req.HasStock {
		filter.Filters["has_stock"] = true
	}

	result, err := h.logService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get log batch by ID
// @Tags         timber
// @Produce      json
// @Param        id path string true "Log ID" format(uuid)
// @Success      200 {object} dto.Response{data=timberapp.LogResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /timber/logs/{id} [get]
func (h *LogHandler) GetByID(c *gin.Context) {
	logID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid log ID format")
		return
	}

	log, err := h.logService.GetByID(c.Request.Context(), logID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, log)
}

// GetByTag godoc
// @Summary      Get log batch by tag ID
// @Tags         timber
// @Produce      json
// @Param        tag path string true "Physical tag ID"
// @Success      200 {object} dto.Response{data=timberapp.LogResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /timber/logs/tag/{tag} [get]
func (h *LogHandler) GetByTag(c *gin.Context) {
	tagID := c.Param("tag")
	if tagID == "" {
		h.BadRequest(c, "Tag ID is required")
		return
	}

	log, err := h.logService.GetByTag(c.Request.Context(), tagID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, log)
}

// GetLedger godoc
// @Summary      Get the audit ledger of a log batch
// @Description  Returns ledger entries in insertion order
// @Tags         timber
// @Produce      json
// @Param        id path string true "Log ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]timberapp.LedgerEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /timber/logs/{id}/ledger [get]
func (h *LogHandler) GetLedger(c *gin.Context) {
	logID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid log ID format")
		return
	}

	entries, err := h.logService.GetLedger(c.Request.Context(), logID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// ListInStock godoc
// @Summary      List logs with remaining stock
// @Description  Returns allocatable logs ordered oldest purchase first
// @Tags         timber
// @Produce      json
// @Success      200 {object} dto.Response{data=[]timberapp.LogResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /timber/logs/in-stock [get]
func (h *LogHandler) ListInStock(c *gin.Context) {
	logs, err := h.logService.ListInStock(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, logs)
}

// StockSummary godoc
// @Summary      Raw material stock summary
// @Description  Aggregated log count, volume and valuation figures
// @Tags         timber
// @Produce      json
// @Success      200 {object} dto.Response{data=timberapp.StockSummaryResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /timber/summary [get]
func (h *LogHandler) StockSummary(c *gin.Context) {
	summary, err := h.logService.StockSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
