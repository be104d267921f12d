package handler

import (
	catalogapp "github.com/sawmill/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MasterDataHandler handles supplier, wood type and product type endpoints
type MasterDataHandler struct {
	BaseHandler
	masterDataService *catalogapp.MasterDataService
}

// NewMasterDataHandler creates a new MasterDataHandler
func NewMasterDataHandler(masterDataService *catalogapp.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{
		masterDataService: masterDataService,
	}
}

// CreateSupplier godoc
// @Summary      Create a supplier
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateSupplierRequest true "Supplier"
// @Success      201 {object} dto.Response{data=catalogapp.SupplierResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/suppliers [post]
func (h *MasterDataHandler) CreateSupplier(c *gin.Context) {
	var req catalogapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.masterDataService.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, supplier)
}

// GetSupplier godoc
// @Summary      Get supplier by ID
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Supplier ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.SupplierResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/suppliers/{id} [get]
func (h *MasterDataHandler) GetSupplier(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	supplier, err := h.masterDataService.GetSupplier(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, supplier)
}

// ListSuppliers godoc
// @Summary      List suppliers
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.SupplierResponse}
// @Router       /catalog/suppliers [get]
func (h *MasterDataHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.masterDataService.ListSuppliers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, suppliers)
}

// CreateWoodType godoc
// @Summary      Create a wood type
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateWoodTypeRequest true "Wood type"
// @Success      201 {object} dto.Response{data=catalogapp.WoodTypeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/wood-types [post]
func (h *MasterDataHandler) CreateWoodType(c *gin.Context) {
	var req catalogapp.CreateWoodTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	woodType, err := h.masterDataService.CreateWoodType(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, woodType)
}

// ListWoodTypes godoc
// @Summary      List wood types
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.WoodTypeResponse}
// @Router       /catalog/wood-types [get]
func (h *MasterDataHandler) ListWoodTypes(c *gin.Context) {
	woodTypes, err := h.masterDataService.ListWoodTypes(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, woodTypes)
}

// CreateProductType godoc
// @Summary      Create a product type
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductTypeRequest true "Product type"
// @Success      201 {object} dto.Response{data=catalogapp.ProductTypeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/product-types [post]
func (h *MasterDataHandler) CreateProductType(c *gin.Context) {
	var req catalogapp.CreateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productType, err := h.masterDataService.CreateProductType(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, productType)
}

// GetProductType godoc
// @Summary      Get product type by ID
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product type ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductTypeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/product-types/{id} [get]
func (h *MasterDataHandler) GetProductType(c *gin.Context) {
	productTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product type ID format")
		return
	}

	productType, err := h.masterDataService.GetProductType(c.Request.Context(), productTypeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, productType)
}

// ListProductTypes godoc
// @Summary      List product types
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductTypeResponse}
// @Router       /catalog/product-types [get]
func (h *MasterDataHandler) ListProductTypes(c *gin.Context) {
	productTypes, err := h.masterDataService.ListProductTypes(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, productTypes)
}
