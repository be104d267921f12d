package handler

import (
	"context"
	"net/http"
	"testing"

	catalogapp "github.com/sawmill/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/shared"
	"github.com/sawmill/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSupplierRepository struct {
	suppliers map[uuid.UUID]*catalog.Supplier
}

func newMockSupplierRepository() *mockSupplierRepository {
	return &mockSupplierRepository{suppliers: make(map[uuid.UUID]*catalog.Supplier)}
}

func (m *mockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Supplier, error) {
	if s, ok := m.suppliers[id]; ok {
		return s, nil
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Supplier not found")
}

func (m *mockSupplierRepository) FindByCode(ctx context.Context, code string) (*catalog.Supplier, error) {
	for _, s := range m.suppliers {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Supplier not found")
}

func (m *mockSupplierRepository) FindAll(ctx context.Context) ([]catalog.Supplier, error) {
	var result []catalog.Supplier
	for _, s := range m.suppliers {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSupplierRepository) Save(ctx context.Context, supplier *catalog.Supplier) error {
	m.suppliers[supplier.ID] = supplier
	return nil
}

type mockWoodTypeRepository struct {
	woodTypes map[uuid.UUID]*catalog.WoodType
}

func newMockWoodTypeRepository() *mockWoodTypeRepository {
	return &mockWoodTypeRepository{woodTypes: make(map[uuid.UUID]*catalog.WoodType)}
}

func (m *mockWoodTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.WoodType, error) {
	if w, ok := m.woodTypes[id]; ok {
		return w, nil
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Wood type not found")
}

func (m *mockWoodTypeRepository) FindByName(ctx context.Context, name string) (*catalog.WoodType, error) {
	for _, w := range m.woodTypes {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Wood type not found")
}

func (m *mockWoodTypeRepository) FindAll(ctx context.Context) ([]catalog.WoodType, error) {
	var result []catalog.WoodType
	for _, w := range m.woodTypes {
		result = append(result, *w)
	}
	return result, nil
}

func (m *mockWoodTypeRepository) Save(ctx context.Context, woodType *catalog.WoodType) error {
	m.woodTypes[woodType.ID] = woodType
	return nil
}

func newMasterDataHandler() (*MasterDataHandler, *mockSupplierRepository, *mockProductTypeRepository) {
	supplierRepo := newMockSupplierRepository()
	productRepo := newMockProductTypeRepository()
	svc := catalogapp.NewMasterDataService(supplierRepo, newMockWoodTypeRepository(), productRepo)
	return NewMasterDataHandler(svc), supplierRepo, productRepo
}

func TestMasterDataHandler_CreateSupplier(t *testing.T) {
	t.Run("creates supplier", func(t *testing.T) {
		h, repo, _ := newMasterDataHandler()

		c, respBody := postJSON(t, "/catalog/suppliers", map[string]string{
			"code": "SUP-01",
			"name": "North Valley Timber",
		})
		h.CreateSupplier(c)

		resp := decodeBody(t, respBody.Bytes())
		require.Truef(t, resp.Success, "unexpected error: %+v", resp.Error)
		assert.Len(t, repo.suppliers, 1)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		h, repo, _ := newMasterDataHandler()

		existing, err := catalog.NewSupplier("SUP-02", "Existing")
		require.NoError(t, err)
		repo.suppliers[existing.ID] = existing

		c, respBody := postJSON(t, "/catalog/suppliers", map[string]string{
			"code": "SUP-02",
			"name": "Another",
		})
		h.CreateSupplier(c)

		resp := decodeBody(t, respBody.Bytes())
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		h, _, _ := newMasterDataHandler()

		c, respBody := postJSON(t, "/catalog/suppliers", map[string]string{"code": "SUP-03"})
		h.CreateSupplier(c)

		resp := decodeBody(t, respBody.Bytes())
		assert.False(t, resp.Success)
	})
}

func TestMasterDataHandler_GetSupplier(t *testing.T) {
	h, repo, _ := newMasterDataHandler()

	supplier, err := catalog.NewSupplier("SUP-10", "Hill Station")
	require.NoError(t, err)
	repo.suppliers[supplier.ID] = supplier

	c, w := newTestContext(t)
	c.Params = gin.Params{{Key: "id", Value: supplier.ID.String()}}

	h.GetSupplier(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "Hill Station", data["name"])
}

func TestMasterDataHandler_ListSuppliers(t *testing.T) {
	h, repo, _ := newMasterDataHandler()

	supplier, err := catalog.NewSupplier("SUP-20", "Riverside")
	require.NoError(t, err)
	repo.suppliers[supplier.ID] = supplier

	c, w := newTestContext(t)
	h.ListSuppliers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data.([]interface{}), 1)
}

func TestMasterDataHandler_CreateWoodType(t *testing.T) {
	h, _, _ := newMasterDataHandler()

	c, respBody := postJSON(t, "/catalog/wood-types", map[string]string{"name": "Teak"})
	h.CreateWoodType(c)

	resp := decodeBody(t, respBody.Bytes())
	require.Truef(t, resp.Success, "unexpected error: %+v", resp.Error)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Teak", data["name"])
}

func TestMasterDataHandler_CreateProductType(t *testing.T) {
	t.Run("creates product type", func(t *testing.T) {
		h, _, repo := newMasterDataHandler()

		c, respBody := postJSON(t, "/catalog/product-types", map[string]interface{}{
			"name":            "Plank 2x4",
			"standard_volume": "50",
		})
		h.CreateProductType(c)

		resp := decodeBody(t, respBody.Bytes())
		require.Truef(t, resp.Success, "unexpected error: %+v", resp.Error)
		assert.Len(t, repo.productTypes, 1)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		h, _, repo := newMasterDataHandler()

		existing, err := catalog.NewProductType("Beam", decimal.NewFromInt(80))
		require.NoError(t, err)
		repo.productTypes[existing.ID] = existing

		c, respBody := postJSON(t, "/catalog/product-types", map[string]interface{}{
			"name":            "Beam",
			"standard_volume": "80",
		})
		h.CreateProductType(c)

		resp := decodeBody(t, respBody.Bytes())
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})
}

func TestMasterDataHandler_ListProductTypes(t *testing.T) {
	h, _, repo := newMasterDataHandler()

	pt, err := catalog.NewProductType("Board", decimal.NewFromInt(30))
	require.NoError(t, err)
	repo.productTypes[pt.ID] = pt

	c, w := newTestContext(t)
	h.ListProductTypes(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data.([]interface{}), 1)
}
