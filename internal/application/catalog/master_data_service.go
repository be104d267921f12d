package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sawmill/backend/internal/domain/catalog"
	"github.com/sawmill/backend/internal/domain/shared"
)

// MasterDataService handles the mill's reference data: suppliers, wood types
// and finished-good definitions. Stock counts on product types are owned by
// the production run engine; this service only defines the types.
type MasterDataService struct {
	supplierRepo    catalog.SupplierRepository
	woodTypeRepo    catalog.WoodTypeRepository
	productTypeRepo catalog.ProductTypeRepository
}

// NewMasterDataService creates a new MasterDataService
func NewMasterDataService(
	supplierRepo catalog.SupplierRepository,
	woodTypeRepo catalog.WoodTypeRepository,
	productTypeRepo catalog.ProductTypeRepository,
) *MasterDataService {
	return &MasterDataService{
		supplierRepo:    supplierRepo,
		woodTypeRepo:    woodTypeRepo,
		productTypeRepo: productTypeRepo,
	}
}

// CreateSupplier registers a supplier master record
func (s *MasterDataService) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	if existing, err := s.supplierRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Supplier code %s already exists", req.Code))
	}

	supplier, err := catalog.NewSupplier(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetSupplier retrieves a supplier by ID
func (s *MasterDataService) GetSupplier(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// ListSuppliers returns all suppliers
func (s *MasterDataService) ListSuppliers(ctx context.Context) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses, nil
}

// CreateWoodType registers a wood type master record
func (s *MasterDataService) CreateWoodType(ctx context.Context, req CreateWoodTypeRequest) (*WoodTypeResponse, error) {
	if existing, err := s.woodTypeRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Wood type %s already exists", req.Name))
	}

	woodType, err := catalog.NewWoodType(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.woodTypeRepo.Save(ctx, woodType); err != nil {
		return nil, err
	}

	response := ToWoodTypeResponse(woodType)
	return &response, nil
}

// ListWoodTypes returns all wood types
func (s *MasterDataService) ListWoodTypes(ctx context.Context) ([]WoodTypeResponse, error) {
	woodTypes, err := s.woodTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]WoodTypeResponse, 0, len(woodTypes))
	for i := range woodTypes {
		responses = append(responses, ToWoodTypeResponse(&woodTypes[i]))
	}
	return responses, nil
}

// CreateProductType registers a finished-good definition
func (s *MasterDataService) CreateProductType(ctx context.Context, req CreateProductTypeRequest) (*ProductTypeResponse, error) {
	if existing, err := s.productTypeRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product type %s already exists", req.Name))
	}

	productType, err := catalog.NewProductType(req.Name, req.StandardVolume)
	if err != nil {
		return nil, err
	}
	if err := s.productTypeRepo.Save(ctx, productType); err != nil {
		return nil, err
	}

	response := ToProductTypeResponse(productType)
	return &response, nil
}

// GetProductType retrieves a product type by ID
func (s *MasterDataService) GetProductType(ctx context.Context, id uuid.UUID) (*ProductTypeResponse, error) {
	productType, err := s.productTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductTypeResponse(productType)
	return &response, nil
}

// ListProductTypes returns all product types ordered by name
func (s *MasterDataService) ListProductTypes(ctx context.Context) ([]ProductTypeResponse, error) {
	productTypes, err := s.productTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductTypeResponse, 0, len(productTypes))
	for i := range productTypes {
		responses = append(responses, ToProductTypeResponse(&productTypes[i]))
	}
	return responses, nil
}
