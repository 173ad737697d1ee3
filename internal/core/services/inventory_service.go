package services

import (
	"context"
	"errors"
	"strings"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
)

// InventoryService handles suppliers, materials and stock movements
type InventoryService struct {
	supplierRepo repositories.SupplierStore
	materialRepo repositories.MaterialStore
}

// NewInventoryService creates a new inventory service
func NewInventoryService(supplierRepo repositories.SupplierStore, materialRepo repositories.MaterialStore) *InventoryService {
	return &InventoryService{
		supplierRepo: supplierRepo,
		materialRepo: materialRepo,
	}
}

// ============================================================
// Suppliers
// ============================================================

// SupplierInput represents create/update supplier input
type SupplierInput struct {
	TaxID       string `json:"tax_id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	Category    string `json:"category,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (in *SupplierInput) apply(supplier *models.Supplier) error {
	taxID := strings.TrimSpace(in.TaxID)
	name := strings.TrimSpace(in.Name)
	if taxID == "" || name == "" {
		return domain.Invalid("tax_id and name are required")
	}
	supplier.TaxID = taxID
	supplier.Name = name
	supplier.ContactName = strings.TrimSpace(in.ContactName)
	supplier.Phone = strings.TrimSpace(in.Phone)
	supplier.Email = strings.TrimSpace(in.Email)
	supplier.Address = strings.TrimSpace(in.Address)
	supplier.Category = strings.TrimSpace(in.Category)
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	return nil
}

// CreateSupplier registers a supplier
func (s *InventoryService) CreateSupplier(ctx context.Context, input *SupplierInput) (*models.Supplier, error) {
	supplier := &models.Supplier{IsActive: true}
	if err := input.apply(supplier); err != nil {
		return nil, err
	}

	exists, err := s.supplierRepo.ExistsByTaxID(ctx, supplier.TaxID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, translate(err, domain.ErrSupplierNotFound)
	}
	return supplier, nil
}

// GetSupplier gets a supplier by ID
func (s *InventoryService) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrSupplierNotFound)
	}
	return supplier, nil
}

// ListSuppliers lists suppliers with pagination
func (s *InventoryService) ListSuppliers(ctx context.Context, search string, offset, limit int) ([]*models.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, strings.TrimSpace(search), offset, limit)
}

// UpdateSupplier replaces the fields of a supplier
func (s *InventoryService) UpdateSupplier(ctx context.Context, id uint, input *SupplierInput) (*models.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	oldTaxID := supplier.TaxID
	if err := input.apply(supplier); err != nil {
		return nil, err
	}
	if supplier.TaxID != oldTaxID {
		exists, err := s.supplierRepo.ExistsByTaxID(ctx, supplier.TaxID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEntry
		}
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, translate(err, domain.ErrSupplierNotFound)
	}
	return supplier, nil
}

// DeleteSupplier deletes a supplier
func (s *InventoryService) DeleteSupplier(ctx context.Context, id uint) error {
	return translate(s.supplierRepo.Delete(ctx, id), domain.ErrSupplierNotFound)
}

// ============================================================
// Materials
// ============================================================

// MaterialInput represents create/update material input. Stock is only
// set on creation; afterwards it moves through movements.
type MaterialInput struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Stock      float64 `json:"stock,omitempty"`
	MinStock   float64 `json:"min_stock"`
	UnitCost   float64 `json:"unit_cost"`
	SupplierID *uint   `json:"supplier_id,omitempty"`
}

func (s *InventoryService) applyMaterial(ctx context.Context, material *models.Material, in *MaterialInput) error {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if code == "" || name == "" || unit == "" {
		return domain.Invalid("code, name and unit are required")
	}
	if in.MinStock < 0 || in.UnitCost < 0 {
		return domain.Invalid("min_stock and unit_cost must not be negative")
	}
	if in.SupplierID != nil {
		ok, err := s.supplierRepo.Exists(ctx, *in.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrSupplierNotFound
		}
	}

	material.Code = code
	material.Name = name
	material.Unit = unit
	material.MinStock = in.MinStock
	material.UnitCost = in.UnitCost
	material.SupplierID = in.SupplierID
	return nil
}

// CreateMaterial registers a material with its opening stock
func (s *InventoryService) CreateMaterial(ctx context.Context, input *MaterialInput) (*models.Material, error) {
	if input.Stock < 0 {
		return nil, domain.Invalid("stock must not be negative")
	}
	material := &models.Material{Stock: input.Stock}
	if err := s.applyMaterial(ctx, material, input); err != nil {
		return nil, err
	}

	exists, err := s.materialRepo.ExistsByCode(ctx, material.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, translate(err, domain.ErrMaterialNotFound)
	}
	return material, nil
}

// GetMaterial gets a material by ID
func (s *InventoryService) GetMaterial(ctx context.Context, id uint) (*models.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrMaterialNotFound)
	}
	return material, nil
}

// ListMaterials lists materials with pagination
func (s *InventoryService) ListMaterials(ctx context.Context, search string, lowStockOnly bool, offset, limit int) ([]*models.Material, int64, error) {
	return s.materialRepo.List(ctx, strings.TrimSpace(search), lowStockOnly, offset, limit)
}

// UpdateMaterial replaces the descriptive fields of a material
func (s *InventoryService) UpdateMaterial(ctx context.Context, id uint, input *MaterialInput) (*models.Material, error) {
	material, err := s.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}

	oldCode := material.Code
	if err := s.applyMaterial(ctx, material, input); err != nil {
		return nil, err
	}
	if material.Code != oldCode {
		exists, err := s.materialRepo.ExistsByCode(ctx, material.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEntry
		}
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, translate(err, domain.ErrMaterialNotFound)
	}
	return material, nil
}

// DeleteMaterial deletes a material
func (s *InventoryService) DeleteMaterial(ctx context.Context, id uint) error {
	return translate(s.materialRepo.Delete(ctx, id), domain.ErrMaterialNotFound)
}

// MovementInput represents a stock movement input
type MovementInput struct {
	MovementType string  `json:"movement_type"`
	Quantity     float64 `json:"quantity"`
	ProjectID    *uint   `json:"project_id,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// RegisterMovement applies an IN or OUT movement to a material's stock
func (s *InventoryService) RegisterMovement(ctx context.Context, materialID uint, input *MovementInput) (*models.MaterialMovement, *models.Material, error) {
	movementType := strings.ToUpper(strings.TrimSpace(input.MovementType))
	if movementType != models.MovementIn && movementType != models.MovementOut {
		return nil, nil, domain.Invalid("movement_type must be IN or OUT")
	}
	if input.Quantity <= 0 {
		return nil, nil, domain.Invalid("quantity must be greater than 0")
	}

	movement := &models.MaterialMovement{
		MaterialID:   materialID,
		MovementType: movementType,
		Quantity:     input.Quantity,
		ProjectID:    input.ProjectID,
		Description:  input.Description,
	}

	material, err := s.materialRepo.ApplyMovement(ctx, movement)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientStock) {
			return nil, nil, domain.ErrInsufficientStock
		}
		return nil, nil, translate(err, domain.ErrMaterialNotFound)
	}
	return movement, material, nil
}

// ListMovements lists the stock history of a material
func (s *InventoryService) ListMovements(ctx context.Context, materialID uint, offset, limit int) ([]*models.MaterialMovement, int64, error) {
	if _, err := s.GetMaterial(ctx, materialID); err != nil {
		return nil, 0, err
	}
	return s.materialRepo.ListMovements(ctx, materialID, offset, limit)
}
