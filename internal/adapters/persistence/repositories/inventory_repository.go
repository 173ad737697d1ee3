package repositories

import (
	"context"

	"tentworks-records/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SupplierRepository handles supplier data access
type SupplierRepository struct {
	crudRepository[models.Supplier]
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{crudRepository[models.Supplier]{db: db}}
}

// GetByID gets a supplier by ID
func (r *SupplierRepository) GetByID(ctx context.Context, id uint) (*models.Supplier, error) {
	return r.get(ctx, id)
}

// ExistsByTaxID checks if a tax id is already registered
func (r *SupplierRepository) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Supplier{}).Where("tax_id = ?", taxID).Count(&count).Error
	return count > 0, err
}

// List lists suppliers with pagination
func (r *SupplierRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.Supplier, int64, error) {
	var suppliers []*models.Supplier
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Supplier{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR tax_id LIKE ? OR category LIKE ?", like, like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&suppliers).Error
	return suppliers, total, err
}

// ListAll lists every supplier (for exports)
func (r *SupplierRepository) ListAll(ctx context.Context) ([]*models.Supplier, error) {
	var suppliers []*models.Supplier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

// MaterialRepository handles material data access
type MaterialRepository struct {
	crudRepository[models.Material]
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{crudRepository[models.Material]{db: db}}
}

// GetByID gets a material with its supplier
func (r *MaterialRepository) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	return r.get(ctx, id, "Supplier")
}

// ExistsByCode checks if a material code is already registered
func (r *MaterialRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Material{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists materials with pagination
func (r *MaterialRepository) List(ctx context.Context, search string, lowStockOnly bool, offset, limit int) ([]*models.Material, int64, error) {
	var materials []*models.Material
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Material{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("code LIKE ? OR name LIKE ?", like, like)
	}
	if lowStockOnly {
		q = q.Where("stock <= min_stock")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Supplier").Order("name ASC").Offset(offset).Limit(limit).Find(&materials).Error
	return materials, total, err
}

// ListAll lists every material with supplier (for exports)
func (r *MaterialRepository) ListAll(ctx context.Context) ([]*models.Material, error) {
	var materials []*models.Material
	err := r.db.WithContext(ctx).Preload("Supplier").Order("name ASC").Find(&materials).Error
	return materials, err
}

// CountLowStock counts materials at or below their minimum stock
func (r *MaterialRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Material{}).Where("stock <= min_stock").Count(&count).Error
	return count, err
}

// ApplyMovement records a stock movement and updates the material stock atomically
func (r *MaterialRepository) ApplyMovement(ctx context.Context, movement *models.MaterialMovement) (*models.Material, error) {
	var material models.Material

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&material, movement.MaterialID).Error; err != nil {
			return err
		}

		if err := material.Apply(movement); err != nil {
			return err
		}
		if err := tx.Model(&material).Update("stock", material.Stock).Error; err != nil {
			return err
		}
		return tx.Create(movement).Error
	})
	if err != nil {
		return nil, err
	}

	return &material, nil
}

// ListMovements lists the movements of a material, newest first
func (r *MaterialRepository) ListMovements(ctx context.Context, materialID uint, offset, limit int) ([]*models.MaterialMovement, int64, error) {
	var movements []*models.MaterialMovement
	var total int64

	q := r.db.WithContext(ctx).Model(&models.MaterialMovement{}).Where("material_id = ?", materialID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movements).Error
	return movements, total, err
}
