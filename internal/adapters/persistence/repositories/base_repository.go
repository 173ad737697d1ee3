package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// crudRepository holds the create/get/update/delete shared by every table
type crudRepository[T any] struct {
	db *gorm.DB
}

// Create creates a new record; preloaded relations are not written
func (r *crudRepository[T]) Create(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

// Update saves all fields of a record; preloaded relations are not written
func (r *crudRepository[T]) Update(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
}

// Delete deletes a record by ID (soft delete when the model has DeletedAt)
func (r *crudRepository[T]) Delete(ctx context.Context, id uint) error {
	var zero T
	result := r.db.WithContext(ctx).Delete(&zero, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists checks if a record with ID exists
func (r *crudRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var zero T
	var count int64
	err := r.db.WithContext(ctx).Model(&zero).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// get loads a record by ID with the given relations preloaded
func (r *crudRepository[T]) get(ctx context.Context, id uint, preloads ...string) (*T, error) {
	var rec T
	q := r.db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// CatalogRepository handles master data (course, equipment and document types)
type CatalogRepository[T any] struct {
	crudRepository[T]
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository[T any](db *gorm.DB) *CatalogRepository[T] {
	return &CatalogRepository[T]{crudRepository[T]{db: db}}
}

// GetByID gets a catalog row by ID
func (r *CatalogRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	return r.get(ctx, id)
}

// GetByCode gets a catalog row by code
func (r *CatalogRepository[T]) GetByCode(ctx context.Context, code string) (*T, error) {
	var rec T
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// List lists all active catalog rows
func (r *CatalogRepository[T]) List(ctx context.Context) ([]*T, error) {
	var rows []*T
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&rows).Error
	return rows, err
}

// ListAll lists all catalog rows including inactive
func (r *CatalogRepository[T]) ListAll(ctx context.Context) ([]*T, error) {
	var rows []*T
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}
