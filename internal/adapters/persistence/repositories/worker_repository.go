package repositories

import (
	"context"

	"tentworks-records/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// WorkerRepository handles worker data access
type WorkerRepository struct {
	crudRepository[models.Worker]
}

// NewWorkerRepository creates a new worker repository
func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{crudRepository[models.Worker]{db: db}}
}

// GetByID gets a worker with contracts and affiliation
func (r *WorkerRepository) GetByID(ctx context.Context, id uint) (*models.Worker, error) {
	return r.get(ctx, id, "Contracts", "Affiliation")
}

// ExistsByDocumentNumber checks if a document number is already registered
func (r *WorkerRepository) ExistsByDocumentNumber(ctx context.Context, documentNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Worker{}).
		Where("document_number = ?", documentNumber).
		Count(&count).Error
	return count > 0, err
}

// List lists workers with pagination, optionally searching by name or document number
func (r *WorkerRepository) List(ctx context.Context, search string, activeOnly bool, offset, limit int) ([]*models.Worker, int64, error) {
	var workers []*models.Worker
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Worker{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("document_number LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("last_name ASC, first_name ASC").
		Offset(offset).
		Limit(limit).
		Find(&workers).Error

	return workers, total, err
}

// ListAll lists every worker with affiliation (for exports)
func (r *WorkerRepository) ListAll(ctx context.Context) ([]*models.Worker, error) {
	var workers []*models.Worker
	err := r.db.WithContext(ctx).
		Preload("Affiliation").
		Preload("Contracts", "is_active = ?", true).
		Order("last_name ASC, first_name ASC").
		Find(&workers).Error
	return workers, err
}

// ContractRepository handles contract data access
type ContractRepository struct {
	crudRepository[models.Contract]
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{crudRepository[models.Contract]{db: db}}
}

// GetByID gets a contract by ID
func (r *ContractRepository) GetByID(ctx context.Context, id uint) (*models.Contract, error) {
	return r.get(ctx, id, "Worker")
}

// ListByWorker lists contracts of a worker, newest first
func (r *ContractRepository) ListByWorker(ctx context.Context, workerID uint) ([]*models.Contract, error) {
	var contracts []*models.Contract
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

// AffiliationRepository handles affiliation data access
type AffiliationRepository struct {
	db *gorm.DB
}

// NewAffiliationRepository creates a new affiliation repository
func NewAffiliationRepository(db *gorm.DB) *AffiliationRepository {
	return &AffiliationRepository{db: db}
}

// GetByWorker gets the affiliation of a worker
func (r *AffiliationRepository) GetByWorker(ctx context.Context, workerID uint) (*models.Affiliation, error) {
	var affiliation models.Affiliation
	if err := r.db.WithContext(ctx).Where("worker_id = ?", workerID).First(&affiliation).Error; err != nil {
		return nil, err
	}
	return &affiliation, nil
}

// Save creates or updates the affiliation of a worker
func (r *AffiliationRepository) Save(ctx context.Context, affiliation *models.Affiliation) error {
	return r.db.WithContext(ctx).Save(affiliation).Error
}

// DeleteByWorker removes the affiliation of a worker
func (r *AffiliationRepository) DeleteByWorker(ctx context.Context, workerID uint) error {
	result := r.db.WithContext(ctx).Where("worker_id = ?", workerID).Delete(&models.Affiliation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
