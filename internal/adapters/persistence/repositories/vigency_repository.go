package repositories

import (
	"context"
	"time"

	"tentworks-records/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// courseRepository implements CourseRepository interface
type courseRepository struct {
	crudRepository[models.Course]
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{crudRepository[models.Course]{db: db}}
}

// GetByID gets a course with its worker and course type
func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	return r.get(ctx, id, "Worker", "CourseType")
}

// List lists courses; vigency needs the course type preloaded
func (r *courseRepository) List(ctx context.Context, filter RecordFilter) ([]*models.Course, error) {
	var courses []*models.Course
	q := r.db.WithContext(ctx).Preload("Worker").Preload("CourseType")
	if filter.WorkerID != nil {
		q = q.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.TypeID != nil {
		q = q.Where("course_type_id = ?", *filter.TypeID)
	}
	err := q.Order("completion_date DESC").Find(&courses).Error
	return courses, err
}

// UpdateExpiry persists the cached expiry date only
func (r *courseRepository) UpdateExpiry(ctx context.Context, id uint, expiry *time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Course{}).
		Where("id = ?", id).
		Update("expiry_date", expiry).Error
}

// equipmentIssuanceRepository implements EquipmentIssuanceRepository interface
type equipmentIssuanceRepository struct {
	crudRepository[models.EquipmentIssuance]
}

// NewEquipmentIssuanceRepository creates a new equipment issuance repository
func NewEquipmentIssuanceRepository(db *gorm.DB) EquipmentIssuanceRepository {
	return &equipmentIssuanceRepository{crudRepository[models.EquipmentIssuance]{db: db}}
}

// GetByID gets an issuance with its worker and equipment type
func (r *equipmentIssuanceRepository) GetByID(ctx context.Context, id uint) (*models.EquipmentIssuance, error) {
	return r.get(ctx, id, "Worker", "EquipmentType")
}

// List lists issuances with worker and equipment type
func (r *equipmentIssuanceRepository) List(ctx context.Context, filter RecordFilter) ([]*models.EquipmentIssuance, error) {
	var issuances []*models.EquipmentIssuance
	q := r.db.WithContext(ctx).Preload("Worker").Preload("EquipmentType")
	if filter.WorkerID != nil {
		q = q.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.TypeID != nil {
		q = q.Where("equipment_type_id = ?", *filter.TypeID)
	}
	err := q.Order("issue_date DESC").Find(&issuances).Error
	return issuances, err
}

// UpdateExpiry persists the cached expiry date only
func (r *equipmentIssuanceRepository) UpdateExpiry(ctx context.Context, id uint, expiry *time.Time) error {
	return r.db.WithContext(ctx).Model(&models.EquipmentIssuance{}).
		Where("id = ?", id).
		Update("expiry_date", expiry).Error
}

// documentRepository implements DocumentRepository interface
type documentRepository struct {
	crudRepository[models.Document]
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{crudRepository[models.Document]{db: db}}
}

// GetByID gets a document with its worker and document type
func (r *documentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	return r.get(ctx, id, "Worker", "DocumentType")
}

// List lists documents with worker and document type
func (r *documentRepository) List(ctx context.Context, filter RecordFilter) ([]*models.Document, error) {
	var docs []*models.Document
	q := r.db.WithContext(ctx).Preload("Worker").Preload("DocumentType")
	if filter.WorkerID != nil {
		q = q.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.TypeID != nil {
		q = q.Where("document_type_id = ?", *filter.TypeID)
	}
	err := q.Order("uploaded_at DESC").Find(&docs).Error
	return docs, err
}
