package repositories

import (
	"context"
	"time"

	"tentworks-records/internal/adapters/persistence/models"
)

// RecordFilter narrows vigency-tracked record listings
type RecordFilter struct {
	WorkerID *uint
	TypeID   *uint
}

// CatalogReader resolves catalog rows (course, equipment and document types)
type CatalogReader[T any] interface {
	GetByID(ctx context.Context, id uint) (*T, error)
}

// WorkerReader checks worker existence for dependent records
type WorkerReader interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Lister loads every row of a table (exports)
type Lister[T any] interface {
	ListAll(ctx context.Context) ([]*T, error)
}

// CourseRepository defines course repository interface
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filter RecordFilter) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	UpdateExpiry(ctx context.Context, id uint, expiry *time.Time) error
	Delete(ctx context.Context, id uint) error
}

// EquipmentIssuanceRepository defines equipment issuance repository interface
type EquipmentIssuanceRepository interface {
	Create(ctx context.Context, issuance *models.EquipmentIssuance) error
	GetByID(ctx context.Context, id uint) (*models.EquipmentIssuance, error)
	List(ctx context.Context, filter RecordFilter) ([]*models.EquipmentIssuance, error)
	Update(ctx context.Context, issuance *models.EquipmentIssuance) error
	UpdateExpiry(ctx context.Context, id uint, expiry *time.Time) error
	Delete(ctx context.Context, id uint) error
}

// DocumentRepository defines document repository interface
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	List(ctx context.Context, filter RecordFilter) ([]*models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id uint) error
}

// ProjectRepository defines project repository interface
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Project, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
}

// ActivityRepository defines activity (Gantt task) repository interface
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uint) (*models.Activity, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uint) error
}

// ActivityLinkRepository defines activity link repository interface
type ActivityLinkRepository interface {
	Create(ctx context.Context, link *models.ActivityLink) error
	GetByID(ctx context.Context, id uint) (*models.ActivityLink, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.ActivityLink, error)
	ExistsPair(ctx context.Context, sourceID, targetID uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// WorkerStore defines worker repository interface
type WorkerStore interface {
	Create(ctx context.Context, worker *models.Worker) error
	GetByID(ctx context.Context, id uint) (*models.Worker, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ExistsByDocumentNumber(ctx context.Context, documentNumber string) (bool, error)
	List(ctx context.Context, search string, activeOnly bool, offset, limit int) ([]*models.Worker, int64, error)
	Update(ctx context.Context, worker *models.Worker) error
	Delete(ctx context.Context, id uint) error
}

// ContractStore defines contract repository interface
type ContractStore interface {
	Create(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id uint) (*models.Contract, error)
	ListByWorker(ctx context.Context, workerID uint) ([]*models.Contract, error)
	Update(ctx context.Context, contract *models.Contract) error
	Delete(ctx context.Context, id uint) error
}

// AffiliationStore defines affiliation repository interface (one row per worker)
type AffiliationStore interface {
	GetByWorker(ctx context.Context, workerID uint) (*models.Affiliation, error)
	Save(ctx context.Context, affiliation *models.Affiliation) error
	DeleteByWorker(ctx context.Context, workerID uint) error
}

// SupplierStore defines supplier repository interface
type SupplierStore interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uint) (*models.Supplier, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
	List(ctx context.Context, search string, offset, limit int) ([]*models.Supplier, int64, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uint) error
}

// MaterialStore defines material repository interface
type MaterialStore interface {
	Create(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id uint) (*models.Material, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, search string, lowStockOnly bool, offset, limit int) ([]*models.Material, int64, error)
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id uint) error
	ApplyMovement(ctx context.Context, movement *models.MaterialMovement) (*models.Material, error)
	ListMovements(ctx context.Context, materialID uint, offset, limit int) ([]*models.MaterialMovement, int64, error)
}

var (
	_ WorkerStore      = (*WorkerRepository)(nil)
	_ ContractStore    = (*ContractRepository)(nil)
	_ AffiliationStore = (*AffiliationRepository)(nil)
	_ SupplierStore    = (*SupplierRepository)(nil)
	_ MaterialStore    = (*MaterialRepository)(nil)
)
