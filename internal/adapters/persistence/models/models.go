package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Personnel
// ============================================================

// Worker represents workers table
type Worker struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	DocumentNumber string         `gorm:"size:20;uniqueIndex;not null" json:"document_number"`
	FirstName      string         `gorm:"size:100;not null" json:"first_name"`
	LastName       string         `gorm:"size:100;not null" json:"last_name"`
	Position       string         `gorm:"size:100" json:"position"`
	Phone          string         `gorm:"size:30" json:"phone"`
	Email          string         `gorm:"size:100" json:"email"`
	Address        string         `gorm:"size:200" json:"address"`
	BirthDate      *time.Time     `gorm:"type:date" json:"birth_date"`
	HireDate       *time.Time     `gorm:"type:date" json:"hire_date"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Contracts   []Contract   `gorm:"foreignKey:WorkerID" json:"contracts,omitempty"`
	Affiliation *Affiliation `gorm:"foreignKey:WorkerID" json:"affiliation,omitempty"`
}

func (Worker) TableName() string {
	return "workers"
}

// FullName returns first and last name
func (w *Worker) FullName() string {
	if w == nil {
		return ""
	}
	return w.FirstName + " " + w.LastName
}

// Contract types
const (
	ContractFixedTerm      = "FIXED_TERM"
	ContractIndefinite     = "INDEFINITE"
	ContractWorkOrLabor    = "WORK_OR_LABOR"
	ContractApprenticeship = "APPRENTICESHIP"
)

// ContractTypes lists the accepted contract types
var ContractTypes = []string{ContractFixedTerm, ContractIndefinite, ContractWorkOrLabor, ContractApprenticeship}

// Contract represents contracts table (labor contracts, N:1 with worker)
type Contract struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	WorkerID     uint           `gorm:"not null;index" json:"worker_id"`
	ContractType string         `gorm:"size:20;not null" json:"contract_type"`
	Position     string         `gorm:"size:100" json:"position"`
	StartDate    time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate      *time.Time     `gorm:"type:date" json:"end_date"`
	Salary       float64        `gorm:"type:decimal(15,2);not null" json:"salary"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	Remark       string         `gorm:"type:text" json:"remark"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Worker *Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}

func (Contract) TableName() string {
	return "contracts"
}

// Affiliation represents affiliations table (health, pension and social security, 1:1 with worker)
type Affiliation struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	WorkerID         uint       `gorm:"not null;uniqueIndex" json:"worker_id"`
	HealthProvider   string     `gorm:"size:100" json:"health_provider"`
	PensionFund      string     `gorm:"size:100" json:"pension_fund"`
	RiskInsurer      string     `gorm:"size:100" json:"risk_insurer"`
	SeveranceFund    string     `gorm:"size:100" json:"severance_fund"`
	CompensationFund string     `gorm:"size:100" json:"compensation_fund"`
	AffiliatedAt     *time.Time `gorm:"type:date" json:"affiliated_at"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Affiliation) TableName() string {
	return "affiliations"
}

// ============================================================
// Suppliers & Inventory
// ============================================================

// Supplier represents suppliers table
type Supplier struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TaxID       string         `gorm:"size:30;uniqueIndex;not null" json:"tax_id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	ContactName string         `gorm:"size:100" json:"contact_name"`
	Phone       string         `gorm:"size:30" json:"phone"`
	Email       string         `gorm:"size:100" json:"email"`
	Address     string         `gorm:"size:200" json:"address"`
	Category    string         `gorm:"size:50" json:"category"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// Material represents materials table (raw-material inventory)
type Material struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Code       string         `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name       string         `gorm:"size:150;not null" json:"name"`
	Unit       string         `gorm:"size:20;not null" json:"unit"`
	Stock      float64        `gorm:"type:decimal(15,3);not null;default:0" json:"stock"`
	MinStock   float64        `gorm:"type:decimal(15,3);not null;default:0" json:"min_stock"`
	UnitCost   float64        `gorm:"type:decimal(15,2);not null;default:0" json:"unit_cost"`
	SupplierID *uint          `gorm:"index" json:"supplier_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

func (Material) TableName() string {
	return "materials"
}

// IsLowStock reports whether stock has reached the minimum
func (m *Material) IsLowStock() bool {
	return m.Stock <= m.MinStock
}

// Movement Types
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// ErrInsufficientStock is returned when an OUT movement exceeds the stock on hand
var ErrInsufficientStock = errors.New("insufficient stock")

// Apply moves the stock by movement and records the resulting balance on it.
// An OUT larger than the stock leaves both untouched.
func (m *Material) Apply(movement *MaterialMovement) error {
	switch movement.MovementType {
	case MovementIn:
		m.Stock += movement.Quantity
	case MovementOut:
		if movement.Quantity > m.Stock {
			return ErrInsufficientStock
		}
		m.Stock -= movement.Quantity
	default:
		return fmt.Errorf("unknown movement type %q", movement.MovementType)
	}
	movement.StockAfter = m.Stock
	return nil
}

// MaterialMovement represents material_movements table (stock history)
type MaterialMovement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MaterialID   uint      `gorm:"not null;index" json:"material_id"`
	MovementType string    `gorm:"size:10;not null" json:"movement_type"`
	Quantity     float64   `gorm:"type:decimal(15,3);not null" json:"quantity"`
	StockAfter   float64   `gorm:"type:decimal(15,3);not null" json:"stock_after"`
	ProjectID    *uint     `gorm:"index" json:"project_id"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Material *Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}

func (MaterialMovement) TableName() string {
	return "material_movements"
}

// ============================================================
// Projects & Schedule
// ============================================================

// Project Status
const (
	ProjectPlanned    = "PLANNED"
	ProjectInProgress = "IN_PROGRESS"
	ProjectOnHold     = "ON_HOLD"
	ProjectDone       = "DONE"
	ProjectCancelled  = "CANCELLED"
)

// ProjectStatuses lists the accepted project statuses
var ProjectStatuses = []string{ProjectPlanned, ProjectInProgress, ProjectOnHold, ProjectDone, ProjectCancelled}

// Project represents projects table
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Client      string         `gorm:"size:150" json:"client"`
	Description string         `gorm:"type:text" json:"description"`
	StartDate   *time.Time     `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time     `gorm:"type:date" json:"end_date"`
	Status      string         `gorm:"size:20;not null;default:'PLANNED'" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// Activity represents activities table (Gantt tasks of a project)
type Activity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProjectID    uint      `gorm:"not null;index" json:"project_id"`
	ParentID     *uint     `gorm:"index" json:"parent_id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	StartDate    time.Time `gorm:"type:date;not null" json:"start_date"`
	DurationDays int       `gorm:"not null;default:1" json:"duration_days"`
	Progress     float64   `gorm:"type:decimal(4,3);not null;default:0" json:"progress"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Activity) TableName() string {
	return "activities"
}

// EndDate returns the start date plus the duration
func (a *Activity) EndDate() time.Time {
	return a.StartDate.AddDate(0, 0, a.DurationDays)
}

// Link Types (dependency between two activities)
const (
	LinkFinishToStart  = "FS"
	LinkStartToStart   = "SS"
	LinkFinishToFinish = "FF"
	LinkStartToFinish  = "SF"
)

// LinkTypes lists the accepted link types
var LinkTypes = []string{LinkFinishToStart, LinkStartToStart, LinkFinishToFinish, LinkStartToFinish}

// ActivityLink represents activity_links table
type ActivityLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	SourceID  uint      `gorm:"not null;uniqueIndex:idx_link_pair" json:"source"`
	TargetID  uint      `gorm:"not null;uniqueIndex:idx_link_pair" json:"target"`
	LinkType  string    `gorm:"size:2;not null;default:'FS'" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActivityLink) TableName() string {
	return "activity_links"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Personnel
		&Worker{},
		&Contract{},
		&Affiliation{},
		// Catalogs
		&CourseType{},
		&EquipmentType{},
		&DocumentType{},
		// Vigency-tracked records
		&Course{},
		&EquipmentIssuance{},
		&Document{},
		// Suppliers & Inventory
		&Supplier{},
		&Material{},
		&MaterialMovement{},
		// Projects
		&Project{},
		&Activity{},
		&ActivityLink{},
	)
}
