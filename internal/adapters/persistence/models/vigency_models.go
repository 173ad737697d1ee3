package models

import (
	"time"

	"tentworks-records/internal/core/vigency"

	"gorm.io/gorm"
)

// ============================================================
// Catalogs
// ============================================================

// CourseType represents course_types table (Master)
type CourseType struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name         string         `gorm:"size:150;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	ValidityDays *int           `json:"validity_days"`
	AlertDays    *int           `json:"alert_days"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CourseType) TableName() string {
	return "course_types"
}

// EquipmentType represents equipment_types table (Master, protective equipment)
type EquipmentType struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name            string         `gorm:"size:150;not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	ServiceLifeDays *int           `json:"service_life_days"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (EquipmentType) TableName() string {
	return "equipment_types"
}

// DocumentType represents document_types table (Master)
type DocumentType struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Code            string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name            string         `gorm:"size:150;not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	RequiresVigency bool           `gorm:"default:false" json:"requires_vigency"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DocumentType) TableName() string {
	return "document_types"
}

// ============================================================
// Vigency-tracked records
// ============================================================

// Course represents courses table (training taken by a worker)
type Course struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	WorkerID          uint           `gorm:"not null;index" json:"worker_id"`
	CourseTypeID      uint           `gorm:"not null;index" json:"course_type_id"`
	Provider          string         `gorm:"size:150" json:"provider"`
	CompletionDate    *time.Time     `gorm:"type:date" json:"completion_date"`
	ExpiryDate        *time.Time     `gorm:"type:date;index" json:"expiry_date"`
	CertificateNumber string         `gorm:"size:50" json:"certificate_number"`
	Remark            string         `gorm:"type:text" json:"remark"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Worker     *Worker     `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	CourseType *CourseType `gorm:"foreignKey:CourseTypeID" json:"course_type,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// VigencyInput measures from the completion date using the course type's
// validity and alert windows
func (c *Course) VigencyInput(p vigency.Policy) vigency.Input {
	in := vigency.Input{
		ReferenceDate: c.CompletionDate,
		AlertDays:     p.DefaultCourseAlertDays,
	}
	if c.CourseType != nil {
		in.DurationDays = c.CourseType.ValidityDays
		if c.CourseType.AlertDays != nil {
			in.AlertDays = *c.CourseType.AlertDays
		}
	}
	return in
}

// Equipment issuance status (manual)
const (
	IssuanceActive   = vigency.ManualActive
	IssuanceReturned = "RETURNED"
	IssuanceDamaged  = "DAMAGED"
	IssuanceLost     = "LOST"
)

// IssuanceStatuses lists the accepted issuance statuses
var IssuanceStatuses = []string{IssuanceActive, IssuanceReturned, IssuanceDamaged, IssuanceLost}

// EquipmentIssuance represents equipment_issuances table (protective equipment handed to a worker)
type EquipmentIssuance struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	WorkerID        uint           `gorm:"not null;index" json:"worker_id"`
	EquipmentTypeID uint           `gorm:"not null;index" json:"equipment_type_id"`
	IssueDate       *time.Time     `gorm:"type:date" json:"issue_date"`
	Quantity        int            `gorm:"not null;default:1" json:"quantity"`
	Size            string         `gorm:"size:20" json:"size"`
	Status          string         `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	ExpiryDate      *time.Time     `gorm:"type:date;index" json:"expiry_date"`
	ReturnedAt      *time.Time     `json:"returned_at"`
	Remark          string         `gorm:"type:text" json:"remark"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Worker        *Worker        `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID" json:"equipment_type,omitempty"`
}

func (EquipmentIssuance) TableName() string {
	return "equipment_issuances"
}

// VigencyInput measures service life from the issue date; only ACTIVE
// issuances take part in date math
func (e *EquipmentIssuance) VigencyInput(p vigency.Policy) vigency.Input {
	in := vigency.Input{
		ReferenceDate: e.IssueDate,
		ManualStatus:  e.Status,
		AlertDays:     p.EquipmentAlertDays,
	}
	if in.ManualStatus == "" {
		in.ManualStatus = IssuanceActive
	}
	if e.EquipmentType != nil {
		in.DurationDays = e.EquipmentType.ServiceLifeDays
	}
	return in
}

// Document represents documents table (worker or company documents)
type Document struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	WorkerID       *uint          `gorm:"index" json:"worker_id"`
	DocumentTypeID uint           `gorm:"not null;index" json:"document_type_id"`
	Title          string         `gorm:"size:200;not null" json:"title"`
	StorageKey     string         `gorm:"size:64;uniqueIndex;not null" json:"storage_key"`
	UploadedAt     time.Time      `gorm:"not null" json:"uploaded_at"`
	ValidUntil     *time.Time     `gorm:"type:date;index" json:"valid_until"`
	Remark         string         `gorm:"type:text" json:"remark"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Worker       *Worker       `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	DocumentType *DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// VigencyInput treats valid-until as the expiry itself. Documents whose type
// does not require vigency control carry no reference date.
func (d *Document) VigencyInput(p vigency.Policy) vigency.Input {
	if d.DocumentType == nil || !d.DocumentType.RequiresVigency {
		return vigency.Input{AlertDays: p.DocumentAlertDays}
	}
	zero := 0
	return vigency.Input{
		ReferenceDate: d.ValidUntil,
		DurationDays:  &zero,
		AlertDays:     p.DocumentAlertDays,
	}
}

// ExpiryDate returns the valid-until date when vigency applies
func (d *Document) ExpiryDate() *time.Time {
	if d.DocumentType == nil || !d.DocumentType.RequiresVigency {
		return nil
	}
	return d.ValidUntil
}

// compile-time checks
var (
	_ vigency.Source = (*Course)(nil)
	_ vigency.Source = (*EquipmentIssuance)(nil)
	_ vigency.Source = (*Document)(nil)
)
