package services

import (
	"context"
	"strings"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"
)

// IssuanceView is an equipment issuance with its live vigency
type IssuanceView = RecordView[*models.EquipmentIssuance]

// EquipmentService handles protective equipment issued to workers
type EquipmentService struct {
	issuanceRepo repositories.EquipmentIssuanceRepository
	workerRepo   repositories.WorkerReader
	typeRepo     repositories.CatalogReader[models.EquipmentType]
	engine       *vigency.Engine
}

// NewEquipmentService creates a new equipment service
func NewEquipmentService(
	issuanceRepo repositories.EquipmentIssuanceRepository,
	workerRepo repositories.WorkerReader,
	typeRepo repositories.CatalogReader[models.EquipmentType],
	engine *vigency.Engine,
) *EquipmentService {
	return &EquipmentService{
		issuanceRepo: issuanceRepo,
		workerRepo:   workerRepo,
		typeRepo:     typeRepo,
		engine:       engine,
	}
}

// CreateIssuanceInput represents create issuance input
type CreateIssuanceInput struct {
	WorkerID        uint   `json:"worker_id"`
	EquipmentTypeID uint   `json:"equipment_type_id"`
	IssueDate       string `json:"issue_date"`
	Quantity        int    `json:"quantity"`
	Size            string `json:"size,omitempty"`
	Remark          string `json:"remark,omitempty"`
}

// Create issues equipment to a worker; new issuances are always ACTIVE
func (s *EquipmentService) Create(ctx context.Context, input *CreateIssuanceInput) (*IssuanceView, error) {
	issueDate, err := parseDate("issue_date", input.IssueDate)
	if err != nil {
		return nil, err
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 1 {
		return nil, domain.Invalid("quantity must be at least 1")
	}

	ok, err := s.workerRepo.Exists(ctx, input.WorkerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrWorkerNotFound
	}
	equipmentType, err := s.typeRepo.GetByID(ctx, input.EquipmentTypeID)
	if err != nil {
		return nil, translate(err, domain.ErrEquipmentTypeNotFound)
	}

	issuance := &models.EquipmentIssuance{
		WorkerID:        input.WorkerID,
		EquipmentTypeID: input.EquipmentTypeID,
		IssueDate:       issueDate,
		Quantity:        input.Quantity,
		Size:            strings.TrimSpace(input.Size),
		Status:          models.IssuanceActive,
		Remark:          input.Remark,
		EquipmentType:   equipmentType,
	}

	if issuance.ExpiryDate, err = vigency.FillExpiry(nil, issuance.VigencyInput(s.engine.Policy)); err != nil {
		return nil, domain.Invalid("issue date plus service life is out of range")
	}

	if err := s.issuanceRepo.Create(ctx, issuance); err != nil {
		return nil, translate(err, domain.ErrIssuanceNotFound)
	}

	return s.view(issuance), nil
}

// GetByID gets an issuance with its vigency
func (s *EquipmentService) GetByID(ctx context.Context, id uint) (*IssuanceView, error) {
	issuance, err := s.issuanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrIssuanceNotFound)
	}
	return s.view(issuance), nil
}

// List lists issuances, optionally only those in the given vigency status
func (s *EquipmentService) List(ctx context.Context, filter repositories.RecordFilter, status *vigency.Status) ([]*IssuanceView, error) {
	issuances, err := s.issuanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return viewsOf(s.engine, issuances, status), nil
}

// UpdateIssuanceInput represents update issuance input
type UpdateIssuanceInput struct {
	EquipmentTypeID *uint   `json:"equipment_type_id,omitempty"`
	IssueDate       *string `json:"issue_date,omitempty"`
	Quantity        *int    `json:"quantity,omitempty"`
	Size            *string `json:"size,omitempty"`
	Remark          *string `json:"remark,omitempty"`
}

// Update corrects an issuance. Changing the issue date or the equipment type
// blanks the cached expiry so it is derived again.
func (s *EquipmentService) Update(ctx context.Context, id uint, input *UpdateIssuanceInput) (*IssuanceView, error) {
	issuance, err := s.issuanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrIssuanceNotFound)
	}

	inputsChanged := false

	if input.EquipmentTypeID != nil && *input.EquipmentTypeID != issuance.EquipmentTypeID {
		equipmentType, err := s.typeRepo.GetByID(ctx, *input.EquipmentTypeID)
		if err != nil {
			return nil, translate(err, domain.ErrEquipmentTypeNotFound)
		}
		issuance.EquipmentTypeID = equipmentType.ID
		issuance.EquipmentType = equipmentType
		inputsChanged = true
	}
	if input.IssueDate != nil {
		issueDate, err := parseDate("issue_date", *input.IssueDate)
		if err != nil {
			return nil, err
		}
		if !sameDate(issueDate, issuance.IssueDate) {
			issuance.IssueDate = issueDate
			inputsChanged = true
		}
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, domain.Invalid("quantity must be at least 1")
		}
		issuance.Quantity = *input.Quantity
	}
	if input.Size != nil {
		issuance.Size = strings.TrimSpace(*input.Size)
	}
	if input.Remark != nil {
		issuance.Remark = *input.Remark
	}

	if inputsChanged {
		if issuance.ExpiryDate, err = vigency.FillExpiry(nil, issuance.VigencyInput(s.engine.Policy)); err != nil {
			return nil, domain.Invalid("issue date plus service life is out of range")
		}
	}

	if err := s.issuanceRepo.Update(ctx, issuance); err != nil {
		return nil, translate(err, domain.ErrIssuanceNotFound)
	}

	return s.view(issuance), nil
}

// ChangeStatusInput represents change issuance status input
type ChangeStatusInput struct {
	Status string `json:"status"`
	Remark string `json:"remark,omitempty"`
}

// ChangeStatus moves an issuance between ACTIVE, RETURNED, DAMAGED and LOST.
// Leaving ACTIVE stamps the return time; coming back clears it.
func (s *EquipmentService) ChangeStatus(ctx context.Context, id uint, input *ChangeStatusInput) (*IssuanceView, error) {
	status := strings.ToUpper(strings.TrimSpace(input.Status))
	if !oneOf(status, models.IssuanceStatuses) {
		return nil, domain.ErrInvalidStatus
	}

	issuance, err := s.issuanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrIssuanceNotFound)
	}

	switch {
	case status == models.IssuanceActive:
		issuance.ReturnedAt = nil
	case issuance.ReturnedAt == nil:
		now := s.engine.Now()
		issuance.ReturnedAt = &now
	}
	issuance.Status = status
	if input.Remark != "" {
		issuance.Remark = input.Remark
	}

	if err := s.issuanceRepo.Update(ctx, issuance); err != nil {
		return nil, translate(err, domain.ErrIssuanceNotFound)
	}

	return s.view(issuance), nil
}

// Delete deletes an issuance
func (s *EquipmentService) Delete(ctx context.Context, id uint) error {
	return translate(s.issuanceRepo.Delete(ctx, id), domain.ErrIssuanceNotFound)
}

func (s *EquipmentService) view(issuance *models.EquipmentIssuance) *IssuanceView {
	return viewOf(issuance, s.engine.Policy, s.engine.Today())
}
