package services

import (
	"context"
	"errors"
	"strings"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"

	"gorm.io/gorm"
)

// WorkerService handles workers, their contracts and affiliation
type WorkerService struct {
	workerRepo      repositories.WorkerStore
	contractRepo    repositories.ContractStore
	affiliationRepo repositories.AffiliationStore
}

// NewWorkerService creates a new worker service
func NewWorkerService(
	workerRepo repositories.WorkerStore,
	contractRepo repositories.ContractStore,
	affiliationRepo repositories.AffiliationStore,
) *WorkerService {
	return &WorkerService{
		workerRepo:      workerRepo,
		contractRepo:    contractRepo,
		affiliationRepo: affiliationRepo,
	}
}

// ============================================================
// Workers
// ============================================================

// WorkerInput represents create/update worker input
type WorkerInput struct {
	DocumentNumber string `json:"document_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Position       string `json:"position,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address,omitempty"`
	BirthDate      string `json:"birth_date,omitempty"`
	HireDate       string `json:"hire_date,omitempty"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

func (in *WorkerInput) apply(worker *models.Worker) error {
	docNumber := strings.TrimSpace(in.DocumentNumber)
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if docNumber == "" || first == "" || last == "" {
		return domain.Invalid("document_number, first_name and last_name are required")
	}

	birth, err := parseDate("birth_date", in.BirthDate)
	if err != nil {
		return err
	}
	hire, err := parseDate("hire_date", in.HireDate)
	if err != nil {
		return err
	}

	worker.DocumentNumber = docNumber
	worker.FirstName = first
	worker.LastName = last
	worker.Position = strings.TrimSpace(in.Position)
	worker.Phone = strings.TrimSpace(in.Phone)
	worker.Email = strings.TrimSpace(in.Email)
	worker.Address = strings.TrimSpace(in.Address)
	worker.BirthDate = birth
	worker.HireDate = hire
	if in.IsActive != nil {
		worker.IsActive = *in.IsActive
	}
	return nil
}

// Create registers a worker
func (s *WorkerService) Create(ctx context.Context, input *WorkerInput) (*models.Worker, error) {
	worker := &models.Worker{IsActive: true}
	if err := input.apply(worker); err != nil {
		return nil, err
	}

	exists, err := s.workerRepo.ExistsByDocumentNumber(ctx, worker.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	if err := s.workerRepo.Create(ctx, worker); err != nil {
		return nil, translate(err, domain.ErrWorkerNotFound)
	}
	return worker, nil
}

// GetByID gets a worker with contracts and affiliation
func (s *WorkerService) GetByID(ctx context.Context, id uint) (*models.Worker, error) {
	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrWorkerNotFound)
	}
	return worker, nil
}

// List lists workers with pagination
func (s *WorkerService) List(ctx context.Context, search string, activeOnly bool, offset, limit int) ([]*models.Worker, int64, error) {
	return s.workerRepo.List(ctx, strings.TrimSpace(search), activeOnly, offset, limit)
}

// Update replaces the fields of a worker
func (s *WorkerService) Update(ctx context.Context, id uint, input *WorkerInput) (*models.Worker, error) {
	worker, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldNumber := worker.DocumentNumber
	if err := input.apply(worker); err != nil {
		return nil, err
	}
	if worker.DocumentNumber != oldNumber {
		exists, err := s.workerRepo.ExistsByDocumentNumber(ctx, worker.DocumentNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEntry
		}
	}

	if err := s.workerRepo.Update(ctx, worker); err != nil {
		return nil, translate(err, domain.ErrWorkerNotFound)
	}
	return worker, nil
}

// Delete deletes a worker
func (s *WorkerService) Delete(ctx context.Context, id uint) error {
	return translate(s.workerRepo.Delete(ctx, id), domain.ErrWorkerNotFound)
}

// ============================================================
// Contracts
// ============================================================

// ContractInput represents create/update contract input
type ContractInput struct {
	ContractType string  `json:"contract_type"`
	Position     string  `json:"position,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date,omitempty"`
	Salary       float64 `json:"salary"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Remark       string  `json:"remark,omitempty"`
}

func (in *ContractInput) apply(contract *models.Contract) error {
	contractType := strings.ToUpper(strings.TrimSpace(in.ContractType))
	if !oneOf(contractType, models.ContractTypes) {
		return domain.Invalid("contract_type must be one of %s", strings.Join(models.ContractTypes, ", "))
	}
	start, err := requireDate("start_date", in.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return err
	}
	if end != nil && end.Before(start) {
		return domain.Invalid("end_date must not precede start_date")
	}
	if in.Salary < 0 {
		return domain.Invalid("salary must not be negative")
	}

	contract.ContractType = contractType
	contract.Position = strings.TrimSpace(in.Position)
	contract.StartDate = start
	contract.EndDate = end
	contract.Salary = in.Salary
	contract.Remark = in.Remark
	if in.IsActive != nil {
		contract.IsActive = *in.IsActive
	}
	return nil
}

// CreateContract adds a contract to a worker
func (s *WorkerService) CreateContract(ctx context.Context, workerID uint, input *ContractInput) (*models.Contract, error) {
	if err := s.checkWorker(ctx, workerID); err != nil {
		return nil, err
	}

	contract := &models.Contract{WorkerID: workerID, IsActive: true}
	if err := input.apply(contract); err != nil {
		return nil, err
	}
	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// ListContracts lists the contracts of a worker
func (s *WorkerService) ListContracts(ctx context.Context, workerID uint) ([]*models.Contract, error) {
	if err := s.checkWorker(ctx, workerID); err != nil {
		return nil, err
	}
	return s.contractRepo.ListByWorker(ctx, workerID)
}

// UpdateContract replaces the fields of a contract
func (s *WorkerService) UpdateContract(ctx context.Context, id uint, input *ContractInput) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrContractNotFound)
	}
	if err := input.apply(contract); err != nil {
		return nil, err
	}
	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return nil, translate(err, domain.ErrContractNotFound)
	}
	return contract, nil
}

// DeleteContract deletes a contract
func (s *WorkerService) DeleteContract(ctx context.Context, id uint) error {
	return translate(s.contractRepo.Delete(ctx, id), domain.ErrContractNotFound)
}

// ============================================================
// Affiliation
// ============================================================

// AffiliationInput represents affiliation upsert input
type AffiliationInput struct {
	HealthProvider   string `json:"health_provider,omitempty"`
	PensionFund      string `json:"pension_fund,omitempty"`
	RiskInsurer      string `json:"risk_insurer,omitempty"`
	SeveranceFund    string `json:"severance_fund,omitempty"`
	CompensationFund string `json:"compensation_fund,omitempty"`
	AffiliatedAt     string `json:"affiliated_at,omitempty"`
}

// GetAffiliation gets the affiliation of a worker
func (s *WorkerService) GetAffiliation(ctx context.Context, workerID uint) (*models.Affiliation, error) {
	affiliation, err := s.affiliationRepo.GetByWorker(ctx, workerID)
	if err != nil {
		return nil, translate(err, domain.ErrAffiliationNotFound)
	}
	return affiliation, nil
}

// SaveAffiliation creates or replaces the single affiliation of a worker
func (s *WorkerService) SaveAffiliation(ctx context.Context, workerID uint, input *AffiliationInput) (*models.Affiliation, error) {
	if err := s.checkWorker(ctx, workerID); err != nil {
		return nil, err
	}
	affiliatedAt, err := parseDate("affiliated_at", input.AffiliatedAt)
	if err != nil {
		return nil, err
	}

	affiliation, err := s.affiliationRepo.GetByWorker(ctx, workerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		affiliation = &models.Affiliation{WorkerID: workerID}
	}

	affiliation.HealthProvider = strings.TrimSpace(input.HealthProvider)
	affiliation.PensionFund = strings.TrimSpace(input.PensionFund)
	affiliation.RiskInsurer = strings.TrimSpace(input.RiskInsurer)
	affiliation.SeveranceFund = strings.TrimSpace(input.SeveranceFund)
	affiliation.CompensationFund = strings.TrimSpace(input.CompensationFund)
	affiliation.AffiliatedAt = affiliatedAt

	if err := s.affiliationRepo.Save(ctx, affiliation); err != nil {
		return nil, err
	}
	return affiliation, nil
}

// DeleteAffiliation removes the affiliation of a worker
func (s *WorkerService) DeleteAffiliation(ctx context.Context, workerID uint) error {
	return translate(s.affiliationRepo.DeleteByWorker(ctx, workerID), domain.ErrAffiliationNotFound)
}

func (s *WorkerService) checkWorker(ctx context.Context, workerID uint) error {
	ok, err := s.workerRepo.Exists(ctx, workerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrWorkerNotFound
	}
	return nil
}
