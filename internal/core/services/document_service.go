package services

import (
	"context"
	"strings"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"

	"github.com/google/uuid"
)

// DocumentView is a document with its live vigency
type DocumentView = RecordView[*models.Document]

// DocumentService handles worker and company documents
type DocumentService struct {
	docRepo    repositories.DocumentRepository
	workerRepo repositories.WorkerReader
	typeRepo   repositories.CatalogReader[models.DocumentType]
	engine     *vigency.Engine
	newKey     func() string
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	workerRepo repositories.WorkerReader,
	typeRepo repositories.CatalogReader[models.DocumentType],
	engine *vigency.Engine,
) *DocumentService {
	return &DocumentService{
		docRepo:    docRepo,
		workerRepo: workerRepo,
		typeRepo:   typeRepo,
		engine:     engine,
		newKey:     uuid.NewString,
	}
}

// CreateDocumentInput represents create document input
type CreateDocumentInput struct {
	WorkerID       *uint  `json:"worker_id,omitempty"`
	DocumentTypeID uint   `json:"document_type_id"`
	Title          string `json:"title"`
	ValidUntil     string `json:"valid_until,omitempty"`
	Remark         string `json:"remark,omitempty"`
}

// Create registers a document under a fresh storage key
func (s *DocumentService) Create(ctx context.Context, input *CreateDocumentInput) (*DocumentView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Invalid("title is required")
	}
	validUntil, err := parseDate("valid_until", input.ValidUntil)
	if err != nil {
		return nil, err
	}

	if input.WorkerID != nil {
		ok, err := s.workerRepo.Exists(ctx, *input.WorkerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrWorkerNotFound
		}
	}
	docType, err := s.typeRepo.GetByID(ctx, input.DocumentTypeID)
	if err != nil {
		return nil, translate(err, domain.ErrDocumentTypeNotFound)
	}
	if docType.RequiresVigency && validUntil == nil {
		return nil, domain.Invalid("valid_until is required for %s", docType.Name)
	}

	doc := &models.Document{
		WorkerID:       input.WorkerID,
		DocumentTypeID: docType.ID,
		Title:          title,
		StorageKey:     s.newKey(),
		UploadedAt:     s.engine.Now(),
		ValidUntil:     validUntil,
		Remark:         input.Remark,
		DocumentType:   docType,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, translate(err, domain.ErrDocumentNotFound)
	}

	return s.view(doc), nil
}

// GetByID gets a document with its vigency
func (s *DocumentService) GetByID(ctx context.Context, id uint) (*DocumentView, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrDocumentNotFound)
	}
	return s.view(doc), nil
}

// List lists documents, optionally only those in the given vigency status
func (s *DocumentService) List(ctx context.Context, filter repositories.RecordFilter, status *vigency.Status) ([]*DocumentView, error) {
	docs, err := s.docRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return viewsOf(s.engine, docs, status), nil
}

// UpdateDocumentInput represents update document input
type UpdateDocumentInput struct {
	DocumentTypeID *uint   `json:"document_type_id,omitempty"`
	Title          *string `json:"title,omitempty"`
	ValidUntil     *string `json:"valid_until,omitempty"`
	Remark         *string `json:"remark,omitempty"`
}

// Update corrects a document. The valid-until date is authoritative, so it
// is stored as given.
func (s *DocumentService) Update(ctx context.Context, id uint, input *UpdateDocumentInput) (*DocumentView, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrDocumentNotFound)
	}

	if input.DocumentTypeID != nil && *input.DocumentTypeID != doc.DocumentTypeID {
		docType, err := s.typeRepo.GetByID(ctx, *input.DocumentTypeID)
		if err != nil {
			return nil, translate(err, domain.ErrDocumentTypeNotFound)
		}
		doc.DocumentTypeID = docType.ID
		doc.DocumentType = docType
	}
	if input.ValidUntil != nil {
		if doc.ValidUntil, err = parseDate("valid_until", *input.ValidUntil); err != nil {
			return nil, err
		}
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.Invalid("title is required")
		}
		doc.Title = title
	}
	if input.Remark != nil {
		doc.Remark = *input.Remark
	}

	if doc.DocumentType != nil && doc.DocumentType.RequiresVigency && doc.ValidUntil == nil {
		return nil, domain.Invalid("valid_until is required for %s", doc.DocumentType.Name)
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, translate(err, domain.ErrDocumentNotFound)
	}

	return s.view(doc), nil
}

// Delete deletes a document
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	return translate(s.docRepo.Delete(ctx, id), domain.ErrDocumentNotFound)
}

func (s *DocumentService) view(doc *models.Document) *DocumentView {
	return viewOf(doc, s.engine.Policy, s.engine.Today())
}
