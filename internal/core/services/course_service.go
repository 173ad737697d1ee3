package services

import (
	"context"
	"strings"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"
)

// CourseView is a course with its live vigency
type CourseView = RecordView[*models.Course]

// CourseService handles training course records
type CourseService struct {
	courseRepo repositories.CourseRepository
	workerRepo repositories.WorkerReader
	typeRepo   repositories.CatalogReader[models.CourseType]
	engine     *vigency.Engine
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo repositories.CourseRepository,
	workerRepo repositories.WorkerReader,
	typeRepo repositories.CatalogReader[models.CourseType],
	engine *vigency.Engine,
) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		workerRepo: workerRepo,
		typeRepo:   typeRepo,
		engine:     engine,
	}
}

// CreateCourseInput represents create course input
type CreateCourseInput struct {
	WorkerID          uint   `json:"worker_id"`
	CourseTypeID      uint   `json:"course_type_id"`
	Provider          string `json:"provider,omitempty"`
	CompletionDate    string `json:"completion_date"`
	CertificateNumber string `json:"certificate_number,omitempty"`
	Remark            string `json:"remark,omitempty"`
}

// Create registers a course and caches its expiry date
func (s *CourseService) Create(ctx context.Context, input *CreateCourseInput) (*CourseView, error) {
	completion, err := parseDate("completion_date", input.CompletionDate)
	if err != nil {
		return nil, err
	}
	if err := s.checkWorker(ctx, input.WorkerID); err != nil {
		return nil, err
	}
	courseType, err := s.typeRepo.GetByID(ctx, input.CourseTypeID)
	if err != nil {
		return nil, translate(err, domain.ErrCourseTypeNotFound)
	}

	course := &models.Course{
		WorkerID:          input.WorkerID,
		CourseTypeID:      input.CourseTypeID,
		Provider:          strings.TrimSpace(input.Provider),
		CompletionDate:    completion,
		CertificateNumber: strings.TrimSpace(input.CertificateNumber),
		Remark:            input.Remark,
		CourseType:        courseType,
	}

	if course.ExpiryDate, err = vigency.FillExpiry(nil, course.VigencyInput(s.engine.Policy)); err != nil {
		return nil, domain.Invalid("completion date plus validity is out of range")
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, translate(err, domain.ErrCourseNotFound)
	}

	return s.view(course), nil
}

// GetByID gets a course with its vigency
func (s *CourseService) GetByID(ctx context.Context, id uint) (*CourseView, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrCourseNotFound)
	}
	return s.view(course), nil
}

// List lists courses, optionally only those in the given vigency status
func (s *CourseService) List(ctx context.Context, filter repositories.RecordFilter, status *vigency.Status) ([]*CourseView, error) {
	courses, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return viewsOf(s.engine, courses, status), nil
}

// UpdateCourseInput represents update course input
type UpdateCourseInput struct {
	CourseTypeID      *uint   `json:"course_type_id,omitempty"`
	Provider          *string `json:"provider,omitempty"`
	CompletionDate    *string `json:"completion_date,omitempty"`
	CertificateNumber *string `json:"certificate_number,omitempty"`
	Remark            *string `json:"remark,omitempty"`
}

// Update corrects a course. Changing the completion date or the course type
// blanks the cached expiry so it is derived again.
func (s *CourseService) Update(ctx context.Context, id uint, input *UpdateCourseInput) (*CourseView, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrCourseNotFound)
	}

	inputsChanged := false

	if input.CourseTypeID != nil && *input.CourseTypeID != course.CourseTypeID {
		courseType, err := s.typeRepo.GetByID(ctx, *input.CourseTypeID)
		if err != nil {
			return nil, translate(err, domain.ErrCourseTypeNotFound)
		}
		course.CourseTypeID = courseType.ID
		course.CourseType = courseType
		inputsChanged = true
	}
	if input.CompletionDate != nil {
		completion, err := parseDate("completion_date", *input.CompletionDate)
		if err != nil {
			return nil, err
		}
		if !sameDate(completion, course.CompletionDate) {
			course.CompletionDate = completion
			inputsChanged = true
		}
	}
	if input.Provider != nil {
		course.Provider = strings.TrimSpace(*input.Provider)
	}
	if input.CertificateNumber != nil {
		course.CertificateNumber = strings.TrimSpace(*input.CertificateNumber)
	}
	if input.Remark != nil {
		course.Remark = *input.Remark
	}

	if inputsChanged {
		if course.ExpiryDate, err = vigency.FillExpiry(nil, course.VigencyInput(s.engine.Policy)); err != nil {
			return nil, domain.Invalid("completion date plus validity is out of range")
		}
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, translate(err, domain.ErrCourseNotFound)
	}

	return s.view(course), nil
}

// Delete deletes a course
func (s *CourseService) Delete(ctx context.Context, id uint) error {
	return translate(s.courseRepo.Delete(ctx, id), domain.ErrCourseNotFound)
}

func (s *CourseService) checkWorker(ctx context.Context, workerID uint) error {
	ok, err := s.workerRepo.Exists(ctx, workerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrWorkerNotFound
	}
	return nil
}

func (s *CourseService) view(course *models.Course) *CourseView {
	return viewOf(course, s.engine.Policy, s.engine.Today())
}
