package services

import (
	"context"
	"strings"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
)

// ProjectService handles projects and their Gantt schedule
type ProjectService struct {
	projectRepo  repositories.ProjectRepository
	activityRepo repositories.ActivityRepository
	linkRepo     repositories.ActivityLinkRepository
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	activityRepo repositories.ActivityRepository,
	linkRepo repositories.ActivityLinkRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		linkRepo:     linkRepo,
	}
}

// ============================================================
// Projects
// ============================================================

// ProjectInput represents create/update project input
type ProjectInput struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Client      string `json:"client,omitempty"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (in *ProjectInput) apply(project *models.Project) error {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return domain.Invalid("code and name are required")
	}

	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return domain.Invalid("end_date must not precede start_date")
	}

	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.ProjectPlanned
	}
	if !oneOf(status, models.ProjectStatuses) {
		return domain.ErrInvalidStatus
	}

	project.Code = code
	project.Name = name
	project.Client = strings.TrimSpace(in.Client)
	project.Description = in.Description
	project.StartDate = start
	project.EndDate = end
	project.Status = status
	return nil
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, input *ProjectInput) (*models.Project, error) {
	project := &models.Project{}
	if err := input.apply(project); err != nil {
		return nil, err
	}

	exists, err := s.projectRepo.ExistsByCode(ctx, project.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, translate(err, domain.ErrProjectNotFound)
	}
	return project, nil
}

// GetByID gets a project by ID
func (s *ProjectService) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrProjectNotFound)
	}
	return project, nil
}

// List lists projects, optionally by status
func (s *ProjectService) List(ctx context.Context, status string, offset, limit int) ([]*models.Project, int64, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !oneOf(status, models.ProjectStatuses) {
		return nil, 0, domain.ErrInvalidStatus
	}
	return s.projectRepo.List(ctx, status, offset, limit)
}

// Update replaces the fields of a project
func (s *ProjectService) Update(ctx context.Context, id uint, input *ProjectInput) (*models.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldCode := project.Code
	if err := input.apply(project); err != nil {
		return nil, err
	}
	if project.Code != oldCode {
		exists, err := s.projectRepo.ExistsByCode(ctx, project.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEntry
		}
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, translate(err, domain.ErrProjectNotFound)
	}
	return project, nil
}

// Delete deletes a project
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return translate(s.projectRepo.Delete(ctx, id), domain.ErrProjectNotFound)
}

// ============================================================
// Activities (Gantt tasks)
// ============================================================

// ActivityInput represents create/update activity input
type ActivityInput struct {
	ParentID     *uint   `json:"parent_id,omitempty"`
	Name         string  `json:"name"`
	StartDate    string  `json:"start_date"`
	DurationDays int     `json:"duration_days"`
	Progress     float64 `json:"progress"`
	SortOrder    int     `json:"sort_order"`
}

// ActivityView is an activity with its derived end date
type ActivityView struct {
	*models.Activity
	EndDate string `json:"end_date"`
}

func activityView(a *models.Activity) *ActivityView {
	return &ActivityView{Activity: a, EndDate: a.EndDate().Format(DateLayout)}
}

func (s *ProjectService) applyActivity(ctx context.Context, activity *models.Activity, in *ActivityInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Invalid("name is required")
	}
	start, err := requireDate("start_date", in.StartDate)
	if err != nil {
		return err
	}
	if in.DurationDays < 0 {
		return domain.Invalid("duration_days must not be negative")
	}
	if in.Progress < 0 || in.Progress > 1 {
		return domain.Invalid("progress must be between 0 and 1")
	}

	if in.ParentID != nil {
		if activity.ID != 0 && *in.ParentID == activity.ID {
			return domain.Invalid("an activity cannot be its own parent")
		}
		parent, err := s.activityRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return translate(err, domain.ErrActivityNotFound)
		}
		if parent.ProjectID != activity.ProjectID {
			return domain.Invalid("parent activity belongs to another project")
		}
	}

	activity.ParentID = in.ParentID
	activity.Name = name
	activity.StartDate = start
	activity.DurationDays = in.DurationDays
	activity.Progress = in.Progress
	activity.SortOrder = in.SortOrder
	return nil
}

// CreateActivity adds an activity to a project
func (s *ProjectService) CreateActivity(ctx context.Context, projectID uint, input *ActivityInput) (*ActivityView, error) {
	if _, err := s.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	activity := &models.Activity{ProjectID: projectID}
	if err := s.applyActivity(ctx, activity, input); err != nil {
		return nil, err
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activityView(activity), nil
}

// UpdateActivity replaces the fields of an activity
func (s *ProjectService) UpdateActivity(ctx context.Context, projectID, id uint, input *ActivityInput) (*ActivityView, error) {
	activity, err := s.projectActivity(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyActivity(ctx, activity, input); err != nil {
		return nil, err
	}
	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activityView(activity), nil
}

// DeleteActivity removes an activity and its links
func (s *ProjectService) DeleteActivity(ctx context.Context, projectID, id uint) error {
	if _, err := s.projectActivity(ctx, projectID, id); err != nil {
		return err
	}
	return translate(s.activityRepo.Delete(ctx, id), domain.ErrActivityNotFound)
}

func (s *ProjectService) projectActivity(ctx context.Context, projectID, id uint) (*models.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrActivityNotFound)
	}
	if activity.ProjectID != projectID {
		return nil, domain.ErrActivityNotFound
	}
	return activity, nil
}

// ============================================================
// Links
// ============================================================

// LinkInput represents create link input
type LinkInput struct {
	Source uint   `json:"source"`
	Target uint   `json:"target"`
	Type   string `json:"type,omitempty"`
}

// CreateLink adds a dependency between two activities of the same project
func (s *ProjectService) CreateLink(ctx context.Context, projectID uint, input *LinkInput) (*models.ActivityLink, error) {
	linkType := strings.ToUpper(strings.TrimSpace(input.Type))
	if linkType == "" {
		linkType = models.LinkFinishToStart
	}
	if !oneOf(linkType, models.LinkTypes) {
		return nil, domain.Invalid("type must be one of %s", strings.Join(models.LinkTypes, ", "))
	}
	if input.Source == input.Target {
		return nil, domain.Invalid("source and target must differ")
	}

	if _, err := s.projectActivity(ctx, projectID, input.Source); err != nil {
		return nil, err
	}
	if _, err := s.projectActivity(ctx, projectID, input.Target); err != nil {
		return nil, err
	}

	exists, err := s.linkRepo.ExistsPair(ctx, input.Source, input.Target)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	link := &models.ActivityLink{
		ProjectID: projectID,
		SourceID:  input.Source,
		TargetID:  input.Target,
		LinkType:  linkType,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, translate(err, domain.ErrLinkNotFound)
	}
	return link, nil
}

// DeleteLink removes a link of a project
func (s *ProjectService) DeleteLink(ctx context.Context, projectID, id uint) error {
	link, err := s.linkRepo.GetByID(ctx, id)
	if err != nil {
		return translate(err, domain.ErrLinkNotFound)
	}
	if link.ProjectID != projectID {
		return domain.ErrLinkNotFound
	}
	return translate(s.linkRepo.Delete(ctx, id), domain.ErrLinkNotFound)
}

// Gantt represents the schedule of a project
type Gantt struct {
	Data  []*ActivityView        `json:"data"`
	Links []*models.ActivityLink `json:"links"`
}

// Gantt returns the activities and links of a project
func (s *ProjectService) Gantt(ctx context.Context, projectID uint) (*Gantt, error) {
	if _, err := s.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	links, err := s.linkRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	gantt := &Gantt{
		Data:  make([]*ActivityView, 0, len(activities)),
		Links: links,
	}
	if gantt.Links == nil {
		gantt.Links = []*models.ActivityLink{}
	}
	for _, a := range activities {
		gantt.Data = append(gantt.Data, activityView(a))
	}
	return gantt, nil
}

// StatusCounts counts projects per status
func (s *ProjectService) StatusCounts(ctx context.Context) (map[string]int64, error) {
	return s.projectRepo.CountByStatus(ctx)
}
