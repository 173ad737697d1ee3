package repositories

import (
	"context"

	"tentworks-records/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// projectRepository implements ProjectRepository interface
type projectRepository struct {
	crudRepository[models.Project]
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{crudRepository[models.Project]{db: db}}
}

// GetByID gets a project by ID
func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return r.get(ctx, id)
}

// ExistsByCode checks if a project code is already registered
func (r *projectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List lists projects with pagination, optionally by status
func (r *projectRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Project, int64, error) {
	var projects []*models.Project
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Project{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&projects).Error
	return projects, total, err
}

// CountByStatus counts projects per status
func (r *projectRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(models.ProjectStatuses))
	for _, s := range models.ProjectStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// activityRepository implements ActivityRepository interface
type activityRepository struct {
	crudRepository[models.Activity]
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{crudRepository[models.Activity]{db: db}}
}

// GetByID gets an activity by ID
func (r *activityRepository) GetByID(ctx context.Context, id uint) (*models.Activity, error) {
	return r.get(ctx, id)
}

// ListByProject lists the activities of a project in schedule order
func (r *activityRepository) ListByProject(ctx context.Context, projectID uint) ([]*models.Activity, error) {
	var activities []*models.Activity
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sort_order ASC, start_date ASC, id ASC").
		Find(&activities).Error
	return activities, err
}

// Delete removes an activity together with its links and detaches its children
func (r *activityRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_id = ? OR target_id = ?", id, id).Delete(&models.ActivityLink{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Activity{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Activity{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// activityLinkRepository implements ActivityLinkRepository interface
type activityLinkRepository struct {
	crudRepository[models.ActivityLink]
}

// NewActivityLinkRepository creates a new activity link repository
func NewActivityLinkRepository(db *gorm.DB) ActivityLinkRepository {
	return &activityLinkRepository{crudRepository[models.ActivityLink]{db: db}}
}

// GetByID gets a link by ID
func (r *activityLinkRepository) GetByID(ctx context.Context, id uint) (*models.ActivityLink, error) {
	return r.get(ctx, id)
}

// ListByProject lists the links of a project
func (r *activityLinkRepository) ListByProject(ctx context.Context, projectID uint) ([]*models.ActivityLink, error) {
	var links []*models.ActivityLink
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id ASC").Find(&links).Error
	return links, err
}

// ExistsPair checks if a link between two activities already exists
func (r *activityLinkRepository) ExistsPair(ctx context.Context, sourceID, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ActivityLink{}).
		Where("source_id = ? AND target_id = ?", sourceID, targetID).
		Count(&count).Error
	return count > 0, err
}
