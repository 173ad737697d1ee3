package services

import (
	"context"

	"tentworks-records/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db             *gorm.DB
	vigencyService *VigencyService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, vigencyService *VigencyService) *DashboardService {
	return &DashboardService{db: db, vigencyService: vigencyService}
}

// DashboardData represents dashboard data
type DashboardData struct {
	// Personnel
	ActiveWorkers   int64 `json:"active_workers"`
	ActiveContracts int64 `json:"active_contracts"`

	// Suppliers & Inventory
	Suppliers         int64 `json:"suppliers"`
	LowStockMaterials int64 `json:"low_stock_materials"`

	// Projects
	ProjectsByStatus map[string]int64 `json:"projects_by_status"`

	// Vigency
	Vigency *VigencySummary `json:"vigency"`
}

// GetDashboard returns dashboard data
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{ProjectsByStatus: make(map[string]int64, len(models.ProjectStatuses))}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Worker{}).Where("is_active = ?", true).Count(&data.ActiveWorkers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Contract{}).Where("is_active = ?", true).Count(&data.ActiveContracts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Supplier{}).Where("is_active = ?", true).Count(&data.Suppliers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Material{}).Where("stock <= min_stock").Count(&data.LowStockMaterials).Error; err != nil {
		return nil, err
	}

	// Projects by status
	var rows []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&models.Project{}).Select("status, COUNT(*) as total").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, status := range models.ProjectStatuses {
		data.ProjectsByStatus[status] = 0
	}
	for _, row := range rows {
		data.ProjectsByStatus[row.Status] = row.Total
	}

	summary, err := s.vigencyService.Summary(ctx)
	if err != nil {
		return nil, err
	}
	data.Vigency = summary

	return data, nil
}
