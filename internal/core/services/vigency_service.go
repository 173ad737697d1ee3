package services

import (
	"context"
	"fmt"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"
)

// VigencyService aggregates vigency across courses, equipment and documents
type VigencyService struct {
	courseRepo   repositories.CourseRepository
	issuanceRepo repositories.EquipmentIssuanceRepository
	docRepo      repositories.DocumentRepository
	engine       *vigency.Engine
}

// NewVigencyService creates a new vigency service
func NewVigencyService(
	courseRepo repositories.CourseRepository,
	issuanceRepo repositories.EquipmentIssuanceRepository,
	docRepo repositories.DocumentRepository,
	engine *vigency.Engine,
) *VigencyService {
	return &VigencyService{
		courseRepo:   courseRepo,
		issuanceRepo: issuanceRepo,
		docRepo:      docRepo,
		engine:       engine,
	}
}

// Engine returns the engine the service classifies with
func (s *VigencyService) Engine() *vigency.Engine {
	return s.engine
}

// VigencySummary represents the per-kind status counts
type VigencySummary struct {
	Date  string                                `json:"date"`
	Kinds map[domain.RecordKind]vigency.Summary `json:"kinds"`
	Total vigency.Summary                       `json:"total"`
}

// snapshot holds every vigency-tracked record loaded at once
type snapshot struct {
	courses   []*models.Course
	issuances []*models.EquipmentIssuance
	documents []*models.Document
}

func (s *VigencyService) load(ctx context.Context) (*snapshot, error) {
	var snap snapshot
	var err error

	if snap.courses, err = s.courseRepo.List(ctx, repositories.RecordFilter{}); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if snap.issuances, err = s.issuanceRepo.List(ctx, repositories.RecordFilter{}); err != nil {
		return nil, fmt.Errorf("list equipment issuances: %w", err)
	}
	if snap.documents, err = s.docRepo.List(ctx, repositories.RecordFilter{}); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return &snap, nil
}

// Summary counts records per status for each kind
func (s *VigencyService) Summary(ctx context.Context) (*VigencySummary, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(snap), nil
}

func (s *VigencyService) summarize(snap *snapshot) *VigencySummary {
	today := s.engine.Today()
	p := s.engine.Policy

	kinds := map[domain.RecordKind]vigency.Summary{
		domain.KindCourses:   vigency.Summarize(snap.courses, p, today),
		domain.KindEquipment: vigency.Summarize(snap.issuances, p, today),
		domain.KindDocuments: vigency.Summarize(snap.documents, p, today),
	}

	total := vigency.NewSummary()
	for _, summary := range kinds {
		for status, n := range summary {
			total[status] += n
		}
	}

	return &VigencySummary{
		Date:  today.Format(DateLayout),
		Kinds: kinds,
		Total: total,
	}
}

// VigencyAlerts represents the records that need attention
type VigencyAlerts struct {
	Date      string           `json:"date"`
	Statuses  []vigency.Status `json:"statuses"`
	Courses   []*CourseView    `json:"courses"`
	Equipment []*IssuanceView  `json:"equipment"`
	Documents []*DocumentView  `json:"documents"`
}

// Count returns the number of alerted records
func (a *VigencyAlerts) Count() int {
	return len(a.Courses) + len(a.Equipment) + len(a.Documents)
}

// AlertStatuses are the statuses reported when none is requested
var AlertStatuses = []vigency.Status{vigency.StatusNearExpiry, vigency.StatusExpired}

// Alerts lists records of every kind in the given statuses (near-expiry and expired by default)
func (s *VigencyService) Alerts(ctx context.Context, statuses []vigency.Status) (*VigencyAlerts, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		statuses = AlertStatuses
	}

	alerts := &VigencyAlerts{
		Date:      s.engine.Today().Format(DateLayout),
		Statuses:  statuses,
		Courses:   []*CourseView{},
		Equipment: []*IssuanceView{},
		Documents: []*DocumentView{},
	}
	for _, status := range statuses {
		alerts.Courses = append(alerts.Courses, viewsOf(s.engine, snap.courses, &status)...)
		alerts.Equipment = append(alerts.Equipment, viewsOf(s.engine, snap.issuances, &status)...)
		alerts.Documents = append(alerts.Documents, viewsOf(s.engine, snap.documents, &status)...)
	}
	return alerts, nil
}
