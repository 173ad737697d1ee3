package services

import (
	"context"
	"maps"
	"slices"
	"time"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/vigency"

	"gorm.io/gorm"
)

// fixedToday is the date every service test runs on
var fixedToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func testEngine() *vigency.Engine {
	return &vigency.Engine{
		Policy: vigency.DefaultPolicy(),
		Now:    func() time.Time { return fixedToday.Add(10 * time.Hour) },
	}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func uintPtr(n uint) *uint { return &n }

// memStore keeps rows by id the way the gorm repositories would
type memStore[T any] struct {
	rows   map[uint]*T
	nextID uint
	idOf   func(*T) *uint
	err    error
}

func newMemStore[T any](idOf func(*T) *uint) *memStore[T] {
	return &memStore[T]{rows: map[uint]*T{}, idOf: idOf}
}

func (m *memStore[T]) Create(_ context.Context, row *T) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	if *m.idOf(row) == 0 {
		*m.idOf(row) = m.nextID
	}
	m.rows[*m.idOf(row)] = row
	return nil
}

func (m *memStore[T]) GetByID(_ context.Context, id uint) (*T, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (m *memStore[T]) Update(_ context.Context, row *T) error {
	if m.err != nil {
		return m.err
	}
	id := *m.idOf(row)
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.rows[id] = row
	return nil
}

func (m *memStore[T]) Delete(_ context.Context, id uint) error {
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStore[T]) all(keep func(*T) bool) []*T {
	out := []*T{}
	for _, id := range slices.Sorted(maps.Keys(m.rows)) {
		if keep == nil || keep(m.rows[id]) {
			out = append(out, m.rows[id])
		}
	}
	return out
}

// ============================================================
// Vigency record repositories
// ============================================================

type fakeCourseRepo struct {
	*memStore[models.Course]
	expiryWrites map[uint]*time.Time
	expiryErr    error
}

func newFakeCourseRepo(rows ...*models.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{
		memStore:     newMemStore(func(c *models.Course) *uint { return &c.ID }),
		expiryWrites: map[uint]*time.Time{},
	}
	for _, row := range rows {
		_ = r.Create(context.Background(), row)
	}
	return r
}

func (r *fakeCourseRepo) List(_ context.Context, filter repositories.RecordFilter) ([]*models.Course, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.all(func(c *models.Course) bool {
		return (filter.WorkerID == nil || c.WorkerID == *filter.WorkerID) &&
			(filter.TypeID == nil || c.CourseTypeID == *filter.TypeID)
	}), nil
}

func (r *fakeCourseRepo) UpdateExpiry(_ context.Context, id uint, expiry *time.Time) error {
	if r.expiryErr != nil {
		return r.expiryErr
	}
	r.expiryWrites[id] = expiry
	return nil
}

type fakeIssuanceRepo struct {
	*memStore[models.EquipmentIssuance]
	expiryWrites map[uint]*time.Time
}

func newFakeIssuanceRepo(rows ...*models.EquipmentIssuance) *fakeIssuanceRepo {
	r := &fakeIssuanceRepo{
		memStore:     newMemStore(func(e *models.EquipmentIssuance) *uint { return &e.ID }),
		expiryWrites: map[uint]*time.Time{},
	}
	for _, row := range rows {
		_ = r.Create(context.Background(), row)
	}
	return r
}

func (r *fakeIssuanceRepo) List(_ context.Context, filter repositories.RecordFilter) ([]*models.EquipmentIssuance, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.all(func(e *models.EquipmentIssuance) bool {
		return (filter.WorkerID == nil || e.WorkerID == *filter.WorkerID) &&
			(filter.TypeID == nil || e.EquipmentTypeID == *filter.TypeID)
	}), nil
}

func (r *fakeIssuanceRepo) UpdateExpiry(_ context.Context, id uint, expiry *time.Time) error {
	r.expiryWrites[id] = expiry
	return nil
}

type fakeDocumentRepo struct {
	*memStore[models.Document]
}

func newFakeDocumentRepo(rows ...*models.Document) *fakeDocumentRepo {
	r := &fakeDocumentRepo{memStore: newMemStore(func(d *models.Document) *uint { return &d.ID })}
	for _, row := range rows {
		_ = r.Create(context.Background(), row)
	}
	return r
}

func (r *fakeDocumentRepo) List(_ context.Context, filter repositories.RecordFilter) ([]*models.Document, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.all(func(d *models.Document) bool {
		return (filter.WorkerID == nil || (d.WorkerID != nil && *d.WorkerID == *filter.WorkerID)) &&
			(filter.TypeID == nil || d.DocumentTypeID == *filter.TypeID)
	}), nil
}

// ============================================================
// Lookups
// ============================================================

type fakeWorkers map[uint]bool

func (f fakeWorkers) Exists(_ context.Context, id uint) (bool, error) {
	return f[id], nil
}

type fakeCatalog[T any] map[uint]*T

func (f fakeCatalog[T]) GetByID(_ context.Context, id uint) (*T, error) {
	row, ok := f[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func courseCatalog() fakeCatalog[models.CourseType] {
	return fakeCatalog[models.CourseType]{
		1: {ID: 1, Code: "ALTURAS", Name: "Trabajo seguro en alturas", ValidityDays: intPtr(365)},
		2: {ID: 2, Code: "PRIMEROS-AUX", Name: "Primeros auxilios", ValidityDays: intPtr(730), AlertDays: intPtr(45)},
		3: {ID: 3, Code: "INDUCCION", Name: "Inducción SST"},
	}
}

func equipmentCatalog() fakeCatalog[models.EquipmentType] {
	return fakeCatalog[models.EquipmentType]{
		1: {ID: 1, Code: "ARNES", Name: "Arnés", ServiceLifeDays: intPtr(1825)},
		2: {ID: 2, Code: "GUANTES", Name: "Guantes", ServiceLifeDays: intPtr(90)},
		3: {ID: 3, Code: "GAFAS", Name: "Gafas"},
	}
}

func documentCatalog() fakeCatalog[models.DocumentType] {
	return fakeCatalog[models.DocumentType]{
		1: {ID: 1, Code: "CEDULA", Name: "Documento de identidad"},
		2: {ID: 2, Code: "EXAMEN-MED", Name: "Examen médico ocupacional", RequiresVigency: true},
	}
}
