package services

import (
	"context"
	"strings"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/export"
	"tentworks-records/internal/core/vigency"
)

// table is one exportable record type behind its label registry
type table interface {
	labels() []string
	rows(ctx context.Context, labels []string) ([][]any, error)
}

type registryTable[T any] struct {
	registry *export.Registry[T]
	load     func(ctx context.Context) ([]T, error)
}

func (t *registryTable[T]) labels() []string {
	return t.registry.Labels()
}

func (t *registryTable[T]) rows(ctx context.Context, labels []string) ([][]any, error) {
	recs, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	return t.registry.Rows(labels, recs), nil
}

// ExportService projects records onto user-selected columns
type ExportService struct {
	tables map[domain.ExportKind]table
}

// ExportSources are the record loaders behind each export kind
type ExportSources struct {
	Workers   repositories.Lister[models.Worker]
	Suppliers repositories.Lister[models.Supplier]
	Materials repositories.Lister[models.Material]
	Courses   repositories.CourseRepository
	Issuances repositories.EquipmentIssuanceRepository
	Documents repositories.DocumentRepository
}

// NewExportService creates a new export service
func NewExportService(src ExportSources, engine *vigency.Engine) *ExportService {
	s := &ExportService{}
	all := repositories.RecordFilter{}

	s.tables = map[domain.ExportKind]table{
		domain.ExportWorkers: &registryTable[*models.Worker]{
			registry: workerColumns(),
			load:     src.Workers.ListAll,
		},
		domain.ExportSuppliers: &registryTable[*models.Supplier]{
			registry: supplierColumns(),
			load:     src.Suppliers.ListAll,
		},
		domain.ExportMaterials: &registryTable[*models.Material]{
			registry: materialColumns(),
			load:     src.Materials.ListAll,
		},
		domain.ExportCourses: &registryTable[*models.Course]{
			registry: withVigency(courseColumns(), engine),
			load: func(ctx context.Context) ([]*models.Course, error) {
				return src.Courses.List(ctx, all)
			},
		},
		domain.ExportEquipment: &registryTable[*models.EquipmentIssuance]{
			registry: withVigency(issuanceColumns(), engine),
			load: func(ctx context.Context) ([]*models.EquipmentIssuance, error) {
				return src.Issuances.List(ctx, all)
			},
		},
		domain.ExportDocuments: &registryTable[*models.Document]{
			registry: withVigency(documentColumns(), engine),
			load: func(ctx context.Context) ([]*models.Document, error) {
				return src.Documents.List(ctx, all)
			},
		},
	}
	return s
}

// Fields lists the column labels of an export kind
func (s *ExportService) Fields(kind domain.ExportKind) ([]string, error) {
	t, ok := s.tables[kind]
	if !ok {
		return nil, domain.ErrUnknownExportKind
	}
	return t.labels(), nil
}

// ExportTable represents projected rows ready to be written
type ExportTable struct {
	Kind    domain.ExportKind `json:"kind"`
	Columns []string          `json:"columns"`
	Rows    [][]any           `json:"rows"`
}

// Export projects every record of kind onto labels; no labels means all columns
func (s *ExportService) Export(ctx context.Context, kind domain.ExportKind, labels []string) (*ExportTable, error) {
	t, ok := s.tables[kind]
	if !ok {
		return nil, domain.ErrUnknownExportKind
	}
	if len(labels) == 0 {
		labels = t.labels()
	}

	rows, err := t.rows(ctx, labels)
	if err != nil {
		return nil, err
	}
	return &ExportTable{Kind: kind, Columns: labels, Rows: rows}, nil
}

// ParseFields splits a comma separated label list, dropping blanks
func ParseFields(raw string) []string {
	var labels []string
	for _, part := range strings.Split(raw, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// ============================================================
// Column registries
// ============================================================

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func workerColumns() *export.Registry[*models.Worker] {
	return export.NewRegistry[*models.Worker]().
		Add("Document Number", export.Attr[*models.Worker]("DocumentNumber")).
		Add("First Name", export.Attr[*models.Worker]("FirstName")).
		Add("Last Name", export.Attr[*models.Worker]("LastName")).
		Add("Full Name", export.Func(func(w *models.Worker) any { return w.FullName() })).
		Add("Position", export.Attr[*models.Worker]("Position")).
		Add("Phone", export.Attr[*models.Worker]("Phone")).
		Add("Email", export.Attr[*models.Worker]("Email")).
		Add("Address", export.Attr[*models.Worker]("Address")).
		Add("Birth Date", export.Attr[*models.Worker]("BirthDate")).
		Add("Hire Date", export.Attr[*models.Worker]("HireDate")).
		Add("Active", export.Func(func(w *models.Worker) any { return yesNo(w.IsActive) })).
		Add("Contract Type", export.Func(func(w *models.Worker) any {
			if len(w.Contracts) == 0 {
				return ""
			}
			return w.Contracts[0].ContractType
		})).
		Add("Health Provider", export.Attr[*models.Worker]("Affiliation.HealthProvider")).
		Add("Pension Fund", export.Attr[*models.Worker]("Affiliation.PensionFund")).
		Add("Risk Insurer", export.Attr[*models.Worker]("Affiliation.RiskInsurer")).
		Add("Severance Fund", export.Attr[*models.Worker]("Affiliation.SeveranceFund")).
		Add("Compensation Fund", export.Attr[*models.Worker]("Affiliation.CompensationFund"))
}

func supplierColumns() *export.Registry[*models.Supplier] {
	return export.NewRegistry[*models.Supplier]().
		Add("Tax ID", export.Attr[*models.Supplier]("TaxID")).
		Add("Name", export.Attr[*models.Supplier]("Name")).
		Add("Contact", export.Attr[*models.Supplier]("ContactName")).
		Add("Phone", export.Attr[*models.Supplier]("Phone")).
		Add("Email", export.Attr[*models.Supplier]("Email")).
		Add("Address", export.Attr[*models.Supplier]("Address")).
		Add("Category", export.Attr[*models.Supplier]("Category")).
		Add("Active", export.Func(func(s *models.Supplier) any { return yesNo(s.IsActive) }))
}

func materialColumns() *export.Registry[*models.Material] {
	return export.NewRegistry[*models.Material]().
		Add("Code", export.Attr[*models.Material]("Code")).
		Add("Name", export.Attr[*models.Material]("Name")).
		Add("Unit", export.Attr[*models.Material]("Unit")).
		Add("Stock", export.Attr[*models.Material]("Stock")).
		Add("Min Stock", export.Attr[*models.Material]("MinStock")).
		Add("Unit Cost", export.Attr[*models.Material]("UnitCost")).
		Add("Supplier", export.Attr[*models.Material]("Supplier.Name")).
		Add("Low Stock", export.Func(func(m *models.Material) any { return yesNo(m.IsLowStock()) }))
}

func courseColumns() *export.Registry[*models.Course] {
	return export.NewRegistry[*models.Course]().
		Add("Worker Document", export.Attr[*models.Course]("Worker.DocumentNumber")).
		Add("Worker", export.Func(func(c *models.Course) any { return c.Worker.FullName() })).
		Add("Course", export.Attr[*models.Course]("CourseType.Name")).
		Add("Provider", export.Attr[*models.Course]("Provider")).
		Add("Completion Date", export.Attr[*models.Course]("CompletionDate")).
		Add("Expiry Date", export.Attr[*models.Course]("ExpiryDate")).
		Add("Certificate Number", export.Attr[*models.Course]("CertificateNumber"))
}

func issuanceColumns() *export.Registry[*models.EquipmentIssuance] {
	return export.NewRegistry[*models.EquipmentIssuance]().
		Add("Worker Document", export.Attr[*models.EquipmentIssuance]("Worker.DocumentNumber")).
		Add("Worker", export.Func(func(e *models.EquipmentIssuance) any { return e.Worker.FullName() })).
		Add("Equipment", export.Attr[*models.EquipmentIssuance]("EquipmentType.Name")).
		Add("Issue Date", export.Attr[*models.EquipmentIssuance]("IssueDate")).
		Add("Quantity", export.Attr[*models.EquipmentIssuance]("Quantity")).
		Add("Size", export.Attr[*models.EquipmentIssuance]("Size")).
		Add("Status", export.Attr[*models.EquipmentIssuance]("Status")).
		Add("Expiry Date", export.Attr[*models.EquipmentIssuance]("ExpiryDate")).
		Add("Returned At", export.Attr[*models.EquipmentIssuance]("ReturnedAt"))
}

func documentColumns() *export.Registry[*models.Document] {
	return export.NewRegistry[*models.Document]().
		Add("Title", export.Attr[*models.Document]("Title")).
		Add("Document Type", export.Attr[*models.Document]("DocumentType.Name")).
		Add("Worker Document", export.Attr[*models.Document]("Worker.DocumentNumber")).
		Add("Worker", export.Func(func(d *models.Document) any { return d.Worker.FullName() })).
		Add("Storage Key", export.Attr[*models.Document]("StorageKey")).
		Add("Uploaded At", export.Attr[*models.Document]("UploadedAt")).
		Add("Valid Until", export.Attr[*models.Document]("ValidUntil"))
}

// withVigency appends the live classification columns
func withVigency[S vigency.Source](r *export.Registry[S], engine *vigency.Engine) *export.Registry[S] {
	return r.
		Add("Vigency", export.Func(func(rec S) any {
			res, _ := engine.Evaluate(rec)
			return string(res.Status)
		})).
		Add("Days Remaining", export.Func(func(rec S) any {
			res, err := engine.Evaluate(rec)
			if err != nil || res.ExpiryDate == nil {
				return ""
			}
			return res.DaysRemaining
		}))
}
