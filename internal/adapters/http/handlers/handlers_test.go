package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/core/vigency"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body io.Reader) response.Response {
	t.Helper()
	var res response.Response
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestFail(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", domain.ErrWorkerNotFound, fiber.StatusNotFound, "Worker not found"},
		{"invalid input", domain.Invalid("title is required"), fiber.StatusBadRequest, "Invalid input: title is required"},
		{"duplicate", domain.ErrDuplicateEntry, fiber.StatusConflict, "Already exists"},
		{"insufficient stock", domain.ErrInsufficientStock, fiber.StatusConflict, "Insufficient stock"},
		{"unexpected", errors.New("connection refused"), fiber.StatusInternalServerError, "Failed to do it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return fail(c, tt.err, "Failed to do it") })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decode(t, resp.Body)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestParseStatuses(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []vigency.Status
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single", "EXPIRED", []vigency.Status{vigency.StatusExpired}, false},
		{"lowercase and spaces", " near_expiry , expired ", []vigency.Status{vigency.StatusNearExpiry, vigency.StatusExpired}, false},
		{"duplicates collapse", "EXPIRED,expired,,EXPIRED", []vigency.Status{vigency.StatusExpired}, false},
		{"unknown", "EXPIRED,STALE", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStatuses(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryParsing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		filter, err := recordFilter(c)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		status, err := vigencyQuery(c)
		if err != nil {
			return fail(c, err, "Failed")
		}
		return c.JSON(fiber.Map{"worker": filter.WorkerID, "type": filter.TypeID, "status": status})
	})

	tests := []struct {
		query  string
		status int
	}{
		{"/", fiber.StatusOK},
		{"/?worker_id=3&type_id=2&vigency=near_expiry", fiber.StatusOK},
		{"/?worker_id=abc", fiber.StatusBadRequest},
		{"/?type_id=-1", fiber.StatusBadRequest},
		{"/?vigency=soon", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestCourseTypeRequestValidate(t *testing.T) {
	days := func(n int) *int { return &n }

	tests := []struct {
		name string
		req  CourseTypeRequest
		want string
	}{
		{"valid", CourseTypeRequest{CatalogRequest: CatalogRequest{Code: " alturas ", Name: "Alturas"}, ValidityDays: days(365)}, ""},
		{"never expires", CourseTypeRequest{CatalogRequest: CatalogRequest{Code: "IND", Name: "Inducción"}}, ""},
		{"missing name", CourseTypeRequest{CatalogRequest: CatalogRequest{Code: "X"}}, "Code and name are required"},
		{"zero validity", CourseTypeRequest{CatalogRequest: CatalogRequest{Code: "X", Name: "X"}, ValidityDays: days(0)}, "Validity days must be at least 1"},
		{"custom alert", CourseTypeRequest{CatalogRequest: CatalogRequest{Code: "X", Name: "X"}, ValidityDays: days(730), AlertDays: days(45)}, ""},
		{"zero alert", CourseTypeRequest{CatalogRequest: CatalogRequest{Code: "X", Name: "X"}, AlertDays: days(0)}, "Alert days must be at least 1"},
		{"negative alert", CourseTypeRequest{CatalogRequest: CatalogRequest{Code: "X", Name: "X"}, AlertDays: days(-1)}, "Alert days must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.validate())
		})
	}

	req := CourseTypeRequest{CatalogRequest: CatalogRequest{Code: " alturas ", Name: " Alturas "}}
	req.validate()
	assert.Equal(t, "ALTURAS", req.Code)
	assert.Equal(t, "Alturas", req.Name)
	assert.True(t, req.active())
}

// ============================================================
// Export
// ============================================================

// stubRecords serves fixed rows to the export service
type stubRecords[T any] struct {
	rows []*T
}

func (s stubRecords[T]) ListAll(context.Context) ([]*T, error) { return s.rows, nil }
func (s stubRecords[T]) List(context.Context, repositories.RecordFilter) ([]*T, error) {
	return s.rows, nil
}
func (s stubRecords[T]) Create(context.Context, *T) error { return nil }
func (s stubRecords[T]) GetByID(context.Context, uint) (*T, error) {
	return nil, errors.New("not stubbed")
}
func (s stubRecords[T]) Update(context.Context, *T) error                     { return nil }
func (s stubRecords[T]) UpdateExpiry(context.Context, uint, *time.Time) error { return nil }
func (s stubRecords[T]) Delete(context.Context, uint) error                   { return nil }

func newExportApp() *fiber.App {
	engine := &vigency.Engine{
		Policy: vigency.DefaultPolicy(),
		Now:    func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) },
	}
	exportService := services.NewExportService(services.ExportSources{
		Workers:   stubRecords[models.Worker]{rows: []*models.Worker{{DocumentNumber: "1020", FirstName: "Ana", LastName: "Rojas"}}},
		Suppliers: stubRecords[models.Supplier]{},
		Materials: stubRecords[models.Material]{},
		Courses:   stubRecords[models.Course]{},
		Issuances: stubRecords[models.EquipmentIssuance]{},
		Documents: stubRecords[models.Document]{},
	}, engine)

	handler := NewExportHandler(exportService)
	app := fiber.New()
	app.Get("/exports/:kind/fields", handler.Fields)
	app.Get("/exports/:kind", handler.Export)
	return app
}

func TestExportHandler(t *testing.T) {
	app := newExportApp()

	t.Run("json projection", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/exports/workers?format=json&fields=Full%20Name,Document%20Number", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Data services.ExportTable `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, []string{"Full Name", "Document Number"}, body.Data.Columns)
		assert.Equal(t, [][]any{{"Ana Rojas", "1020"}}, body.Data.Rows)
	})

	t.Run("xlsx by default", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/exports/workers", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="workers-`)

		workbook, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "PK", string(workbook[:2]))
	})

	t.Run("unsupported format", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/exports/workers?format=csv", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown kind", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/exports/payroll", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/exports/payroll/fields", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("fields", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/exports/courses/fields", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decode(t, resp.Body)
		data, ok := body.Data.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, data["fields"], "Vigency")
	})
}
