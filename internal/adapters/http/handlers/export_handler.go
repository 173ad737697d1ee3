package handlers

import (
	"bytes"
	"fmt"
	"strings"

	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/export"
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles spreadsheet export endpoints
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Fields lists the exportable columns of a kind
// @Summary Export fields
// @Tags Exports
// @Produce json
// @Param kind path string true "workers, courses, equipment, documents, suppliers or materials"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /exports/{kind}/fields [get]
func (h *ExportHandler) Fields(c *fiber.Ctx) error {
	kind := domain.ExportKind(c.Params("kind"))

	fields, err := h.exportService.Fields(kind)
	if err != nil {
		return fail(c, err, "Failed to list export fields")
	}

	return response.Success(c, "Export fields retrieved successfully", fiber.Map{
		"kind":   kind,
		"fields": fields,
	})
}

// Export projects every record of a kind onto the chosen columns
// @Summary Export records
// @Description Rows projected on the requested labels, as an xlsx workbook or json
// @Tags Exports
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param kind path string true "workers, courses, equipment, documents, suppliers or materials"
// @Param fields query string false "Comma separated column labels; all when empty"
// @Param format query string false "xlsx or json" default(xlsx)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /exports/{kind} [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	kind := domain.ExportKind(c.Params("kind"))
	format := strings.ToLower(c.Query("format", "xlsx"))
	if format != "xlsx" && format != "json" {
		return response.BadRequest(c, "Format must be xlsx or json")
	}

	table, err := h.exportService.Export(c.Context(), kind, services.ParseFields(c.Query("fields")))
	if err != nil {
		return fail(c, err, "Failed to export records")
	}

	if format == "json" {
		return response.Success(c, "Records exported successfully", table)
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, string(kind), table.Columns, table.Rows); err != nil {
		return fail(c, err, "Failed to write workbook")
	}

	filename := fmt.Sprintf("%s-%s.xlsx", kind, uuid.NewString()[:8])
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
