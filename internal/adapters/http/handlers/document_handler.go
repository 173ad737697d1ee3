package handlers

import (
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// List lists documents
// @Summary List documents
// @Description List documents with their live vigency, optionally filtered by worker, document type and vigency status
// @Tags Documents
// @Produce json
// @Param worker_id query int false "Worker ID"
// @Param type_id query int false "Document type ID"
// @Param vigency query string false "EXPIRED, NEAR_EXPIRY, VALID, INACTIVE or UNDETERMINED"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	filter, err := recordFilter(c)
	if err != nil {
		return response.BadRequest(c, capitalize(err.Error()))
	}
	status, err := vigencyQuery(c)
	if err != nil {
		return fail(c, err, "Failed to list documents")
	}

	docs, err := h.documentService.List(c.Context(), filter, status)
	if err != nil {
		return fail(c, err, "Failed to list documents")
	}

	return response.Success(c, "Documents retrieved successfully", fiber.Map{
		"documents": docs,
		"total":     len(docs),
	})
}

// GetByID gets a document
// @Summary Get document
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	doc, err := h.documentService.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get document")
	}

	return response.Success(c, "Document retrieved successfully", fiber.Map{
		"document": doc,
	})
}

// Create registers a document
// @Summary Create document
// @Description Register a document; a storage key is generated for the file
// @Tags Documents
// @Accept json
// @Produce json
// @Param body body services.CreateDocumentInput true "Document data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var req services.CreateDocumentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := h.documentService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create document")
	}

	return response.Created(c, "Document created successfully", fiber.Map{
		"document": doc,
	})
}

// Update updates a document
// @Summary Update document
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param body body services.UpdateDocumentInput true "Document data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	var req services.UpdateDocumentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := h.documentService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update document")
	}

	return response.Success(c, "Document updated successfully", fiber.Map{
		"document": doc,
	})
}

// Delete deletes a document
// @Summary Delete document
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	if err := h.documentService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete document")
	}

	return response.Success(c, "Document deleted successfully", nil)
}
