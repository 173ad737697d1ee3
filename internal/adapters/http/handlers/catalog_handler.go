package handlers

import (
	"errors"
	"log"
	"strings"

	"tentworks-records/internal/adapters/persistence/models"
	"tentworks-records/internal/adapters/persistence/repositories"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogHandler handles master data endpoints (course, equipment and document types)
type CatalogHandler struct {
	courseTypeRepo    *repositories.CatalogRepository[models.CourseType]
	equipmentTypeRepo *repositories.CatalogRepository[models.EquipmentType]
	documentTypeRepo  *repositories.CatalogRepository[models.DocumentType]
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	courseTypeRepo *repositories.CatalogRepository[models.CourseType],
	equipmentTypeRepo *repositories.CatalogRepository[models.EquipmentType],
	documentTypeRepo *repositories.CatalogRepository[models.DocumentType],
) *CatalogHandler {
	return &CatalogHandler{
		courseTypeRepo:    courseTypeRepo,
		equipmentTypeRepo: equipmentTypeRepo,
		documentTypeRepo:  documentTypeRepo,
	}
}

// listCatalog answers ?all=true with inactive rows included
func listCatalog[T any](c *fiber.Ctx, repo *repositories.CatalogRepository[T], key, label string) error {
	var rows []*T
	var err error

	if c.Query("all") == "true" {
		rows, err = repo.ListAll(c.Context())
	} else {
		rows, err = repo.List(c.Context())
	}

	if err != nil {
		return catalogFail(c, err, "Failed to list "+label+"s")
	}

	return response.Success(c, capitalize(label)+"s retrieved successfully", fiber.Map{
		key: rows,
	})
}

func getCatalog[T any](c *fiber.Ctx, repo *repositories.CatalogRepository[T], key, label string) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	row, err := repo.GetByID(c.Context(), id)
	if err != nil {
		return catalogFail(c, err, "Failed to get "+label)
	}

	return response.Success(c, capitalize(label)+" retrieved successfully", fiber.Map{
		key: row,
	})
}

func deleteCatalog[T any](c *fiber.Ctx, repo *repositories.CatalogRepository[T], label string) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := repo.Delete(c.Context(), id); err != nil {
		return catalogFail(c, err, "Failed to delete "+label)
	}

	return response.Success(c, capitalize(label)+" deleted successfully", nil)
}

// catalogFail maps repository errors; catalogs skip the service layer
func catalogFail(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NotFound(c, "Catalog entry not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return response.Conflict(c, "Code already exists")
	}

	log.Printf("❌ %s: %v", fallback, err)
	return response.InternalServerError(c, fallback)
}

// CatalogRequest holds the fields shared by every catalog entry
type CatalogRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r *CatalogRequest) validate() string {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Name = strings.TrimSpace(r.Name)
	if r.Code == "" || r.Name == "" {
		return "Code and name are required"
	}
	return ""
}

func (r *CatalogRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}

func positiveDays(v *int) bool {
	return v == nil || *v >= 1
}

// ============================================================
// Course Type
// ============================================================

// CourseTypeRequest represents create/update course type request
type CourseTypeRequest struct {
	CatalogRequest
	ValidityDays *int `json:"validity_days"`
	AlertDays    *int `json:"alert_days"`
}

func (r *CourseTypeRequest) validate() string {
	if msg := r.CatalogRequest.validate(); msg != "" {
		return msg
	}
	if !positiveDays(r.ValidityDays) {
		return "Validity days must be at least 1"
	}
	if !positiveDays(r.AlertDays) {
		return "Alert days must be at least 1"
	}
	return ""
}

// ListCourseTypes lists course types
// @Summary List course types
// @Tags Catalogs
// @Produce json
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /catalogs/course-types [get]
func (h *CatalogHandler) ListCourseTypes(c *fiber.Ctx) error {
	return listCatalog(c, h.courseTypeRepo, "course_types", "course type")
}

// GetCourseType gets a course type by ID
// @Summary Get course type
// @Tags Catalogs
// @Produce json
// @Param id path int true "Course Type ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/course-types/{id} [get]
func (h *CatalogHandler) GetCourseType(c *fiber.Ctx) error {
	return getCatalog(c, h.courseTypeRepo, "course_type", "course type")
}

// CreateCourseType creates a new course type
// @Summary Create course type
// @Description Create a course type; validity_days left empty means courses of this type never expire
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param body body CourseTypeRequest true "Course type data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /catalogs/course-types [post]
func (h *CatalogHandler) CreateCourseType(c *fiber.Ctx) error {
	var req CourseTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	courseType := &models.CourseType{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		ValidityDays: req.ValidityDays,
		AlertDays:    req.AlertDays,
		IsActive:     req.active(),
	}

	if err := h.courseTypeRepo.Create(c.Context(), courseType); err != nil {
		return catalogFail(c, err, "Failed to create course type")
	}

	return response.Created(c, "Course type created successfully", fiber.Map{
		"course_type": courseType,
	})
}

// UpdateCourseType updates a course type
// @Summary Update course type
// @Description Replace a course type; stored course expiry dates are not recomputed
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param id path int true "Course Type ID"
// @Param body body CourseTypeRequest true "Course type data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/course-types/{id} [put]
func (h *CatalogHandler) UpdateCourseType(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	courseType, err := h.courseTypeRepo.GetByID(c.Context(), id)
	if err != nil {
		return catalogFail(c, err, "Failed to update course type")
	}

	var req CourseTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	courseType.Code = req.Code
	courseType.Name = req.Name
	courseType.Description = req.Description
	courseType.ValidityDays = req.ValidityDays
	courseType.AlertDays = req.AlertDays
	courseType.IsActive = req.active()

	if err := h.courseTypeRepo.Update(c.Context(), courseType); err != nil {
		return catalogFail(c, err, "Failed to update course type")
	}

	return response.Success(c, "Course type updated successfully", fiber.Map{
		"course_type": courseType,
	})
}

// DeleteCourseType deletes a course type
// @Summary Delete course type
// @Tags Catalogs
// @Produce json
// @Param id path int true "Course Type ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/course-types/{id} [delete]
func (h *CatalogHandler) DeleteCourseType(c *fiber.Ctx) error {
	return deleteCatalog(c, h.courseTypeRepo, "course type")
}

// ============================================================
// Equipment Type
// ============================================================

// EquipmentTypeRequest represents create/update equipment type request
type EquipmentTypeRequest struct {
	CatalogRequest
	ServiceLifeDays *int `json:"service_life_days"`
}

func (r *EquipmentTypeRequest) validate() string {
	if msg := r.CatalogRequest.validate(); msg != "" {
		return msg
	}
	if !positiveDays(r.ServiceLifeDays) {
		return "Service life days must be at least 1"
	}
	return ""
}

// ListEquipmentTypes lists equipment types
// @Summary List equipment types
// @Tags Catalogs
// @Produce json
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /catalogs/equipment-types [get]
func (h *CatalogHandler) ListEquipmentTypes(c *fiber.Ctx) error {
	return listCatalog(c, h.equipmentTypeRepo, "equipment_types", "equipment type")
}

// GetEquipmentType gets an equipment type by ID
// @Summary Get equipment type
// @Tags Catalogs
// @Produce json
// @Param id path int true "Equipment Type ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/equipment-types/{id} [get]
func (h *CatalogHandler) GetEquipmentType(c *fiber.Ctx) error {
	return getCatalog(c, h.equipmentTypeRepo, "equipment_type", "equipment type")
}

// CreateEquipmentType creates a new equipment type
// @Summary Create equipment type
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param body body EquipmentTypeRequest true "Equipment type data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /catalogs/equipment-types [post]
func (h *CatalogHandler) CreateEquipmentType(c *fiber.Ctx) error {
	var req EquipmentTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	equipmentType := &models.EquipmentType{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		ServiceLifeDays: req.ServiceLifeDays,
		IsActive:        req.active(),
	}

	if err := h.equipmentTypeRepo.Create(c.Context(), equipmentType); err != nil {
		return catalogFail(c, err, "Failed to create equipment type")
	}

	return response.Created(c, "Equipment type created successfully", fiber.Map{
		"equipment_type": equipmentType,
	})
}

// UpdateEquipmentType updates an equipment type
// @Summary Update equipment type
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param id path int true "Equipment Type ID"
// @Param body body EquipmentTypeRequest true "Equipment type data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/equipment-types/{id} [put]
func (h *CatalogHandler) UpdateEquipmentType(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	equipmentType, err := h.equipmentTypeRepo.GetByID(c.Context(), id)
	if err != nil {
		return catalogFail(c, err, "Failed to update equipment type")
	}

	var req EquipmentTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	equipmentType.Code = req.Code
	equipmentType.Name = req.Name
	equipmentType.Description = req.Description
	equipmentType.ServiceLifeDays = req.ServiceLifeDays
	equipmentType.IsActive = req.active()

	if err := h.equipmentTypeRepo.Update(c.Context(), equipmentType); err != nil {
		return catalogFail(c, err, "Failed to update equipment type")
	}

	return response.Success(c, "Equipment type updated successfully", fiber.Map{
		"equipment_type": equipmentType,
	})
}

// DeleteEquipmentType deletes an equipment type
// @Summary Delete equipment type
// @Tags Catalogs
// @Produce json
// @Param id path int true "Equipment Type ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/equipment-types/{id} [delete]
func (h *CatalogHandler) DeleteEquipmentType(c *fiber.Ctx) error {
	return deleteCatalog(c, h.equipmentTypeRepo, "equipment type")
}

// ============================================================
// Document Type
// ============================================================

// DocumentTypeRequest represents create/update document type request
type DocumentTypeRequest struct {
	CatalogRequest
	RequiresVigency bool `json:"requires_vigency"`
}

// ListDocumentTypes lists document types
// @Summary List document types
// @Tags Catalogs
// @Produce json
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /catalogs/document-types [get]
func (h *CatalogHandler) ListDocumentTypes(c *fiber.Ctx) error {
	return listCatalog(c, h.documentTypeRepo, "document_types", "document type")
}

// GetDocumentType gets a document type by ID
// @Summary Get document type
// @Tags Catalogs
// @Produce json
// @Param id path int true "Document Type ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/document-types/{id} [get]
func (h *CatalogHandler) GetDocumentType(c *fiber.Ctx) error {
	return getCatalog(c, h.documentTypeRepo, "document_type", "document type")
}

// CreateDocumentType creates a new document type
// @Summary Create document type
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param body body DocumentTypeRequest true "Document type data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /catalogs/document-types [post]
func (h *CatalogHandler) CreateDocumentType(c *fiber.Ctx) error {
	var req DocumentTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	documentType := &models.DocumentType{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		RequiresVigency: req.RequiresVigency,
		IsActive:        req.active(),
	}

	if err := h.documentTypeRepo.Create(c.Context(), documentType); err != nil {
		return catalogFail(c, err, "Failed to create document type")
	}

	return response.Created(c, "Document type created successfully", fiber.Map{
		"document_type": documentType,
	})
}

// UpdateDocumentType updates a document type
// @Summary Update document type
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param id path int true "Document Type ID"
// @Param body body DocumentTypeRequest true "Document type data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/document-types/{id} [put]
func (h *CatalogHandler) UpdateDocumentType(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	documentType, err := h.documentTypeRepo.GetByID(c.Context(), id)
	if err != nil {
		return catalogFail(c, err, "Failed to update document type")
	}

	var req DocumentTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return response.BadRequest(c, msg)
	}

	documentType.Code = req.Code
	documentType.Name = req.Name
	documentType.Description = req.Description
	documentType.RequiresVigency = req.RequiresVigency
	documentType.IsActive = req.active()

	if err := h.documentTypeRepo.Update(c.Context(), documentType); err != nil {
		return catalogFail(c, err, "Failed to update document type")
	}

	return response.Success(c, "Document type updated successfully", fiber.Map{
		"document_type": documentType,
	})
}

// DeleteDocumentType deletes a document type
// @Summary Delete document type
// @Tags Catalogs
// @Produce json
// @Param id path int true "Document Type ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /catalogs/document-types/{id} [delete]
func (h *CatalogHandler) DeleteDocumentType(c *fiber.Ctx) error {
	return deleteCatalog(c, h.documentTypeRepo, "document type")
}
