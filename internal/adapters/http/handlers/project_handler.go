package handlers

import (
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/pkg/pagination"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project, activity and link endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ============================================================
// Projects
// ============================================================

// List lists projects
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "PLANNED, IN_PROGRESS, ON_HOLD, DONE or CANCELLED"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	projects, total, err := h.projectService.List(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list projects")
	}

	return response.Success(c, "Projects retrieved successfully", fiber.Map{
		"projects": projects,
		"meta":     pagination.GetMeta(params, total),
	})
}

// GetByID gets a project
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	project, err := h.projectService.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get project")
	}

	return response.Success(c, "Project retrieved successfully", fiber.Map{
		"project": project,
	})
}

// Create creates a project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body services.ProjectInput true "Project data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req services.ProjectInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	project, err := h.projectService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create project")
	}

	return response.Created(c, "Project created successfully", fiber.Map{
		"project": project,
	})
}

// Update updates a project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param body body services.ProjectInput true "Project data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	var req services.ProjectInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	project, err := h.projectService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update project")
	}

	return response.Success(c, "Project updated successfully", fiber.Map{
		"project": project,
	})
}

// Delete deletes a project
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	if err := h.projectService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete project")
	}

	return response.Success(c, "Project deleted successfully", nil)
}

// Gantt returns the schedule of a project
// @Summary Project gantt
// @Description Activities with derived end dates and their dependency links
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/gantt [get]
func (h *ProjectHandler) Gantt(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	gantt, err := h.projectService.Gantt(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get gantt")
	}

	return response.Success(c, "Gantt retrieved successfully", gantt)
}

// ============================================================
// Activities
// ============================================================

// CreateActivity adds an activity to a project
// @Summary Create activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param body body services.ActivityInput true "Activity data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/activities [post]
func (h *ProjectHandler) CreateActivity(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	var req services.ActivityInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	activity, err := h.projectService.CreateActivity(c.Context(), projectID, &req)
	if err != nil {
		return fail(c, err, "Failed to create activity")
	}

	return response.Created(c, "Activity created successfully", fiber.Map{
		"activity": activity,
	})
}

// UpdateActivity updates an activity
// @Summary Update activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param activityId path int true "Activity ID"
// @Param body body services.ActivityInput true "Activity data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/activities/{activityId} [put]
func (h *ProjectHandler) UpdateActivity(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}
	activityID, err := parseID(c, "activityId")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	var req services.ActivityInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	activity, err := h.projectService.UpdateActivity(c.Context(), projectID, activityID, &req)
	if err != nil {
		return fail(c, err, "Failed to update activity")
	}

	return response.Success(c, "Activity updated successfully", fiber.Map{
		"activity": activity,
	})
}

// DeleteActivity deletes an activity with its links
// @Summary Delete activity
// @Tags Activities
// @Produce json
// @Param id path int true "Project ID"
// @Param activityId path int true "Activity ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/activities/{activityId} [delete]
func (h *ProjectHandler) DeleteActivity(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}
	activityID, err := parseID(c, "activityId")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	if err := h.projectService.DeleteActivity(c.Context(), projectID, activityID); err != nil {
		return fail(c, err, "Failed to delete activity")
	}

	return response.Success(c, "Activity deleted successfully", nil)
}

// ============================================================
// Links
// ============================================================

// CreateLink adds a dependency between two activities
// @Summary Create link
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param body body services.LinkInput true "Link data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /projects/{id}/links [post]
func (h *ProjectHandler) CreateLink(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	var req services.LinkInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	link, err := h.projectService.CreateLink(c.Context(), projectID, &req)
	if err != nil {
		return fail(c, err, "Failed to create link")
	}

	return response.Created(c, "Link created successfully", fiber.Map{
		"link": link,
	})
}

// DeleteLink removes a dependency
// @Summary Delete link
// @Tags Activities
// @Produce json
// @Param id path int true "Project ID"
// @Param linkId path int true "Link ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/links/{linkId} [delete]
func (h *ProjectHandler) DeleteLink(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}
	linkID, err := parseID(c, "linkId")
	if err != nil {
		return response.BadRequest(c, "Invalid link ID")
	}

	if err := h.projectService.DeleteLink(c.Context(), projectID, linkID); err != nil {
		return fail(c, err, "Failed to delete link")
	}

	return response.Success(c, "Link deleted successfully", nil)
}
