package handlers

import (
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles training course endpoints
type CourseHandler struct {
	courseService *services.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// List lists courses
// @Summary List courses
// @Description List courses with their live vigency, optionally filtered by worker, course type and vigency status
// @Tags Courses
// @Produce json
// @Param worker_id query int false "Worker ID"
// @Param type_id query int false "Course type ID"
// @Param vigency query string false "EXPIRED, NEAR_EXPIRY, VALID, INACTIVE or UNDETERMINED"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /courses [get]
func (h *CourseHandler) List(c *fiber.Ctx) error {
	filter, err := recordFilter(c)
	if err != nil {
		return response.BadRequest(c, capitalize(err.Error()))
	}
	status, err := vigencyQuery(c)
	if err != nil {
		return fail(c, err, "Failed to list courses")
	}

	courses, err := h.courseService.List(c.Context(), filter, status)
	if err != nil {
		return fail(c, err, "Failed to list courses")
	}

	return response.Success(c, "Courses retrieved successfully", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// GetByID gets a course
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id} [get]
func (h *CourseHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	course, err := h.courseService.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get course")
	}

	return response.Success(c, "Course retrieved successfully", fiber.Map{
		"course": course,
	})
}

// Create creates a course
// @Summary Create course
// @Description Register a course taken by a worker; the expiry date is derived from the course type validity
// @Tags Courses
// @Accept json
// @Produce json
// @Param body body services.CreateCourseInput true "Course data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses [post]
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req services.CreateCourseInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.courseService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create course")
	}

	return response.Created(c, "Course created successfully", fiber.Map{
		"course": course,
	})
}

// Update updates a course
// @Summary Update course
// @Description Correct a course; changing the completion date or course type recomputes the expiry date
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param body body services.UpdateCourseInput true "Course data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	var req services.UpdateCourseInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.courseService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update course")
	}

	return response.Success(c, "Course updated successfully", fiber.Map{
		"course": course,
	})
}

// Delete deletes a course
// @Summary Delete course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	if err := h.courseService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete course")
	}

	return response.Success(c, "Course deleted successfully", nil)
}
