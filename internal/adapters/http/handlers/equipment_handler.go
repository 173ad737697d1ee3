package handlers

import (
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EquipmentHandler handles equipment issuance endpoints
type EquipmentHandler struct {
	equipmentService *services.EquipmentService
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(equipmentService *services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
	}
}

// List lists equipment issuances
// @Summary List equipment issuances
// @Description List issuances with their live vigency, optionally filtered by worker, equipment type and vigency status
// @Tags Equipment
// @Produce json
// @Param worker_id query int false "Worker ID"
// @Param type_id query int false "Equipment type ID"
// @Param vigency query string false "EXPIRED, NEAR_EXPIRY, VALID, INACTIVE or UNDETERMINED"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /equipment-issuances [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	filter, err := recordFilter(c)
	if err != nil {
		return response.BadRequest(c, capitalize(err.Error()))
	}
	status, err := vigencyQuery(c)
	if err != nil {
		return fail(c, err, "Failed to list equipment issuances")
	}

	issuances, err := h.equipmentService.List(c.Context(), filter, status)
	if err != nil {
		return fail(c, err, "Failed to list equipment issuances")
	}

	return response.Success(c, "Equipment issuances retrieved successfully", fiber.Map{
		"issuances": issuances,
		"total":     len(issuances),
	})
}

// GetByID gets an issuance
// @Summary Get equipment issuance
// @Tags Equipment
// @Produce json
// @Param id path int true "Issuance ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /equipment-issuances/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid issuance ID")
	}

	issuance, err := h.equipmentService.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get equipment issuance")
	}

	return response.Success(c, "Equipment issuance retrieved successfully", fiber.Map{
		"issuance": issuance,
	})
}

// Create issues equipment to a worker
// @Summary Create equipment issuance
// @Tags Equipment
// @Accept json
// @Produce json
// @Param body body services.CreateIssuanceInput true "Issuance data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /equipment-issuances [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var req services.CreateIssuanceInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	issuance, err := h.equipmentService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create equipment issuance")
	}

	return response.Created(c, "Equipment issuance created successfully", fiber.Map{
		"issuance": issuance,
	})
}

// Update updates an issuance
// @Summary Update equipment issuance
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path int true "Issuance ID"
// @Param body body services.UpdateIssuanceInput true "Issuance data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /equipment-issuances/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid issuance ID")
	}

	var req services.UpdateIssuanceInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	issuance, err := h.equipmentService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update equipment issuance")
	}

	return response.Success(c, "Equipment issuance updated successfully", fiber.Map{
		"issuance": issuance,
	})
}

// ChangeStatus changes the manual status of an issuance
// @Summary Change equipment issuance status
// @Description ACTIVE, RETURNED, DAMAGED or LOST; anything but ACTIVE is reported INACTIVE
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path int true "Issuance ID"
// @Param body body services.ChangeStatusInput true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /equipment-issuances/{id}/status [patch]
func (h *EquipmentHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid issuance ID")
	}

	var req services.ChangeStatusInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	issuance, err := h.equipmentService.ChangeStatus(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to change equipment issuance status")
	}

	return response.Success(c, "Equipment issuance status changed successfully", fiber.Map{
		"issuance": issuance,
	})
}

// Delete deletes an issuance
// @Summary Delete equipment issuance
// @Tags Equipment
// @Produce json
// @Param id path int true "Issuance ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /equipment-issuances/{id} [delete]
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid issuance ID")
	}

	if err := h.equipmentService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete equipment issuance")
	}

	return response.Success(c, "Equipment issuance deleted successfully", nil)
}
