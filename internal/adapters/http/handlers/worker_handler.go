package handlers

import (
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/pkg/pagination"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WorkerHandler handles worker, contract and affiliation endpoints
type WorkerHandler struct {
	workerService *services.WorkerService
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(workerService *services.WorkerService) *WorkerHandler {
	return &WorkerHandler{
		workerService: workerService,
	}
}

// ============================================================
// Workers
// ============================================================

// List lists workers
// @Summary List workers
// @Description List workers with pagination and search by name or document number
// @Tags Workers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Name or document number"
// @Param active query bool false "Only active workers"
// @Success 200 {object} response.Response
// @Router /workers [get]
func (h *WorkerHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	workers, total, err := h.workerService.List(c.Context(), c.Query("search"), c.Query("active") == "true", params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list workers")
	}

	return response.Success(c, "Workers retrieved successfully", fiber.Map{
		"workers": workers,
		"meta":    pagination.GetMeta(params, total),
	})
}

// GetByID gets a worker
// @Summary Get worker
// @Description Get a worker with contracts and affiliation
// @Tags Workers
// @Accept json
// @Produce json
// @Param id path int true "Worker ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /workers/{id} [get]
func (h *WorkerHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	worker, err := h.workerService.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get worker")
	}

	return response.Success(c, "Worker retrieved successfully", fiber.Map{
		"worker": worker,
	})
}

// Create creates a worker
// @Summary Create worker
// @Description Register a new worker
// @Tags Workers
// @Accept json
// @Produce json
// @Param body body services.WorkerInput true "Worker data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /workers [post]
func (h *WorkerHandler) Create(c *fiber.Ctx) error {
	var req services.WorkerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	worker, err := h.workerService.Create(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create worker")
	}

	return response.Created(c, "Worker created successfully", fiber.Map{
		"worker": worker,
	})
}

// Update updates a worker
// @Summary Update worker
// @Description Replace the data of a worker
// @Tags Workers
// @Accept json
// @Produce json
// @Param id path int true "Worker ID"
// @Param body body services.WorkerInput true "Worker data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /workers/{id} [put]
func (h *WorkerHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	var req services.WorkerInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	worker, err := h.workerService.Update(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update worker")
	}

	return response.Success(c, "Worker updated successfully", fiber.Map{
		"worker": worker,
	})
}

// Delete deletes a worker
// @Summary Delete worker
// @Tags Workers
// @Produce json
// @Param id path int true "Worker ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /workers/{id} [delete]
func (h *WorkerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	if err := h.workerService.Delete(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete worker")
	}

	return response.Success(c, "Worker deleted successfully", nil)
}

// ============================================================
// Contracts
// ============================================================

// ListContracts lists the contracts of a worker
// @Summary List contracts
// @Tags Contracts
// @Produce json
// @Param id path int true "Worker ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /workers/{id}/contracts [get]
func (h *WorkerHandler) ListContracts(c *fiber.Ctx) error {
	workerID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	contracts, err := h.workerService.ListContracts(c.Context(), workerID)
	if err != nil {
		return fail(c, err, "Failed to list contracts")
	}

	return response.Success(c, "Contracts retrieved successfully", fiber.Map{
		"contracts": contracts,
	})
}

// CreateContract adds a contract to a worker
// @Summary Create contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path int true "Worker ID"
// @Param body body services.ContractInput true "Contract data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /workers/{id}/contracts [post]
func (h *WorkerHandler) CreateContract(c *fiber.Ctx) error {
	workerID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	var req services.ContractInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contract, err := h.workerService.CreateContract(c.Context(), workerID, &req)
	if err != nil {
		return fail(c, err, "Failed to create contract")
	}

	return response.Created(c, "Contract created successfully", fiber.Map{
		"contract": contract,
	})
}

// UpdateContract updates a contract
// @Summary Update contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path int true "Contract ID"
// @Param body body services.ContractInput true "Contract data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contracts/{id} [put]
func (h *WorkerHandler) UpdateContract(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	var req services.ContractInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contract, err := h.workerService.UpdateContract(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update contract")
	}

	return response.Success(c, "Contract updated successfully", fiber.Map{
		"contract": contract,
	})
}

// DeleteContract deletes a contract
// @Summary Delete contract
// @Tags Contracts
// @Produce json
// @Param id path int true "Contract ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contracts/{id} [delete]
func (h *WorkerHandler) DeleteContract(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	if err := h.workerService.DeleteContract(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete contract")
	}

	return response.Success(c, "Contract deleted successfully", nil)
}

// ============================================================
// Affiliation
// ============================================================

// GetAffiliation gets the affiliation of a worker
// @Summary Get affiliation
// @Tags Affiliations
// @Produce json
// @Param id path int true "Worker ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /workers/{id}/affiliation [get]
func (h *WorkerHandler) GetAffiliation(c *fiber.Ctx) error {
	workerID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	affiliation, err := h.workerService.GetAffiliation(c.Context(), workerID)
	if err != nil {
		return fail(c, err, "Failed to get affiliation")
	}

	return response.Success(c, "Affiliation retrieved successfully", fiber.Map{
		"affiliation": affiliation,
	})
}

// SaveAffiliation creates or replaces the affiliation of a worker
// @Summary Save affiliation
// @Description Create or replace the single affiliation of a worker
// @Tags Affiliations
// @Accept json
// @Produce json
// @Param id path int true "Worker ID"
// @Param body body services.AffiliationInput true "Affiliation data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /workers/{id}/affiliation [put]
func (h *WorkerHandler) SaveAffiliation(c *fiber.Ctx) error {
	workerID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	var req services.AffiliationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	affiliation, err := h.workerService.SaveAffiliation(c.Context(), workerID, &req)
	if err != nil {
		return fail(c, err, "Failed to save affiliation")
	}

	return response.Success(c, "Affiliation saved successfully", fiber.Map{
		"affiliation": affiliation,
	})
}

// DeleteAffiliation removes the affiliation of a worker
// @Summary Delete affiliation
// @Tags Affiliations
// @Produce json
// @Param id path int true "Worker ID"
// @Success 200 {object} response.Response
// @Router /workers/{id}/affiliation [delete]
func (h *WorkerHandler) DeleteAffiliation(c *fiber.Ctx) error {
	workerID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid worker ID")
	}

	if err := h.workerService.DeleteAffiliation(c.Context(), workerID); err != nil {
		return fail(c, err, "Failed to delete affiliation")
	}

	return response.Success(c, "Affiliation deleted successfully", nil)
}
