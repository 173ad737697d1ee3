package handlers

import (
	"tentworks-records/internal/core/services"
	"tentworks-records/internal/pkg/pagination"
	"tentworks-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles supplier, material and stock movement endpoints
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// ============================================================
// Suppliers
// ============================================================

// ListSuppliers lists suppliers
// @Summary List suppliers
// @Tags Suppliers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Name or tax ID"
// @Success 200 {object} response.Response
// @Router /suppliers [get]
func (h *InventoryHandler) ListSuppliers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	suppliers, total, err := h.inventoryService.ListSuppliers(c.Context(), c.Query("search"), params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list suppliers")
	}

	return response.Success(c, "Suppliers retrieved successfully", fiber.Map{
		"suppliers": suppliers,
		"meta":      pagination.GetMeta(params, total),
	})
}

// GetSupplier gets a supplier
// @Summary Get supplier
// @Tags Suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /suppliers/{id} [get]
func (h *InventoryHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID")
	}

	supplier, err := h.inventoryService.GetSupplier(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get supplier")
	}

	return response.Success(c, "Supplier retrieved successfully", fiber.Map{
		"supplier": supplier,
	})
}

// CreateSupplier creates a supplier
// @Summary Create supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param body body services.SupplierInput true "Supplier data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /suppliers [post]
func (h *InventoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var req services.SupplierInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	supplier, err := h.inventoryService.CreateSupplier(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create supplier")
	}

	return response.Created(c, "Supplier created successfully", fiber.Map{
		"supplier": supplier,
	})
}

// UpdateSupplier updates a supplier
// @Summary Update supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Param id path int true "Supplier ID"
// @Param body body services.SupplierInput true "Supplier data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /suppliers/{id} [put]
func (h *InventoryHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID")
	}

	var req services.SupplierInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	supplier, err := h.inventoryService.UpdateSupplier(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update supplier")
	}

	return response.Success(c, "Supplier updated successfully", fiber.Map{
		"supplier": supplier,
	})
}

// DeleteSupplier deletes a supplier
// @Summary Delete supplier
// @Tags Suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /suppliers/{id} [delete]
func (h *InventoryHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid supplier ID")
	}

	if err := h.inventoryService.DeleteSupplier(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete supplier")
	}

	return response.Success(c, "Supplier deleted successfully", nil)
}

// ============================================================
// Materials
// ============================================================

// ListMaterials lists materials
// @Summary List materials
// @Tags Materials
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Code or name"
// @Param low_stock query bool false "Only materials at or below minimum stock"
// @Success 200 {object} response.Response
// @Router /materials [get]
func (h *InventoryHandler) ListMaterials(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	materials, total, err := h.inventoryService.ListMaterials(c.Context(), c.Query("search"), c.Query("low_stock") == "true", params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list materials")
	}

	return response.Success(c, "Materials retrieved successfully", fiber.Map{
		"materials": materials,
		"meta":      pagination.GetMeta(params, total),
	})
}

// GetMaterial gets a material
// @Summary Get material
// @Tags Materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /materials/{id} [get]
func (h *InventoryHandler) GetMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid material ID")
	}

	material, err := h.inventoryService.GetMaterial(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to get material")
	}

	return response.Success(c, "Material retrieved successfully", fiber.Map{
		"material": material,
	})
}

// CreateMaterial creates a material
// @Summary Create material
// @Tags Materials
// @Accept json
// @Produce json
// @Param body body services.MaterialInput true "Material data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /materials [post]
func (h *InventoryHandler) CreateMaterial(c *fiber.Ctx) error {
	var req services.MaterialInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	material, err := h.inventoryService.CreateMaterial(c.Context(), &req)
	if err != nil {
		return fail(c, err, "Failed to create material")
	}

	return response.Created(c, "Material created successfully", fiber.Map{
		"material": material,
	})
}

// UpdateMaterial updates a material
// @Summary Update material
// @Description Stock is only changed through movements
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path int true "Material ID"
// @Param body body services.MaterialInput true "Material data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /materials/{id} [put]
func (h *InventoryHandler) UpdateMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid material ID")
	}

	var req services.MaterialInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	material, err := h.inventoryService.UpdateMaterial(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to update material")
	}

	return response.Success(c, "Material updated successfully", fiber.Map{
		"material": material,
	})
}

// DeleteMaterial deletes a material
// @Summary Delete material
// @Tags Materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /materials/{id} [delete]
func (h *InventoryHandler) DeleteMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid material ID")
	}

	if err := h.inventoryService.DeleteMaterial(c.Context(), id); err != nil {
		return fail(c, err, "Failed to delete material")
	}

	return response.Success(c, "Material deleted successfully", nil)
}

// ============================================================
// Movements
// ============================================================

// ListMovements lists the stock movements of a material
// @Summary List material movements
// @Tags Materials
// @Produce json
// @Param id path int true "Material ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /materials/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid material ID")
	}
	params := pagination.GetParams(c)

	movements, total, err := h.inventoryService.ListMovements(c.Context(), id, params.Offset, params.Limit)
	if err != nil {
		return fail(c, err, "Failed to list movements")
	}

	return response.Success(c, "Movements retrieved successfully", fiber.Map{
		"movements": movements,
		"meta":      pagination.GetMeta(params, total),
	})
}

// RegisterMovement applies a stock movement
// @Summary Register material movement
// @Description IN adds to stock, OUT subtracts and may not leave stock negative
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path int true "Material ID"
// @Param body body services.MovementInput true "Movement data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /materials/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid material ID")
	}

	var req services.MovementInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	movement, material, err := h.inventoryService.RegisterMovement(c.Context(), id, &req)
	if err != nil {
		return fail(c, err, "Failed to register movement")
	}

	return response.Created(c, "Movement registered successfully", fiber.Map{
		"movement": movement,
		"material": material,
	})
}
