package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/printstock/internal/application/catalog"
	"github.com/campus-it/printstock/internal/application/dto"
)

// BuildingHandler handles building catalog requests.
type BuildingHandler struct {
	uc *catalog.BuildingUseCase
}

// NewBuildingHandler builds the handler.
func NewBuildingHandler(uc *catalog.BuildingUseCase) *BuildingHandler {
	return &BuildingHandler{uc: uc}
}

// Create godoc
// @Summary      Create a building
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBuildingRequest  true  "name, address"
// @Success      201   {object}  dto.BuildingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/buildings [post]
func (h *BuildingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBuildingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Get a building
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Building ID"
// @Success      200  {object}  dto.BuildingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/buildings/{id} [get]
func (h *BuildingHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "building not found"})
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Update a building
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Building ID"
// @Param        body  body  dto.UpdateBuildingRequest  true  "fields to change"
// @Success      200   {object}  dto.BuildingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/buildings/{id} [put]
func (h *BuildingHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBuildingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      List buildings
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {object}  dto.BuildingListResponse
// @Router       /api/buildings [get]
func (h *BuildingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()
	resp, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteReport godoc
// @Summary      Inspect what blocks deleting a building
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Building ID"
// @Success      200  {object}  dto.DeleteReport
// @Router       /api/buildings/{id}/delete-report [get]
func (h *BuildingHandler) DeleteReport(c *fiber.Ctx) error {
	resp, err := h.uc.DeleteReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Delete a building
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "Building ID"
// @Success      204  "deleted"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/buildings/{id} [delete]
func (h *BuildingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
