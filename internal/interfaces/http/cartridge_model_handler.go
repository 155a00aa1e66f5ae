package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/printstock/internal/application/catalog"
	"github.com/campus-it/printstock/internal/application/dto"
)

// CartridgeModelHandler handles cartridge model catalog requests.
type CartridgeModelHandler struct {
	uc *catalog.CartridgeModelUseCase
}

// NewCartridgeModelHandler builds the handler.
func NewCartridgeModelHandler(uc *catalog.CartridgeModelUseCase) *CartridgeModelHandler {
	return &CartridgeModelHandler{uc: uc}
}

// Create godoc
// @Summary      Create a cartridge model
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCartridgeModelRequest  true  "vendor, code, title, compatible_printer_model_ids"
// @Success      201   {object}  dto.CartridgeModelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cartridge-models [post]
func (h *CartridgeModelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCartridgeModelRequest
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
// @Summary      Get a cartridge model
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Cartridge model ID"
// @Success      200  {object}  dto.CartridgeModelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cartridge-models/{id} [get]
func (h *CartridgeModelHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cartridge model not found"})
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Update a cartridge model
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "Cartridge model ID"
// @Param        body  body  dto.UpdateCartridgeModelRequest  true  "fields to change"
// @Success      200   {object}  dto.CartridgeModelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cartridge-models/{id} [put]
func (h *CartridgeModelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCartridgeModelRequest
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
// @Summary      List cartridge models
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Filter by vendor/code/title"
// @Param        limit   query  int     false  "Page size"
// @Param        offset  query  int     false  "Page offset"
// @Success      200  {object}  dto.CartridgeModelListResponse
// @Router       /api/cartridge-models [get]
func (h *CartridgeModelHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()
	resp, err := h.uc.List(c.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteReport godoc
// @Summary      Inspect what blocks deleting a cartridge model
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Cartridge model ID"
// @Success      200  {object}  dto.DeleteReport
// @Router       /api/cartridge-models/{id}/delete-report [get]
func (h *CartridgeModelHandler) DeleteReport(c *fiber.Ctx) error {
	resp, err := h.uc.DeleteReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Delete a cartridge model
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "Cartridge model ID"
// @Success      204  "deleted"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cartridge-models/{id} [delete]
func (h *CartridgeModelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
