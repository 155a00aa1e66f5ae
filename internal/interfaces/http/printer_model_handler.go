package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/printstock/internal/application/catalog"
	"github.com/campus-it/printstock/internal/application/dto"
)

// PrinterModelHandler handles printer model catalog requests.
type PrinterModelHandler struct {
	uc *catalog.PrinterModelUseCase
}

// NewPrinterModelHandler builds the handler.
func NewPrinterModelHandler(uc *catalog.PrinterModelUseCase) *PrinterModelHandler {
	return &PrinterModelHandler{uc: uc}
}

// Create godoc
// @Summary      Create a printer model
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrinterModelRequest  true  "vendor, model"
// @Success      201   {object}  dto.PrinterModelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/printer-models [post]
func (h *PrinterModelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrinterModelRequest
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
// @Summary      Get a printer model
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Printer model ID"
// @Success      200  {object}  dto.PrinterModelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/printer-models/{id} [get]
func (h *PrinterModelHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "printer model not found"})
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Update a printer model
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "Printer model ID"
// @Param        body  body  dto.UpdatePrinterModelRequest  true  "fields to change"
// @Success      200   {object}  dto.PrinterModelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/printer-models/{id} [put]
func (h *PrinterModelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePrinterModelRequest
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
// @Summary      List printer models
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {object}  dto.PrinterModelListResponse
// @Router       /api/printer-models [get]
func (h *PrinterModelHandler) List(c *fiber.Ctx) error {
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
// @Summary      Inspect what blocks deleting a printer model
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Printer model ID"
// @Success      200  {object}  dto.DeleteReport
// @Router       /api/printer-models/{id}/delete-report [get]
func (h *PrinterModelHandler) DeleteReport(c *fiber.Ctx) error {
	resp, err := h.uc.DeleteReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Delete a printer model
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "Printer model ID"
// @Success      204  "deleted"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/printer-models/{id} [delete]
func (h *PrinterModelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
