package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/printstock/internal/application/catalog"
	"github.com/campus-it/printstock/internal/application/dto"
)

// PrinterHandler handles printer catalog requests.
type PrinterHandler struct {
	uc *catalog.PrinterUseCase
}

// NewPrinterHandler builds the handler.
func NewPrinterHandler(uc *catalog.PrinterUseCase) *PrinterHandler {
	return &PrinterHandler{uc: uc}
}

// Create godoc
// @Summary      Create a printer
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePrinterRequest  true  "room_id, printer_model_id, inventory_tag"
// @Success      201   {object}  dto.PrinterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/printers [post]
func (h *PrinterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePrinterRequest
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
// @Summary      Get a printer
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Printer ID"
// @Success      200  {object}  dto.PrinterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/printers/{id} [get]
func (h *PrinterHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "printer not found"})
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Update a printer
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Printer ID"
// @Param        body  body  dto.UpdatePrinterRequest  true  "fields to change"
// @Success      200   {object}  dto.PrinterResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/printers/{id} [put]
func (h *PrinterHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePrinterRequest
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
// @Summary      List printers
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        building_id  query  string  false  "Narrow to one building"
// @Param        limit        query  int     false  "Page size"
// @Param        offset       query  int     false  "Page offset"
// @Success      200  {object}  dto.PrinterListResponse
// @Router       /api/printers [get]
func (h *PrinterHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()
	resp, err := h.uc.List(c.Context(), c.Query("building_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteReport godoc
// @Summary      Inspect what blocks deleting a printer
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Printer ID"
// @Success      200  {object}  dto.DeleteReport
// @Router       /api/printers/{id}/delete-report [get]
func (h *PrinterHandler) DeleteReport(c *fiber.Ctx) error {
	resp, err := h.uc.DeleteReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Delete a printer
// @Tags         catalog
// @Security     Bearer
// @Param        id  path  string  true  "Printer ID"
// @Success      204  "deleted"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/printers/{id} [delete]
func (h *PrinterHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
