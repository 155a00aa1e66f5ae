package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/printstock/internal/application/dto"
	"github.com/campus-it/printstock/internal/application/ledger"
	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

// MovementHandler handles the stock ledger: recording movements and
// searching the journal.
type MovementHandler struct {
	record  *ledger.RecordMovementUseCase
	journal *ledger.JournalUseCase
}

// NewMovementHandler builds the handler.
func NewMovementHandler(record *ledger.RecordMovementUseCase, journal *ledger.JournalUseCase) *MovementHandler {
	return &MovementHandler{record: record, journal: journal}
}

// Record godoc
// @Summary      Record a stock movement
// @Description  Appends an IN or OUT entry to the ledger and adjusts the
//               global and building balances atomically.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "cartridge_model_id, type, qty, building_id; printer_id for OUT"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	mov, err := h.record.RecordMovement(c.Context(), ledger.MovementInput{
		CartridgeModelID: in.CartridgeModelID,
		Type:             in.Type,
		Qty:              in.Qty,
		OnBalance:        in.OnBalance,
		BuildingID:       in.BuildingID,
		PrinterID:        in.PrinterID,
		IssuedTo:         in.IssuedTo,
		Comment:          in.Comment,
		UserID:           userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Search godoc
// @Summary      Search the movement journal
// @Description  Filters combine with AND; results are newest first.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        cartridge_model_id  query  string  false  "Filter by cartridge model"
// @Param        printer_id          query  string  false  "Filter by printer"
// @Param        building_id         query  string  false  "Filter by building"
// @Param        created_by          query  string  false  "Filter by user"
// @Param        from                query  string  false  "RFC3339 lower bound"
// @Param        to                  query  string  false  "RFC3339 upper bound"
// @Param        q                   query  string  false  "Free-text filter"
// @Param        limit               query  int     false  "Page size (default 50, max 200)"
// @Param        offset              query  int     false  "Page offset"
// @Success      200  {object}  dto.JournalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *MovementHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		CartridgeModelID: c.Query("cartridge_model_id"),
		PrinterID:        c.Query("printer_id"),
		BuildingID:       c.Query("building_id"),
		CreatedBy:        c.Query("created_by"),
		Q:                c.Query("q"),
	}
	var err error
	if filter.From, err = parseTimeQuery(c.Query("from")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid from timestamp"})
	}
	if filter.To, err = parseTimeQuery(c.Query("to")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid to timestamp"})
	}

	list, total, err := h.journal.SearchMovements(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.JournalResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// GetByID godoc
// @Summary      Get one journal entry
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Movement ID"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.journal.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if m == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movement not found"})
	}
	return c.JSON(toMovementResponse(m))
}

func parseTimeQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		Type:             m.Type,
		CartridgeModelID: m.CartridgeModelID,
		Qty:              m.Qty,
		OnBalance:        m.OnBalance,
		BuildingID:       m.BuildingID,
		PrinterID:        m.PrinterID,
		IssuedTo:         m.IssuedTo,
		Comment:          m.Comment,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
		Building:         m.BuildingSnapshot,
		Room:             m.RoomSnapshot,
		PrinterModel:     m.PrinterModelSnapshot,
		PrinterTag:       m.PrinterTagSnapshot,
	}
}
