package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/printstock/internal/application/dto"
	"github.com/campus-it/printstock/internal/application/ledger"
)

// StockHandler serves the materialized balance snapshots.
type StockHandler struct {
	balance *ledger.BalanceUseCase
}

// NewStockHandler builds the handler.
func NewStockHandler(balance *ledger.BalanceUseCase) *StockHandler {
	return &StockHandler{balance: balance}
}

// Overview godoc
// @Summary      Stock overview
// @Description  Current stock per cartridge model with per-building
//               breakdown.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Filter by cartridge vendor/code/title or compatible printer model"
// @Success      200  {array}   dto.OverviewRowResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	rows, err := h.balance.Overview(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.OverviewRowResponse, 0, len(rows))
	for _, row := range rows {
		buildings := make([]dto.OverviewBuildingQty, 0, len(row.Buildings))
		for _, b := range row.Buildings {
			buildings = append(buildings, dto.OverviewBuildingQty{
				BuildingID:   b.BuildingID,
				BuildingName: b.BuildingName,
				Qty:          b.Qty,
			})
		}
		resp = append(resp, dto.OverviewRowResponse{
			CartridgeModelID: row.CartridgeModelID,
			Vendor:           row.Vendor,
			Code:             row.Code,
			Title:            row.Title,
			GlobalQty:        row.GlobalQty,
			Buildings:        buildings,
		})
	}
	return c.JSON(resp)
}

// Balance godoc
// @Summary      Balance for one cartridge model
// @Description  Organization-wide when building_id is empty, building-scoped
//               otherwise.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        cartridge_model_id  query  string  true   "Cartridge model"
// @Param        building_id         query  string  false  "Narrow to one building"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	cartridgeModelID := c.Query("cartridge_model_id")
	buildingID := c.Query("building_id")
	qty, err := h.balance.GetBalance(c.Context(), cartridgeModelID, buildingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BalanceResponse{
		CartridgeModelID: cartridgeModelID,
		BuildingID:       buildingID,
		Qty:              qty,
	})
}
