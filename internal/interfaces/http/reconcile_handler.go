package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/printstock/internal/application/dto"
	"github.com/campus-it/printstock/internal/application/ledger"
)

// ReconcileHandler exposes balance reconciliation to admins.
type ReconcileHandler struct {
	uc *ledger.ReconcileUseCase
}

// NewReconcileHandler builds the handler.
func NewReconcileHandler(uc *ledger.ReconcileUseCase) *ReconcileHandler {
	return &ReconcileHandler{uc: uc}
}

// Reconcile godoc
// @Summary      Rebuild balance snapshots from the movement log
// @Description  Replays the full journal and diffs the result against the
//               stored snapshots. dry_run reports without writing.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReconcileRequest  false  "dry_run, cartridge_model_id"
// @Success      200   {object}  ledger.ReconcileReport
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/admin/reconcile [post]
func (h *ReconcileHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
		}
	}
	report, err := h.uc.Reconcile(c.Context(), ledger.ReconcileOptions{
		DryRun:           in.DryRun,
		CartridgeModelID: in.CartridgeModelID,
	})
	if err != nil {
		if report != nil {
			// Negative recomputed balances: return the report with the error
			// status so the caller sees exactly which keys are broken.
			return c.Status(fiber.StatusConflict).JSON(report)
		}
		return respondError(c, err)
	}
	return c.JSON(report)
}
