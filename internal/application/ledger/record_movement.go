package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-it/printstock/internal/domain"
	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

// RecordMovementUseCase appends stock movements to the ledger. Catalog
// lookups and compatibility checks run against current state up front; the
// balance check, the balance updates and the movement insert run inside one
// transaction with the affected snapshot rows locked (SELECT FOR UPDATE),
// so two concurrent OUTs for the same key cannot both drain the last units.
type RecordMovementUseCase struct {
	txRunner      TxRunner
	cartridgeRepo repository.CartridgeModelRepository
	buildingRepo  repository.BuildingRepository
	printerRepo   repository.PrinterRepository
}

// NewRecordMovementUseCase builds the use case.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	cartridgeRepo repository.CartridgeModelRepository,
	buildingRepo repository.BuildingRepository,
	printerRepo repository.PrinterRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:      txRunner,
		cartridgeRepo: cartridgeRepo,
		buildingRepo:  buildingRepo,
		printerRepo:   printerRepo,
	}
}

// MovementInput is the validated-at-the-edge input for RecordMovement.
// BuildingID is the destination warehouse for IN and the source warehouse
// for OUT. PrinterID is required for OUT and must reference a printer in
// that building.
type MovementInput struct {
	CartridgeModelID string
	Type             string
	Qty              int64
	OnBalance        bool
	BuildingID       string
	PrinterID        string
	IssuedTo         string
	Comment          string
	UserID           string
}

// RecordMovement validates the input, then appends the movement and adjusts
// the global and building snapshots atomically. On any error nothing is
// written.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.Qty <= 0 || input.CartridgeModelID == "" || input.BuildingID == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIN:
	case entity.MovementTypeOUT:
		if input.PrinterID == "" {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	cartridge, err := uc.cartridgeRepo.GetByID(ctx, input.CartridgeModelID)
	if err != nil {
		return nil, err
	}
	if cartridge == nil {
		return nil, domain.ErrNotFound
	}
	building, err := uc.buildingRepo.GetByID(ctx, input.BuildingID)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:               uuid.New().String(),
		Type:             input.Type,
		CartridgeModelID: input.CartridgeModelID,
		Qty:              input.Qty,
		OnBalance:        input.OnBalance,
		BuildingID:       input.BuildingID,
		IssuedTo:         input.IssuedTo,
		Comment:          input.Comment,
		CreatedBy:        input.UserID,
		CreatedAt:        now,
		BuildingSnapshot: building.Name,
	}

	if input.Type == entity.MovementTypeOUT {
		printer, err := uc.printerRepo.GetInfo(ctx, input.PrinterID)
		if err != nil {
			return nil, err
		}
		if printer == nil {
			return nil, domain.ErrNotFound
		}
		// The issue is drawn from the warehouse of the building the printer
		// lives in.
		if printer.BuildingID != input.BuildingID {
			return nil, domain.ErrInvalidInput
		}
		ok, err := uc.cartridgeRepo.IsCompatible(ctx, input.CartridgeModelID, printer.PrinterModelID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrIncompatibleCartridge
		}
		mov.PrinterID = printer.ID
		mov.RoomSnapshot = printer.RoomNumber
		mov.PrinterModelSnapshot = printer.PrinterModelName
		mov.PrinterTagSnapshot = printer.InventoryTag
		if mov.IssuedTo == "" {
			mov.IssuedTo = printer.RoomOwnerName
		}
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		// Lock order is global then building, everywhere.
		global, err := balanceRepo.GetGlobalForUpdate(ctx, input.CartridgeModelID, input.OnBalance)
		if err != nil {
			return err
		}
		bld, err := balanceRepo.GetBuildingForUpdate(ctx, input.BuildingID, input.CartridgeModelID, input.OnBalance)
		if err != nil {
			return err
		}

		delta := input.Qty
		if input.Type == entity.MovementTypeOUT {
			if bld.Qty < input.Qty {
				return &domain.InsufficientStockError{Scope: domain.ScopeBuilding, Available: bld.Qty, Requested: input.Qty}
			}
			if global.Qty < input.Qty {
				// Only reachable when the snapshots have drifted apart; the
				// reconciliation tool exists to surface exactly this.
				return &domain.InsufficientStockError{Scope: domain.ScopeGlobal, Available: global.Qty, Requested: input.Qty}
			}
			delta = -input.Qty
		}

		global.Qty += delta
		global.UpdatedAt = now
		bld.Qty += delta
		bld.UpdatedAt = now

		if err := balanceRepo.UpsertGlobal(ctx, global); err != nil {
			return err
		}
		if err := balanceRepo.UpsertBuilding(ctx, bld); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
