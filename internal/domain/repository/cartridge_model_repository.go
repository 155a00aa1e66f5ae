package repository

import (
	"context"

	"github.com/campus-it/printstock/internal/domain/entity"
)

// CartridgeModelRepository is the persistence port for cartridge models and
// their printer-model compatibility links.
type CartridgeModelRepository interface {
	Create(ctx context.Context, cm *entity.CartridgeModel) error
	GetByID(ctx context.Context, id string) (*entity.CartridgeModel, error)
	Update(ctx context.Context, cm *entity.CartridgeModel) error
	List(ctx context.Context, q string, limit, offset int) ([]*entity.CartridgeModel, error)
	Delete(ctx context.Context, id string) error
	References(ctx context.Context, id string) ([]Reference, error)

	// SetCompatiblePrinterModels replaces the compatibility link set.
	SetCompatiblePrinterModels(ctx context.Context, cartridgeModelID string, printerModelIDs []string) error
	ListCompatiblePrinterModels(ctx context.Context, cartridgeModelID string) ([]*entity.PrinterModel, error)
	IsCompatible(ctx context.Context, cartridgeModelID, printerModelID string) (bool, error)
}
