package repository

import (
	"context"

	"github.com/campus-it/printstock/internal/domain/entity"
)

// PrinterModelRepository is the persistence port for printer models.
type PrinterModelRepository interface {
	Create(ctx context.Context, pm *entity.PrinterModel) error
	GetByID(ctx context.Context, id string) (*entity.PrinterModel, error)
	Update(ctx context.Context, pm *entity.PrinterModel) error
	List(ctx context.Context, limit, offset int) ([]*entity.PrinterModel, error)
	Delete(ctx context.Context, id string) error
	References(ctx context.Context, id string) ([]Reference, error)
}

// PrinterInfo is a printer joined with its room, building and model. The
// ledger uses it to validate OUT movements and to fill journal snapshots
// without chasing foreign keys one by one.
type PrinterInfo struct {
	ID               string
	RoomID           string
	RoomNumber       string
	RoomOwnerName    string
	BuildingID       string
	BuildingName     string
	PrinterModelID   string
	PrinterModelName string // "vendor model"
	InventoryTag     string
}

// PrinterRepository is the persistence port for printers.
type PrinterRepository interface {
	Create(ctx context.Context, p *entity.Printer) error
	GetByID(ctx context.Context, id string) (*entity.Printer, error)
	// GetInfo returns the printer with its room, building and model resolved.
	GetInfo(ctx context.Context, id string) (*PrinterInfo, error)
	Update(ctx context.Context, p *entity.Printer) error
	List(ctx context.Context, buildingID string, limit, offset int) ([]*entity.Printer, error)
	Delete(ctx context.Context, id string) error
	References(ctx context.Context, id string) ([]Reference, error)
}
