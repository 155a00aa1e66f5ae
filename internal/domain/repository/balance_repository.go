package repository

import (
	"context"

	"github.com/campus-it/printstock/internal/domain/entity"
)

// BuildingQty is one per-building quantity in a stock overview row.
type BuildingQty struct {
	BuildingID   string
	BuildingName string
	Qty          int64
}

// OverviewRow aggregates the current stock of one cartridge model across
// the organization (both on-balance flags summed).
type OverviewRow struct {
	CartridgeModelID string
	Vendor           string
	Code             string
	Title            string
	GlobalQty        int64
	Buildings        []BuildingQty
}

// BalanceRepository is the persistence port for the materialized balance
// snapshots. The *ForUpdate variants lock the row (SELECT FOR UPDATE) and
// must only be called inside a transaction; absent rows are returned as
// zero-quantity snapshots so keys materialize lazily.
type BalanceRepository interface {
	GetGlobal(ctx context.Context, cartridgeModelID string, onBalance bool) (*entity.GlobalStock, error)
	GetGlobalForUpdate(ctx context.Context, cartridgeModelID string, onBalance bool) (*entity.GlobalStock, error)
	UpsertGlobal(ctx context.Context, s *entity.GlobalStock) error

	GetBuilding(ctx context.Context, buildingID, cartridgeModelID string, onBalance bool) (*entity.BuildingStock, error)
	GetBuildingForUpdate(ctx context.Context, buildingID, cartridgeModelID string, onBalance bool) (*entity.BuildingStock, error)
	UpsertBuilding(ctx context.Context, s *entity.BuildingStock) error

	// SumGlobal and SumBuilding add the snapshot rows across both on-balance
	// flags for the key.
	SumGlobal(ctx context.Context, cartridgeModelID string) (int64, error)
	SumBuilding(ctx context.Context, buildingID, cartridgeModelID string) (int64, error)

	// ListGlobal/ListBuilding return all snapshot rows (optionally narrowed
	// to one cartridge model) for reconciliation diffing.
	ListGlobal(ctx context.Context, cartridgeModelID string) ([]*entity.GlobalStock, error)
	ListBuilding(ctx context.Context, cartridgeModelID string) ([]*entity.BuildingStock, error)

	// ReplaceGlobal/ReplaceBuilding delete the matching snapshot rows and
	// insert the recomputed set. Reconciliation only; must run inside a
	// transaction.
	ReplaceGlobal(ctx context.Context, cartridgeModelID string, rows []*entity.GlobalStock) error
	ReplaceBuilding(ctx context.Context, cartridgeModelID string, rows []*entity.BuildingStock) error

	// Overview returns current stock per cartridge model with per-building
	// breakdown. q filters by cartridge vendor/code/title or compatible
	// printer vendor/model.
	Overview(ctx context.Context, q string) ([]*OverviewRow, error)
}
