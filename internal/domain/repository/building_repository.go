package repository

import (
	"context"

	"github.com/campus-it/printstock/internal/domain/entity"
)

// BuildingRepository is the persistence port for buildings.
type BuildingRepository interface {
	Create(ctx context.Context, b *entity.Building) error
	GetByID(ctx context.Context, id string) (*entity.Building, error)
	Update(ctx context.Context, b *entity.Building) error
	List(ctx context.Context, limit, offset int) ([]*entity.Building, error)
	Delete(ctx context.Context, id string) error
	// References returns the record kinds that block deleting the building
	// (movements and printers; plain rooms cascade).
	References(ctx context.Context, id string) ([]Reference, error)
}

// RoomRepository is the persistence port for rooms.
type RoomRepository interface {
	Create(ctx context.Context, r *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	Update(ctx context.Context, r *entity.Room) error
	ListByBuilding(ctx context.Context, buildingID string, limit, offset int) ([]*entity.Room, error)
	Delete(ctx context.Context, id string) error
	References(ctx context.Context, id string) ([]Reference, error)
}
