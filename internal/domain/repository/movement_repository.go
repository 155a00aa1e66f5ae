package repository

import (
	"context"
	"time"

	"github.com/campus-it/printstock/internal/domain/entity"
)

// MovementFilter narrows a journal search. Empty/nil fields are ignored;
// set fields combine with AND.
type MovementFilter struct {
	CartridgeModelID string
	PrinterID        string
	BuildingID       string
	CreatedBy        string
	From             *time.Time
	To               *time.Time
	// Q matches cartridge code/title, issued-to, journal snapshot fields
	// and building name, case-insensitively.
	Q string
}

// MovementRepository is the persistence port for the append-only movement
// log. There is deliberately no Update or Delete.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// Search returns one journal page ordered created_at DESC, id DESC,
	// plus the total match count for pagination.
	Search(ctx context.Context, f MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error)
	// ListAll returns movements ordered created_at ASC, id ASC for
	// reconciliation replay. cartridgeModelID narrows to one model when
	// non-empty.
	ListAll(ctx context.Context, cartridgeModelID string) ([]*entity.StockMovement, error)
}
