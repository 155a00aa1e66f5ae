package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

var _ repository.BuildingRepository = (*BuildingRepo)(nil)

// BuildingRepo is the PostgreSQL adapter for buildings (usable with pool
// or tx).
type BuildingRepo struct {
	q Querier
}

// NewBuildingRepository builds the adapter. Pass pool or tx (Querier).
func NewBuildingRepository(q Querier) *BuildingRepo {
	return &BuildingRepo{q: q}
}

// Create persists a building.
func (r *BuildingRepo) Create(ctx context.Context, b *entity.Building) error {
	query := `
		INSERT INTO buildings (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, b.ID, b.Name, b.Address, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create building: %w", mapError(err))
	}
	return nil
}

// GetByID returns a building or nil when absent.
func (r *BuildingRepo) GetByID(ctx context.Context, id string) (*entity.Building, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM buildings WHERE id = $1`
	var b entity.Building
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get building: %w", err)
	}
	return &b, nil
}

// Update persists the mutable fields.
func (r *BuildingRepo) Update(ctx context.Context, b *entity.Building) error {
	query := `UPDATE buildings SET name = $2, address = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, b.ID, b.Name, b.Address, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update building: %w", mapError(err))
	}
	return nil
}

// List returns buildings ordered by name.
func (r *BuildingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Building, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM buildings ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Building
	for rows.Next() {
		var b entity.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete removes the building. Rooms cascade in the schema; movements and
// stock rows restrict, which the pre-delete guard surfaces first.
func (r *BuildingRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete building: %w", mapError(err))
	}
	return nil
}

// References counts the records that block deleting the building.
func (r *BuildingRepo) References(ctx context.Context, id string) ([]repository.Reference, error) {
	query := `
		SELECT
			(SELECT count(*) FROM stock_movements WHERE building_id = $1),
			(SELECT count(*) FROM printers p JOIN rooms rm ON rm.id = p.room_id WHERE rm.building_id = $1),
			(SELECT count(*) FROM building_stock WHERE building_id = $1 AND qty <> 0)`
	var movements, printers, stock int
	if err := r.q.QueryRow(ctx, query, id).Scan(&movements, &printers, &stock); err != nil {
		return nil, fmt.Errorf("building references: %w", err)
	}
	return []repository.Reference{
		{Kind: "movements", Count: movements},
		{Kind: "printers", Count: printers},
		{Kind: "stock", Count: stock},
	}, nil
}
