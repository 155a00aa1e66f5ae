package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo is the PostgreSQL adapter for rooms (usable with pool or tx).
type RoomRepo struct {
	q Querier
}

// NewRoomRepository builds the adapter. Pass pool or tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

// Create persists a room.
func (r *RoomRepo) Create(ctx context.Context, rm *entity.Room) error {
	query := `
		INSERT INTO rooms (id, building_id, number, owner_name, owner_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		rm.ID, rm.BuildingID, rm.Number, rm.OwnerName, rm.OwnerEmail, rm.CreatedAt, rm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create room: %w", mapError(err))
	}
	return nil
}

// GetByID returns a room or nil when absent.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	query := `
		SELECT id, building_id, number, owner_name, owner_email, created_at, updated_at
		FROM rooms WHERE id = $1`
	var rm entity.Room
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rm.ID, &rm.BuildingID, &rm.Number, &rm.OwnerName, &rm.OwnerEmail, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &rm, nil
}

// Update persists the mutable fields. BuildingID never changes.
func (r *RoomRepo) Update(ctx context.Context, rm *entity.Room) error {
	query := `
		UPDATE rooms SET number = $2, owner_name = $3, owner_email = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, rm.ID, rm.Number, rm.OwnerName, rm.OwnerEmail, rm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update room: %w", mapError(err))
	}
	return nil
}

// ListByBuilding returns rooms ordered by number, all buildings when
// buildingID is empty.
func (r *RoomRepo) ListByBuilding(ctx context.Context, buildingID string, limit, offset int) ([]*entity.Room, error) {
	query := `
		SELECT id, building_id, number, owner_name, owner_email, created_at, updated_at
		FROM rooms`
	args := []any{}
	if buildingID != "" {
		query += ` WHERE building_id = $1`
		args = append(args, buildingID)
	}
	query += fmt.Sprintf(` ORDER BY number LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var list []*entity.Room
	for rows.Next() {
		var rm entity.Room
		if err := rows.Scan(&rm.ID, &rm.BuildingID, &rm.Number, &rm.OwnerName, &rm.OwnerEmail, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, &rm)
	}
	return list, rows.Err()
}

// Delete removes the room.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", mapError(err))
	}
	return nil
}

// References counts the records that block deleting the room.
func (r *RoomRepo) References(ctx context.Context, id string) ([]repository.Reference, error) {
	var printers int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM printers WHERE room_id = $1`, id).Scan(&printers)
	if err != nil {
		return nil, fmt.Errorf("room references: %w", err)
	}
	return []repository.Reference{{Kind: "printers", Count: printers}}, nil
}
