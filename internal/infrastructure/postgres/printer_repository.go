package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

var _ repository.PrinterRepository = (*PrinterRepo)(nil)

// PrinterRepo is the PostgreSQL adapter for printers (usable with pool
// or tx).
type PrinterRepo struct {
	q Querier
}

// NewPrinterRepository builds the adapter. Pass pool or tx (Querier).
func NewPrinterRepository(q Querier) *PrinterRepo {
	return &PrinterRepo{q: q}
}

// Create persists a printer.
func (r *PrinterRepo) Create(ctx context.Context, p *entity.Printer) error {
	query := `
		INSERT INTO printers (id, room_id, printer_model_id, inventory_tag, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.RoomID, p.PrinterModelID, p.InventoryTag, p.Note, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create printer: %w", mapError(err))
	}
	return nil
}

// GetByID returns a printer or nil when absent.
func (r *PrinterRepo) GetByID(ctx context.Context, id string) (*entity.Printer, error) {
	query := `
		SELECT id, room_id, printer_model_id, inventory_tag, note, created_at, updated_at
		FROM printers WHERE id = $1`
	var p entity.Printer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.RoomID, &p.PrinterModelID, &p.InventoryTag, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get printer: %w", err)
	}
	return &p, nil
}

// GetInfo returns the printer with room, building and model resolved in one
// query, or nil when absent.
func (r *PrinterRepo) GetInfo(ctx context.Context, id string) (*repository.PrinterInfo, error) {
	query := `
		SELECT p.id, rm.id, rm.number, rm.owner_name,
			b.id, b.name,
			pm.id, pm.vendor || ' ' || pm.model,
			p.inventory_tag
		FROM printers p
		JOIN rooms rm ON rm.id = p.room_id
		JOIN buildings b ON b.id = rm.building_id
		JOIN printer_models pm ON pm.id = p.printer_model_id
		WHERE p.id = $1`
	var info repository.PrinterInfo
	err := r.q.QueryRow(ctx, query, id).Scan(
		&info.ID, &info.RoomID, &info.RoomNumber, &info.RoomOwnerName,
		&info.BuildingID, &info.BuildingName,
		&info.PrinterModelID, &info.PrinterModelName,
		&info.InventoryTag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get printer info: %w", err)
	}
	return &info, nil
}

// Update persists the mutable fields.
func (r *PrinterRepo) Update(ctx context.Context, p *entity.Printer) error {
	query := `
		UPDATE printers SET room_id = $2, printer_model_id = $3, inventory_tag = $4, note = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.RoomID, p.PrinterModelID, p.InventoryTag, p.Note, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update printer: %w", mapError(err))
	}
	return nil
}

// List returns printers ordered by inventory tag, optionally narrowed to one
// building.
func (r *PrinterRepo) List(ctx context.Context, buildingID string, limit, offset int) ([]*entity.Printer, error) {
	query := `
		SELECT p.id, p.room_id, p.printer_model_id, p.inventory_tag, p.note, p.created_at, p.updated_at
		FROM printers p`
	args := []any{}
	if buildingID != "" {
		query += ` JOIN rooms rm ON rm.id = p.room_id WHERE rm.building_id = $1`
		args = append(args, buildingID)
	}
	query += fmt.Sprintf(` ORDER BY p.inventory_tag LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list printers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Printer
	for rows.Next() {
		var p entity.Printer
		if err := rows.Scan(&p.ID, &p.RoomID, &p.PrinterModelID, &p.InventoryTag, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan printer: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete removes the printer.
func (r *PrinterRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM printers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete printer: %w", mapError(err))
	}
	return nil
}

// References counts the records that block deleting the printer.
func (r *PrinterRepo) References(ctx context.Context, id string) ([]repository.Reference, error) {
	var movements int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements WHERE printer_id = $1`, id).Scan(&movements)
	if err != nil {
		return nil, fmt.Errorf("printer references: %w", err)
	}
	return []repository.Reference{{Kind: "movements", Count: movements}}, nil
}
