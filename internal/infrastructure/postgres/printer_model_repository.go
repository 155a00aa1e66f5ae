package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

var _ repository.PrinterModelRepository = (*PrinterModelRepo)(nil)

// PrinterModelRepo is the PostgreSQL adapter for printer models (usable
// with pool or tx).
type PrinterModelRepo struct {
	q Querier
}

// NewPrinterModelRepository builds the adapter. Pass pool or tx (Querier).
func NewPrinterModelRepository(q Querier) *PrinterModelRepo {
	return &PrinterModelRepo{q: q}
}

// Create persists a printer model.
func (r *PrinterModelRepo) Create(ctx context.Context, pm *entity.PrinterModel) error {
	query := `
		INSERT INTO printer_models (id, vendor, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, pm.ID, pm.Vendor, pm.Model, pm.CreatedAt, pm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create printer model: %w", mapError(err))
	}
	return nil
}

// GetByID returns a printer model or nil when absent.
func (r *PrinterModelRepo) GetByID(ctx context.Context, id string) (*entity.PrinterModel, error) {
	query := `SELECT id, vendor, model, created_at, updated_at FROM printer_models WHERE id = $1`
	var pm entity.PrinterModel
	err := r.q.QueryRow(ctx, query, id).Scan(&pm.ID, &pm.Vendor, &pm.Model, &pm.CreatedAt, &pm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get printer model: %w", err)
	}
	return &pm, nil
}

// Update persists the mutable fields.
func (r *PrinterModelRepo) Update(ctx context.Context, pm *entity.PrinterModel) error {
	query := `UPDATE printer_models SET vendor = $2, model = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, pm.ID, pm.Vendor, pm.Model, pm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update printer model: %w", mapError(err))
	}
	return nil
}

// List returns printer models ordered by vendor and model.
func (r *PrinterModelRepo) List(ctx context.Context, limit, offset int) ([]*entity.PrinterModel, error) {
	query := `
		SELECT id, vendor, model, created_at, updated_at
		FROM printer_models ORDER BY vendor, model LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list printer models: %w", err)
	}
	defer rows.Close()

	var list []*entity.PrinterModel
	for rows.Next() {
		var pm entity.PrinterModel
		if err := rows.Scan(&pm.ID, &pm.Vendor, &pm.Model, &pm.CreatedAt, &pm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan printer model: %w", err)
		}
		list = append(list, &pm)
	}
	return list, rows.Err()
}

// Delete removes the printer model.
func (r *PrinterModelRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM printer_models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete printer model: %w", mapError(err))
	}
	return nil
}

// References counts the records that block deleting the printer model.
func (r *PrinterModelRepo) References(ctx context.Context, id string) ([]repository.Reference, error) {
	query := `
		SELECT
			(SELECT count(*) FROM printers WHERE printer_model_id = $1),
			(SELECT count(*) FROM cartridge_printer_models WHERE printer_model_id = $1)`
	var printers, cartridges int
	if err := r.q.QueryRow(ctx, query, id).Scan(&printers, &cartridges); err != nil {
		return nil, fmt.Errorf("printer model references: %w", err)
	}
	return []repository.Reference{
		{Kind: "printers", Count: printers},
		{Kind: "compatible_cartridges", Count: cartridges},
	}, nil
}
