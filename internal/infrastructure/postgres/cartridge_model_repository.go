package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

var _ repository.CartridgeModelRepository = (*CartridgeModelRepo)(nil)

// CartridgeModelRepo is the PostgreSQL adapter for cartridge models and
// their compatibility links (usable with pool or tx).
type CartridgeModelRepo struct {
	q Querier
}

// NewCartridgeModelRepository builds the adapter. Pass pool or tx (Querier).
func NewCartridgeModelRepository(q Querier) *CartridgeModelRepo {
	return &CartridgeModelRepo{q: q}
}

// Create persists a cartridge model.
func (r *CartridgeModelRepo) Create(ctx context.Context, cm *entity.CartridgeModel) error {
	query := `
		INSERT INTO cartridge_models (id, vendor, code, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, cm.ID, cm.Vendor, cm.Code, cm.Title, cm.CreatedAt, cm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create cartridge model: %w", mapError(err))
	}
	return nil
}

// GetByID returns a cartridge model or nil when absent.
func (r *CartridgeModelRepo) GetByID(ctx context.Context, id string) (*entity.CartridgeModel, error) {
	query := `SELECT id, vendor, code, title, created_at, updated_at FROM cartridge_models WHERE id = $1`
	var cm entity.CartridgeModel
	err := r.q.QueryRow(ctx, query, id).Scan(&cm.ID, &cm.Vendor, &cm.Code, &cm.Title, &cm.CreatedAt, &cm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cartridge model: %w", err)
	}
	return &cm, nil
}

// Update persists the mutable fields.
func (r *CartridgeModelRepo) Update(ctx context.Context, cm *entity.CartridgeModel) error {
	query := `UPDATE cartridge_models SET vendor = $2, code = $3, title = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, cm.ID, cm.Vendor, cm.Code, cm.Title, cm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cartridge model: %w", mapError(err))
	}
	return nil
}

// List returns cartridge models ordered by vendor and code, optionally
// filtered by q against vendor, code and title.
func (r *CartridgeModelRepo) List(ctx context.Context, q string, limit, offset int) ([]*entity.CartridgeModel, error) {
	query := `SELECT id, vendor, code, title, created_at, updated_at FROM cartridge_models`
	args := []any{}
	if q != "" {
		query += ` WHERE vendor ILIKE $1 OR code ILIKE $1 OR title ILIKE $1`
		args = append(args, "%"+q+"%")
	}
	query += fmt.Sprintf(` ORDER BY vendor, code LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cartridge models: %w", err)
	}
	defer rows.Close()

	var list []*entity.CartridgeModel
	for rows.Next() {
		var cm entity.CartridgeModel
		if err := rows.Scan(&cm.ID, &cm.Vendor, &cm.Code, &cm.Title, &cm.CreatedAt, &cm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cartridge model: %w", err)
		}
		list = append(list, &cm)
	}
	return list, rows.Err()
}

// Delete removes the cartridge model. Compatibility links cascade; empty
// snapshot rows are cleared first so only real stock restricts.
func (r *CartridgeModelRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM global_stock WHERE cartridge_model_id = $1 AND qty = 0`, id); err != nil {
		return fmt.Errorf("delete cartridge model: %w", mapError(err))
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM building_stock WHERE cartridge_model_id = $1 AND qty = 0`, id); err != nil {
		return fmt.Errorf("delete cartridge model: %w", mapError(err))
	}
	_, err := r.q.Exec(ctx, `DELETE FROM cartridge_models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cartridge model: %w", mapError(err))
	}
	return nil
}

// References counts the records that block deleting the cartridge model.
func (r *CartridgeModelRepo) References(ctx context.Context, id string) ([]repository.Reference, error) {
	query := `
		SELECT
			(SELECT count(*) FROM stock_movements WHERE cartridge_model_id = $1),
			(SELECT count(*) FROM global_stock WHERE cartridge_model_id = $1 AND qty <> 0)
			+ (SELECT count(*) FROM building_stock WHERE cartridge_model_id = $1 AND qty <> 0)`
	var movements, stock int
	if err := r.q.QueryRow(ctx, query, id).Scan(&movements, &stock); err != nil {
		return nil, fmt.Errorf("cartridge model references: %w", err)
	}
	return []repository.Reference{
		{Kind: "movements", Count: movements},
		{Kind: "stock", Count: stock},
	}, nil
}

// SetCompatiblePrinterModels replaces the compatibility link set.
func (r *CartridgeModelRepo) SetCompatiblePrinterModels(ctx context.Context, cartridgeModelID string, printerModelIDs []string) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM cartridge_printer_models WHERE cartridge_model_id = $1`, cartridgeModelID); err != nil {
		return fmt.Errorf("clear compatibility: %w", err)
	}
	for _, pmID := range printerModelIDs {
		_, err := r.q.Exec(ctx, `
			INSERT INTO cartridge_printer_models (cartridge_model_id, printer_model_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, cartridgeModelID, pmID)
		if err != nil {
			return fmt.Errorf("link printer model: %w", mapError(err))
		}
	}
	return nil
}

// ListCompatiblePrinterModels returns the printer models linked to the
// cartridge model, ordered by vendor and model.
func (r *CartridgeModelRepo) ListCompatiblePrinterModels(ctx context.Context, cartridgeModelID string) ([]*entity.PrinterModel, error) {
	query := `
		SELECT pm.id, pm.vendor, pm.model, pm.created_at, pm.updated_at
		FROM printer_models pm
		JOIN cartridge_printer_models cpm ON cpm.printer_model_id = pm.id
		WHERE cpm.cartridge_model_id = $1
		ORDER BY pm.vendor, pm.model`
	rows, err := r.q.Query(ctx, query, cartridgeModelID)
	if err != nil {
		return nil, fmt.Errorf("list compatible printer models: %w", err)
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

// IsCompatible reports whether the cartridge model is linked to the printer
// model.
func (r *CartridgeModelRepo) IsCompatible(ctx context.Context, cartridgeModelID, printerModelID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM cartridge_printer_models
			WHERE cartridge_model_id = $1 AND printer_model_id = $2)`,
		cartridgeModelID, printerModelID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check compatibility: %w", err)
	}
	return ok, nil
}
