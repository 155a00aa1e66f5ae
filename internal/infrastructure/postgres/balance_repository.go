package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo is the PostgreSQL adapter for the materialized balance
// snapshots (usable with pool or tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository builds the adapter. Pass pool or tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// GetGlobal returns the global snapshot row, zero-quantity when absent.
func (r *BalanceRepo) GetGlobal(ctx context.Context, cartridgeModelID string, onBalance bool) (*entity.GlobalStock, error) {
	return r.getGlobal(ctx, cartridgeModelID, onBalance, "")
}

// GetGlobalForUpdate locks the global snapshot row (SELECT FOR UPDATE).
// The row is materialized at zero first: a bare SELECT on an absent key
// locks nothing, so two writers could both read zero and the later upsert
// would overwrite the earlier delta.
func (r *BalanceRepo) GetGlobalForUpdate(ctx context.Context, cartridgeModelID string, onBalance bool) (*entity.GlobalStock, error) {
	init := `
		INSERT INTO global_stock (cartridge_model_id, on_balance, qty, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (cartridge_model_id, on_balance) DO NOTHING`
	if _, err := r.q.Exec(ctx, init, cartridgeModelID, onBalance); err != nil {
		return nil, fmt.Errorf("init global stock: %w", mapError(err))
	}
	return r.getGlobal(ctx, cartridgeModelID, onBalance, " FOR UPDATE")
}

func (r *BalanceRepo) getGlobal(ctx context.Context, cartridgeModelID string, onBalance bool, suffix string) (*entity.GlobalStock, error) {
	query := `
		SELECT cartridge_model_id, on_balance, qty, updated_at
		FROM global_stock WHERE cartridge_model_id = $1 AND on_balance = $2` + suffix
	var s entity.GlobalStock
	err := r.q.QueryRow(ctx, query, cartridgeModelID, onBalance).Scan(
		&s.CartridgeModelID, &s.OnBalance, &s.Qty, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.GlobalStock{CartridgeModelID: cartridgeModelID, OnBalance: onBalance}, nil
		}
		return nil, fmt.Errorf("get global stock: %w", err)
	}
	return &s, nil
}

// UpsertGlobal inserts or updates the global snapshot row.
func (r *BalanceRepo) UpsertGlobal(ctx context.Context, s *entity.GlobalStock) error {
	query := `
		INSERT INTO global_stock (cartridge_model_id, on_balance, qty, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (cartridge_model_id, on_balance)
		DO UPDATE SET qty = EXCLUDED.qty, updated_at = now()`
	_, err := r.q.Exec(ctx, query, s.CartridgeModelID, s.OnBalance, s.Qty)
	if err != nil {
		return fmt.Errorf("upsert global stock: %w", mapError(err))
	}
	return nil
}

// GetBuilding returns the building snapshot row, zero-quantity when absent.
func (r *BalanceRepo) GetBuilding(ctx context.Context, buildingID, cartridgeModelID string, onBalance bool) (*entity.BuildingStock, error) {
	return r.getBuilding(ctx, buildingID, cartridgeModelID, onBalance, "")
}

// GetBuildingForUpdate locks the building snapshot row (SELECT FOR UPDATE),
// materializing it at zero first so the lock always lands on a real row.
func (r *BalanceRepo) GetBuildingForUpdate(ctx context.Context, buildingID, cartridgeModelID string, onBalance bool) (*entity.BuildingStock, error) {
	init := `
		INSERT INTO building_stock (building_id, cartridge_model_id, on_balance, qty, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (building_id, cartridge_model_id, on_balance) DO NOTHING`
	if _, err := r.q.Exec(ctx, init, buildingID, cartridgeModelID, onBalance); err != nil {
		return nil, fmt.Errorf("init building stock: %w", mapError(err))
	}
	return r.getBuilding(ctx, buildingID, cartridgeModelID, onBalance, " FOR UPDATE")
}

func (r *BalanceRepo) getBuilding(ctx context.Context, buildingID, cartridgeModelID string, onBalance bool, suffix string) (*entity.BuildingStock, error) {
	query := `
		SELECT building_id, cartridge_model_id, on_balance, qty, updated_at
		FROM building_stock
		WHERE building_id = $1 AND cartridge_model_id = $2 AND on_balance = $3` + suffix
	var s entity.BuildingStock
	err := r.q.QueryRow(ctx, query, buildingID, cartridgeModelID, onBalance).Scan(
		&s.BuildingID, &s.CartridgeModelID, &s.OnBalance, &s.Qty, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.BuildingStock{BuildingID: buildingID, CartridgeModelID: cartridgeModelID, OnBalance: onBalance}, nil
		}
		return nil, fmt.Errorf("get building stock: %w", err)
	}
	return &s, nil
}

// UpsertBuilding inserts or updates the building snapshot row.
func (r *BalanceRepo) UpsertBuilding(ctx context.Context, s *entity.BuildingStock) error {
	query := `
		INSERT INTO building_stock (building_id, cartridge_model_id, on_balance, qty, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (building_id, cartridge_model_id, on_balance)
		DO UPDATE SET qty = EXCLUDED.qty, updated_at = now()`
	_, err := r.q.Exec(ctx, query, s.BuildingID, s.CartridgeModelID, s.OnBalance, s.Qty)
	if err != nil {
		return fmt.Errorf("upsert building stock: %w", mapError(err))
	}
	return nil
}

// SumGlobal adds the global snapshot rows across both on-balance flags.
func (r *BalanceRepo) SumGlobal(ctx context.Context, cartridgeModelID string) (int64, error) {
	var qty int64
	err := r.q.QueryRow(ctx,
		`SELECT coalesce(sum(qty), 0) FROM global_stock WHERE cartridge_model_id = $1`,
		cartridgeModelID,
	).Scan(&qty)
	if err != nil {
		return 0, fmt.Errorf("sum global stock: %w", err)
	}
	return qty, nil
}

// SumBuilding adds the building snapshot rows across both on-balance flags.
func (r *BalanceRepo) SumBuilding(ctx context.Context, buildingID, cartridgeModelID string) (int64, error) {
	var qty int64
	err := r.q.QueryRow(ctx,
		`SELECT coalesce(sum(qty), 0) FROM building_stock WHERE building_id = $1 AND cartridge_model_id = $2`,
		buildingID, cartridgeModelID,
	).Scan(&qty)
	if err != nil {
		return 0, fmt.Errorf("sum building stock: %w", err)
	}
	return qty, nil
}

// ListGlobal returns all global snapshot rows, optionally narrowed to one
// cartridge model.
func (r *BalanceRepo) ListGlobal(ctx context.Context, cartridgeModelID string) ([]*entity.GlobalStock, error) {
	query := `SELECT cartridge_model_id, on_balance, qty, updated_at FROM global_stock`
	var args []any
	if cartridgeModelID != "" {
		query += ` WHERE cartridge_model_id = $1`
		args = append(args, cartridgeModelID)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list global stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.GlobalStock
	for rows.Next() {
		var s entity.GlobalStock
		if err := rows.Scan(&s.CartridgeModelID, &s.OnBalance, &s.Qty, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan global stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListBuilding returns all building snapshot rows, optionally narrowed to
// one cartridge model.
func (r *BalanceRepo) ListBuilding(ctx context.Context, cartridgeModelID string) ([]*entity.BuildingStock, error) {
	query := `SELECT building_id, cartridge_model_id, on_balance, qty, updated_at FROM building_stock`
	var args []any
	if cartridgeModelID != "" {
		query += ` WHERE cartridge_model_id = $1`
		args = append(args, cartridgeModelID)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list building stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.BuildingStock
	for rows.Next() {
		var s entity.BuildingStock
		if err := rows.Scan(&s.BuildingID, &s.CartridgeModelID, &s.OnBalance, &s.Qty, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan building stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ReplaceGlobal swaps the matching global snapshot rows for the recomputed
// set. Reconciliation only; callers run it inside a transaction.
func (r *BalanceRepo) ReplaceGlobal(ctx context.Context, cartridgeModelID string, rows []*entity.GlobalStock) error {
	del := `DELETE FROM global_stock`
	var args []any
	if cartridgeModelID != "" {
		del += ` WHERE cartridge_model_id = $1`
		args = append(args, cartridgeModelID)
	}
	if _, err := r.q.Exec(ctx, del, args...); err != nil {
		return fmt.Errorf("clear global stock: %w", err)
	}
	for _, s := range rows {
		if err := r.UpsertGlobal(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceBuilding swaps the matching building snapshot rows for the
// recomputed set. Reconciliation only; callers run it inside a transaction.
func (r *BalanceRepo) ReplaceBuilding(ctx context.Context, cartridgeModelID string, rows []*entity.BuildingStock) error {
	del := `DELETE FROM building_stock`
	var args []any
	if cartridgeModelID != "" {
		del += ` WHERE cartridge_model_id = $1`
		args = append(args, cartridgeModelID)
	}
	if _, err := r.q.Exec(ctx, del, args...); err != nil {
		return fmt.Errorf("clear building stock: %w", err)
	}
	for _, s := range rows {
		if err := r.UpsertBuilding(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Overview aggregates current stock per cartridge model with a per-building
// breakdown. q filters by cartridge vendor/code/title or by a compatible
// printer model's vendor/model.
func (r *BalanceRepo) Overview(ctx context.Context, q string) ([]*repository.OverviewRow, error) {
	query := `
		SELECT cm.id, cm.vendor, cm.code, cm.title, coalesce(sum(gs.qty), 0)
		FROM cartridge_models cm
		LEFT JOIN global_stock gs ON gs.cartridge_model_id = cm.id`
	var args []any
	if q != "" {
		args = append(args, "%"+q+"%")
		query += `
		WHERE cm.vendor ILIKE $1 OR cm.code ILIKE $1 OR cm.title ILIKE $1
			OR cm.id IN (
				SELECT cpm.cartridge_model_id
				FROM cartridge_printer_models cpm
				JOIN printer_models pm ON pm.id = cpm.printer_model_id
				WHERE pm.vendor ILIKE $1 OR pm.model ILIKE $1)`
	}
	query += `
		GROUP BY cm.id, cm.vendor, cm.code, cm.title
		ORDER BY cm.vendor, cm.code`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock overview: %w", err)
	}
	defer rows.Close()

	var list []*repository.OverviewRow
	index := map[string]*repository.OverviewRow{}
	for rows.Next() {
		var row repository.OverviewRow
		if err := rows.Scan(&row.CartridgeModelID, &row.Vendor, &row.Code, &row.Title, &row.GlobalQty); err != nil {
			return nil, fmt.Errorf("scan overview: %w", err)
		}
		list = append(list, &row)
		index[row.CartridgeModelID] = &row
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bQuery := `
		SELECT bs.cartridge_model_id, b.id, b.name, sum(bs.qty)
		FROM building_stock bs
		JOIN buildings b ON b.id = bs.building_id
		GROUP BY bs.cartridge_model_id, b.id, b.name
		ORDER BY b.name`
	bRows, err := r.q.Query(ctx, bQuery)
	if err != nil {
		return nil, fmt.Errorf("overview buildings: %w", err)
	}
	defer bRows.Close()

	for bRows.Next() {
		var cartridgeModelID string
		var bq repository.BuildingQty
		if err := bRows.Scan(&cartridgeModelID, &bq.BuildingID, &bq.BuildingName, &bq.Qty); err != nil {
			return nil, fmt.Errorf("scan overview building: %w", err)
		}
		if row, ok := index[cartridgeModelID]; ok {
			row.Buildings = append(row.Buildings, bq)
		}
	}
	return list, bRows.Err()
}
