package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, type, cartridge_model_id, qty, on_balance, building_id, printer_id,
	issued_to, comment, created_by, created_at,
	building_snapshot, room_snapshot, printer_model_snapshot, printer_tag_snapshot`

// MovementRepo is the PostgreSQL adapter for the movement log (usable with
// pool or tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository builds the adapter. Pass pool or tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create appends one movement. The log is insert-only; there is no Update
// or Delete on this adapter.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	printerID := (*string)(nil)
	if m.PrinterID != "" {
		printerID = &m.PrinterID
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Type, m.CartridgeModelID, m.Qty, m.OnBalance, m.BuildingID, printerID,
		m.IssuedTo, m.Comment, m.CreatedBy, m.CreatedAt,
		m.BuildingSnapshot, m.RoomSnapshot, m.PrinterModelSnapshot, m.PrinterTagSnapshot,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", mapError(err))
	}
	return nil
}

// GetByID returns one movement or nil when absent.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Search returns one journal page (created_at DESC, id DESC) plus the total
// match count. Filters combine with AND.
func (r *MovementRepo) Search(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	where, args := buildFilter(f)

	var total int
	countQuery := `SELECT count(*) FROM stock_movements` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+movementColumns+` FROM stock_movements%s
		ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ListAll returns the log in replay order (created_at ASC, id ASC),
// optionally narrowed to one cartridge model.
func (r *MovementRepo) ListAll(ctx context.Context, cartridgeModelID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements`
	var args []any
	if cartridgeModelID != "" {
		query += ` WHERE cartridge_model_id = $1`
		args = append(args, cartridgeModelID)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// buildFilter renders the WHERE clause for a journal search.
func buildFilter(f repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CartridgeModelID != "" {
		add("cartridge_model_id = $%d", f.CartridgeModelID)
	}
	if f.PrinterID != "" {
		add("printer_id = $%d", f.PrinterID)
	}
	if f.BuildingID != "" {
		add("building_id = $%d", f.BuildingID)
	}
	if f.CreatedBy != "" {
		add("created_by = $%d", f.CreatedBy)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if f.Q != "" {
		args = append(args, "%"+f.Q+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(issued_to ILIKE $%d OR comment ILIKE $%d
			OR building_snapshot ILIKE $%d OR room_snapshot ILIKE $%d
			OR printer_model_snapshot ILIKE $%d OR printer_tag_snapshot ILIKE $%d
			OR cartridge_model_id IN (
				SELECT id FROM cartridge_models
				WHERE vendor ILIKE $%d OR code ILIKE $%d OR title ILIKE $%d))`,
			n, n, n, n, n, n, n, n, n))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var printerID *string
	err := row.Scan(
		&m.ID, &m.Type, &m.CartridgeModelID, &m.Qty, &m.OnBalance, &m.BuildingID, &printerID,
		&m.IssuedTo, &m.Comment, &m.CreatedBy, &m.CreatedAt,
		&m.BuildingSnapshot, &m.RoomSnapshot, &m.PrinterModelSnapshot, &m.PrinterTagSnapshot,
	)
	if err != nil {
		return nil, err
	}
	if printerID != nil {
		m.PrinterID = *printerID
	}
	return &m, nil
}
