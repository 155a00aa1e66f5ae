package ledger

import (
	"context"
	"errors"
	"sort"

	"github.com/campus-it/printstock/internal/domain"
	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

// errDryRunRollback aborts the reconciliation transaction after the report
// has been computed, so a dry run never writes anything.
var errDryRunRollback = errors.New("reconcile dry run rollback")

// ReconcileOptions control one reconciliation pass.
type ReconcileOptions struct {
	// DryRun computes and reports the diff, then rolls everything back.
	DryRun bool
	// CartridgeModelID narrows the pass to one cartridge model when non-empty.
	CartridgeModelID string
}

// DiffStats counts snapshot rows touched by a reconciliation pass.
type DiffStats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Changed int `json:"changed"`
}

// TotalAffected is the number of rows that differ between the stored and the
// recomputed snapshots.
func (d DiffStats) TotalAffected() int { return d.Added + d.Removed + d.Changed }

// BalanceChange is one drifted snapshot row. BuildingID is empty for global
// rows.
type BalanceChange struct {
	BuildingID       string `json:"building_id,omitempty"`
	CartridgeModelID string `json:"cartridge_model_id"`
	OnBalance        bool   `json:"on_balance"`
	Before           int64  `json:"before"`
	After            int64  `json:"after"`
}

// ReconcileReport is the outcome of one reconciliation pass.
type ReconcileReport struct {
	DryRun    bool            `json:"dry_run"`
	Movements int             `json:"movements"`
	Global    DiffStats       `json:"global"`
	Building  DiffStats       `json:"building"`
	Changes   []BalanceChange `json:"changes,omitempty"`
	// NegativeKeys lists recomputed balances below zero: the movement log
	// itself is inconsistent, which live mode refuses to persist silently.
	NegativeKeys []BalanceChange `json:"negative_keys,omitempty"`
}

// Drifted reports whether any snapshot row disagrees with the movement log.
func (r *ReconcileReport) Drifted() bool {
	return r.Global.TotalAffected() > 0 || r.Building.TotalAffected() > 0
}

// ReconcileUseCase recomputes the balance snapshots from the full movement
// log. It is the only code path allowed to repair drift; the ledger engine
// never self-corrects.
type ReconcileUseCase struct {
	txRunner TxRunner
}

// NewReconcileUseCase builds the use case.
func NewReconcileUseCase(txRunner TxRunner) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner}
}

type globalKey struct {
	cartridge string
	onBalance bool
}

type buildingKey struct {
	building  string
	cartridge string
	onBalance bool
}

// Reconcile replays the movement log, diffs the result against the stored
// snapshots and, unless DryRun is set, replaces the stored rows with the
// recomputed ones. Running it twice without new movements yields identical
// reports with empty diffs the second time.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, opts ReconcileOptions) (*ReconcileReport, error) {
	report := &ReconcileReport{DryRun: opts.DryRun}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		movements, err := movRepo.ListAll(ctx, opts.CartridgeModelID)
		if err != nil {
			return err
		}
		report.Movements = len(movements)

		newGlobal := map[globalKey]int64{}
		newBuilding := map[buildingKey]int64{}
		for _, m := range movements {
			delta := m.SignedQty()
			newGlobal[globalKey{m.CartridgeModelID, m.OnBalance}] += delta
			newBuilding[buildingKey{m.BuildingID, m.CartridgeModelID, m.OnBalance}] += delta
		}

		oldGlobalRows, err := balanceRepo.ListGlobal(ctx, opts.CartridgeModelID)
		if err != nil {
			return err
		}
		oldBuildingRows, err := balanceRepo.ListBuilding(ctx, opts.CartridgeModelID)
		if err != nil {
			return err
		}

		oldGlobal := map[globalKey]int64{}
		for _, row := range oldGlobalRows {
			oldGlobal[globalKey{row.CartridgeModelID, row.OnBalance}] = row.Qty
		}
		oldBuilding := map[buildingKey]int64{}
		for _, row := range oldBuildingRows {
			oldBuilding[buildingKey{row.BuildingID, row.CartridgeModelID, row.OnBalance}] = row.Qty
		}

		report.Global = diffGlobal(oldGlobal, newGlobal, report)
		report.Building = diffBuilding(oldBuilding, newBuilding, report)

		for k, qty := range newGlobal {
			if qty < 0 {
				report.NegativeKeys = append(report.NegativeKeys, BalanceChange{
					CartridgeModelID: k.cartridge, OnBalance: k.onBalance, After: qty,
				})
			}
		}
		for k, qty := range newBuilding {
			if qty < 0 {
				report.NegativeKeys = append(report.NegativeKeys, BalanceChange{
					BuildingID: k.building, CartridgeModelID: k.cartridge, OnBalance: k.onBalance, After: qty,
				})
			}
		}
		sortChanges(report.Changes)
		sortChanges(report.NegativeKeys)

		if opts.DryRun {
			return errDryRunRollback
		}
		if len(report.NegativeKeys) > 0 {
			// A negative recomputed balance means the log itself violates the
			// invariant; repairing the snapshot would only hide it.
			return errDryRunRollback
		}

		globals := make([]*entity.GlobalStock, 0, len(newGlobal))
		for k, qty := range newGlobal {
			globals = append(globals, &entity.GlobalStock{CartridgeModelID: k.cartridge, OnBalance: k.onBalance, Qty: qty})
		}
		buildings := make([]*entity.BuildingStock, 0, len(newBuilding))
		for k, qty := range newBuilding {
			buildings = append(buildings, &entity.BuildingStock{BuildingID: k.building, CartridgeModelID: k.cartridge, OnBalance: k.onBalance, Qty: qty})
		}
		if err := balanceRepo.ReplaceGlobal(ctx, opts.CartridgeModelID, globals); err != nil {
			return err
		}
		return balanceRepo.ReplaceBuilding(ctx, opts.CartridgeModelID, buildings)
	})
	if err != nil && !errors.Is(err, errDryRunRollback) {
		return nil, err
	}
	if !opts.DryRun && len(report.NegativeKeys) > 0 {
		return report, domain.ErrIntegrity
	}
	return report, nil
}

func diffGlobal(stored, computed map[globalKey]int64, report *ReconcileReport) DiffStats {
	var stats DiffStats
	for k, after := range computed {
		before, existed := stored[k]
		switch {
		case !existed:
			stats.Added++
			report.Changes = append(report.Changes, BalanceChange{CartridgeModelID: k.cartridge, OnBalance: k.onBalance, After: after})
		case before != after:
			stats.Changed++
			report.Changes = append(report.Changes, BalanceChange{CartridgeModelID: k.cartridge, OnBalance: k.onBalance, Before: before, After: after})
		}
	}
	for k, before := range stored {
		if _, ok := computed[k]; !ok {
			stats.Removed++
			report.Changes = append(report.Changes, BalanceChange{CartridgeModelID: k.cartridge, OnBalance: k.onBalance, Before: before})
		}
	}
	return stats
}

func diffBuilding(stored, computed map[buildingKey]int64, report *ReconcileReport) DiffStats {
	var stats DiffStats
	for k, after := range computed {
		before, existed := stored[k]
		switch {
		case !existed:
			stats.Added++
			report.Changes = append(report.Changes, BalanceChange{BuildingID: k.building, CartridgeModelID: k.cartridge, OnBalance: k.onBalance, After: after})
		case before != after:
			stats.Changed++
			report.Changes = append(report.Changes, BalanceChange{BuildingID: k.building, CartridgeModelID: k.cartridge, OnBalance: k.onBalance, Before: before, After: after})
		}
	}
	for k, before := range stored {
		if _, ok := computed[k]; !ok {
			stats.Removed++
			report.Changes = append(report.Changes, BalanceChange{BuildingID: k.building, CartridgeModelID: k.cartridge, OnBalance: k.onBalance, Before: before})
		}
	}
	return stats
}

func sortChanges(changes []BalanceChange) {
	sort.Slice(changes, func(i, j int) bool {
		a, b := changes[i], changes[j]
		if a.BuildingID != b.BuildingID {
			return a.BuildingID < b.BuildingID
		}
		if a.CartridgeModelID != b.CartridgeModelID {
			return a.CartridgeModelID < b.CartridgeModelID
		}
		return !a.OnBalance && b.OnBalance
	})
}
