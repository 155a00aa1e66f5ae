package ledger_test

import (
	"context"
	"sort"
	"sync"

	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory store shared by the fakes. The fake tx runner serializes access
// and restores a snapshot when the callback fails, mirroring rollback.
// ─────────────────────────────────────────────────────────────────────────────

type globalKey struct {
	cartridge string
	onBalance bool
}

type buildingKey struct {
	building  string
	cartridge string
	onBalance bool
}

type fakeStore struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
	global    map[globalKey]int64
	building  map[buildingKey]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		global:   map[globalKey]int64{},
		building: map[buildingKey]int64{},
	}
}

func (s *fakeStore) snapshot() ([]*entity.StockMovement, map[globalKey]int64, map[buildingKey]int64) {
	movs := append([]*entity.StockMovement(nil), s.movements...)
	g := map[globalKey]int64{}
	for k, v := range s.global {
		g[k] = v
	}
	b := map[buildingKey]int64{}
	for k, v := range s.building {
		b[k] = v
	}
	return movs, g, b
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	movs, g, b := r.store.snapshot()
	err := fn(&fakeMovementRepo{store: r.store}, &fakeBalanceRepo{store: r.store})
	if err != nil {
		r.store.movements, r.store.global, r.store.building = movs, g, b
	}
	return err
}

// ─────────────────────────────────────────────────────────────────────────────
// Movement repository fake
// ─────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	store *fakeStore
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.store.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) Search(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	var matched []*entity.StockMovement
	for _, m := range r.store.movements {
		if f.CartridgeModelID != "" && m.CartridgeModelID != f.CartridgeModelID {
			continue
		}
		if f.PrinterID != "" && m.PrinterID != f.PrinterID {
			continue
		}
		if f.BuildingID != "" && m.BuildingID != f.BuildingID {
			continue
		}
		if f.CreatedBy != "" && m.CreatedBy != f.CreatedBy {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		matched = append(matched, m)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeMovementRepo) ListAll(_ context.Context, cartridgeModelID string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if cartridgeModelID != "" && m.CartridgeModelID != cartridgeModelID {
			continue
		}
		list = append(list, m)
	}
	return list, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Balance repository fake
// ─────────────────────────────────────────────────────────────────────────────

type fakeBalanceRepo struct {
	store *fakeStore
}

func (r *fakeBalanceRepo) GetGlobal(_ context.Context, cartridgeModelID string, onBalance bool) (*entity.GlobalStock, error) {
	return &entity.GlobalStock{
		CartridgeModelID: cartridgeModelID,
		OnBalance:        onBalance,
		Qty:              r.store.global[globalKey{cartridgeModelID, onBalance}],
	}, nil
}

func (r *fakeBalanceRepo) GetGlobalForUpdate(ctx context.Context, cartridgeModelID string, onBalance bool) (*entity.GlobalStock, error) {
	// Locking materializes the row, like the SQL adapter.
	k := globalKey{cartridgeModelID, onBalance}
	if _, ok := r.store.global[k]; !ok {
		r.store.global[k] = 0
	}
	return r.GetGlobal(ctx, cartridgeModelID, onBalance)
}

func (r *fakeBalanceRepo) UpsertGlobal(_ context.Context, s *entity.GlobalStock) error {
	r.store.global[globalKey{s.CartridgeModelID, s.OnBalance}] = s.Qty
	return nil
}

func (r *fakeBalanceRepo) GetBuilding(_ context.Context, buildingID, cartridgeModelID string, onBalance bool) (*entity.BuildingStock, error) {
	return &entity.BuildingStock{
		BuildingID:       buildingID,
		CartridgeModelID: cartridgeModelID,
		OnBalance:        onBalance,
		Qty:              r.store.building[buildingKey{buildingID, cartridgeModelID, onBalance}],
	}, nil
}

func (r *fakeBalanceRepo) GetBuildingForUpdate(ctx context.Context, buildingID, cartridgeModelID string, onBalance bool) (*entity.BuildingStock, error) {
	k := buildingKey{buildingID, cartridgeModelID, onBalance}
	if _, ok := r.store.building[k]; !ok {
		r.store.building[k] = 0
	}
	return r.GetBuilding(ctx, buildingID, cartridgeModelID, onBalance)
}

func (r *fakeBalanceRepo) UpsertBuilding(_ context.Context, s *entity.BuildingStock) error {
	r.store.building[buildingKey{s.BuildingID, s.CartridgeModelID, s.OnBalance}] = s.Qty
	return nil
}

func (r *fakeBalanceRepo) SumGlobal(_ context.Context, cartridgeModelID string) (int64, error) {
	var sum int64
	for k, v := range r.store.global {
		if k.cartridge == cartridgeModelID {
			sum += v
		}
	}
	return sum, nil
}

func (r *fakeBalanceRepo) SumBuilding(_ context.Context, buildingID, cartridgeModelID string) (int64, error) {
	var sum int64
	for k, v := range r.store.building {
		if k.building == buildingID && k.cartridge == cartridgeModelID {
			sum += v
		}
	}
	return sum, nil
}

func (r *fakeBalanceRepo) ListGlobal(_ context.Context, cartridgeModelID string) ([]*entity.GlobalStock, error) {
	var list []*entity.GlobalStock
	for k, v := range r.store.global {
		if cartridgeModelID != "" && k.cartridge != cartridgeModelID {
			continue
		}
		list = append(list, &entity.GlobalStock{CartridgeModelID: k.cartridge, OnBalance: k.onBalance, Qty: v})
	}
	return list, nil
}

func (r *fakeBalanceRepo) ListBuilding(_ context.Context, cartridgeModelID string) ([]*entity.BuildingStock, error) {
	var list []*entity.BuildingStock
	for k, v := range r.store.building {
		if cartridgeModelID != "" && k.cartridge != cartridgeModelID {
			continue
		}
		list = append(list, &entity.BuildingStock{BuildingID: k.building, CartridgeModelID: k.cartridge, OnBalance: k.onBalance, Qty: v})
	}
	return list, nil
}

func (r *fakeBalanceRepo) ReplaceGlobal(_ context.Context, cartridgeModelID string, rows []*entity.GlobalStock) error {
	for k := range r.store.global {
		if cartridgeModelID == "" || k.cartridge == cartridgeModelID {
			delete(r.store.global, k)
		}
	}
	for _, s := range rows {
		r.store.global[globalKey{s.CartridgeModelID, s.OnBalance}] = s.Qty
	}
	return nil
}

func (r *fakeBalanceRepo) ReplaceBuilding(_ context.Context, cartridgeModelID string, rows []*entity.BuildingStock) error {
	for k := range r.store.building {
		if cartridgeModelID == "" || k.cartridge == cartridgeModelID {
			delete(r.store.building, k)
		}
	}
	for _, s := range rows {
		r.store.building[buildingKey{s.BuildingID, s.CartridgeModelID, s.OnBalance}] = s.Qty
	}
	return nil
}

func (r *fakeBalanceRepo) Overview(_ context.Context, _ string) ([]*repository.OverviewRow, error) {
	return nil, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Catalog fakes (lookups only)
// ─────────────────────────────────────────────────────────────────────────────

type fakeCartridgeRepo struct {
	models map[string]*entity.CartridgeModel
	compat map[string]map[string]bool // cartridge -> printer model -> ok
}

func (r *fakeCartridgeRepo) Create(_ context.Context, cm *entity.CartridgeModel) error {
	r.models[cm.ID] = cm
	return nil
}

func (r *fakeCartridgeRepo) GetByID(_ context.Context, id string) (*entity.CartridgeModel, error) {
	return r.models[id], nil
}

func (r *fakeCartridgeRepo) Update(_ context.Context, cm *entity.CartridgeModel) error {
	r.models[cm.ID] = cm
	return nil
}

func (r *fakeCartridgeRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.CartridgeModel, error) {
	return nil, nil
}

func (r *fakeCartridgeRepo) Delete(_ context.Context, id string) error {
	delete(r.models, id)
	return nil
}

func (r *fakeCartridgeRepo) References(_ context.Context, _ string) ([]repository.Reference, error) {
	return nil, nil
}

func (r *fakeCartridgeRepo) SetCompatiblePrinterModels(_ context.Context, cartridgeModelID string, printerModelIDs []string) error {
	set := map[string]bool{}
	for _, id := range printerModelIDs {
		set[id] = true
	}
	r.compat[cartridgeModelID] = set
	return nil
}

func (r *fakeCartridgeRepo) ListCompatiblePrinterModels(_ context.Context, _ string) ([]*entity.PrinterModel, error) {
	return nil, nil
}

func (r *fakeCartridgeRepo) IsCompatible(_ context.Context, cartridgeModelID, printerModelID string) (bool, error) {
	return r.compat[cartridgeModelID][printerModelID], nil
}

type fakeBuildingRepo struct {
	buildings map[string]*entity.Building
}

func (r *fakeBuildingRepo) Create(_ context.Context, b *entity.Building) error {
	r.buildings[b.ID] = b
	return nil
}

func (r *fakeBuildingRepo) GetByID(_ context.Context, id string) (*entity.Building, error) {
	return r.buildings[id], nil
}

func (r *fakeBuildingRepo) Update(_ context.Context, b *entity.Building) error {
	r.buildings[b.ID] = b
	return nil
}

func (r *fakeBuildingRepo) List(_ context.Context, _, _ int) ([]*entity.Building, error) {
	return nil, nil
}

func (r *fakeBuildingRepo) Delete(_ context.Context, id string) error {
	delete(r.buildings, id)
	return nil
}

func (r *fakeBuildingRepo) References(_ context.Context, _ string) ([]repository.Reference, error) {
	return nil, nil
}

type fakePrinterRepo struct {
	infos map[string]*repository.PrinterInfo
}

func (r *fakePrinterRepo) Create(_ context.Context, _ *entity.Printer) error { return nil }

func (r *fakePrinterRepo) GetByID(_ context.Context, _ string) (*entity.Printer, error) {
	return nil, nil
}

func (r *fakePrinterRepo) GetInfo(_ context.Context, id string) (*repository.PrinterInfo, error) {
	return r.infos[id], nil
}

func (r *fakePrinterRepo) Update(_ context.Context, _ *entity.Printer) error { return nil }

func (r *fakePrinterRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Printer, error) {
	return nil, nil
}

func (r *fakePrinterRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *fakePrinterRepo) References(_ context.Context, _ string) ([]repository.Reference, error) {
	return nil, nil
}
