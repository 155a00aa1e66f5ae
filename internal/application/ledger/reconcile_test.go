package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-it/printstock/internal/application/ledger"
	"github.com/campus-it/printstock/internal/domain"
	"github.com/campus-it/printstock/internal/domain/entity"
)

// seedMovements puts a small log into the store without touching the
// snapshots, so reconciliation has drift to find.
func seedMovements(store *fakeStore, movements ...*entity.StockMovement) {
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i, m := range movements {
		if m.ID == "" {
			m.ID = string(rune('a' + i))
		}
		m.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		store.movements = append(store.movements, m)
	}
}

func inMov(cartridge, building string, qty int64) *entity.StockMovement {
	return &entity.StockMovement{
		Type: entity.MovementTypeIN, CartridgeModelID: cartridge,
		BuildingID: building, Qty: qty,
	}
}

func outMov(cartridge, building string, qty int64) *entity.StockMovement {
	return &entity.StockMovement{
		Type: entity.MovementTypeOUT, CartridgeModelID: cartridge,
		BuildingID: building, Qty: qty,
	}
}

func TestReconcile_RepairsDriftedSnapshots(t *testing.T) {
	store := newFakeStore()
	seedMovements(store,
		inMov(testCartridge, testBuilding, 10),
		outMov(testCartridge, testBuilding, 3),
		inMov(testCartridge, testAnnex, 2),
	)
	// Stored snapshots disagree with the log.
	store.global[globalKey{testCartridge, false}] = 100
	store.building[buildingKey{testBuilding, testCartridge, false}] = 1

	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store})
	report, err := uc.Reconcile(context.Background(), ledger.ReconcileOptions{})
	require.NoError(t, err)

	assert.False(t, report.DryRun)
	assert.Equal(t, 3, report.Movements)
	assert.True(t, report.Drifted())
	assert.Equal(t, 1, report.Global.Changed)
	assert.Equal(t, 1, report.Building.Changed)
	assert.Equal(t, 1, report.Building.Added, "annex row was missing entirely")

	assert.Equal(t, int64(9), store.global[globalKey{testCartridge, false}])
	assert.Equal(t, int64(7), store.building[buildingKey{testBuilding, testCartridge, false}])
	assert.Equal(t, int64(2), store.building[buildingKey{testAnnex, testCartridge, false}])
}

func TestReconcile_SecondRunIsClean(t *testing.T) {
	store := newFakeStore()
	seedMovements(store,
		inMov(testCartridge, testBuilding, 5),
		outMov(testCartridge, testBuilding, 2),
	)
	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store})

	_, err := uc.Reconcile(context.Background(), ledger.ReconcileOptions{})
	require.NoError(t, err)

	report, err := uc.Reconcile(context.Background(), ledger.ReconcileOptions{})
	require.NoError(t, err)
	assert.False(t, report.Drifted(), "reconciling twice must be idempotent")
	assert.Empty(t, report.Changes)
}

func TestReconcile_DryRunWritesNothing(t *testing.T) {
	store := newFakeStore()
	seedMovements(store, inMov(testCartridge, testBuilding, 8))
	store.global[globalKey{testCartridge, false}] = 3

	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store})
	report, err := uc.Reconcile(context.Background(), ledger.ReconcileOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.True(t, report.Drifted())
	require.Len(t, report.Changes, 2, "one global change, one missing building row")
	assert.Equal(t, int64(3), store.global[globalKey{testCartridge, false}],
		"dry run must leave the stored snapshot untouched")
}

func TestReconcile_RemovesStaleRows(t *testing.T) {
	store := newFakeStore()
	// Snapshot row exists for a cartridge with no movements at all.
	store.global[globalKey{"cm-stale", false}] = 4

	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store})
	report, err := uc.Reconcile(context.Background(), ledger.ReconcileOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Global.Removed)
	_, exists := store.global[globalKey{"cm-stale", false}]
	assert.False(t, exists)
}

func TestReconcile_NegativeLogRefusesToWrite(t *testing.T) {
	store := newFakeStore()
	seedMovements(store,
		inMov(testCartridge, testBuilding, 1),
		outMov(testCartridge, testBuilding, 4),
	)
	store.global[globalKey{testCartridge, false}] = 1

	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store})
	report, err := uc.Reconcile(context.Background(), ledger.ReconcileOptions{})

	require.ErrorIs(t, err, domain.ErrIntegrity)
	require.NotNil(t, report, "the report is still returned for diagnosis")
	assert.NotEmpty(t, report.NegativeKeys)
	assert.Equal(t, int64(1), store.global[globalKey{testCartridge, false}],
		"an inconsistent log must not overwrite the snapshots")
}

func TestReconcile_CartridgeFilterLeavesOthersAlone(t *testing.T) {
	store := newFakeStore()
	seedMovements(store,
		inMov(testCartridge, testBuilding, 6),
		inMov("cm-other", testBuilding, 2),
	)
	store.global[globalKey{"cm-other", false}] = 99

	uc := ledger.NewReconcileUseCase(&fakeTxRunner{store: store})
	report, err := uc.Reconcile(context.Background(), ledger.ReconcileOptions{CartridgeModelID: testCartridge})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Movements, "only the filtered cartridge is replayed")
	assert.Equal(t, int64(6), store.global[globalKey{testCartridge, false}])
	assert.Equal(t, int64(99), store.global[globalKey{"cm-other", false}],
		"rows outside the filter stay as they are")
}
