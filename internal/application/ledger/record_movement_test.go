package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-it/printstock/internal/application/ledger"
	"github.com/campus-it/printstock/internal/domain"
	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

const (
	testCartridge = "cm-hp-26a"
	testBuilding  = "b-main"
	testAnnex     = "b-annex"
	testPrinter   = "pr-402"
	testUser      = "u-staff"
)

// newFixture wires a RecordMovementUseCase over the in-memory fakes with one
// compatible printer in the main building and one in the annex.
func newFixture() (*fakeStore, *ledger.RecordMovementUseCase) {
	store := newFakeStore()
	cartridges := &fakeCartridgeRepo{
		models: map[string]*entity.CartridgeModel{
			testCartridge: {ID: testCartridge, Vendor: "HP", Code: "CF226A", Title: "HP 26A black"},
		},
		compat: map[string]map[string]bool{
			testCartridge: {"pm-m402": true},
		},
	}
	buildings := &fakeBuildingRepo{
		buildings: map[string]*entity.Building{
			testBuilding: {ID: testBuilding, Name: "Main Building"},
			testAnnex:    {ID: testAnnex, Name: "Annex"},
		},
	}
	printers := &fakePrinterRepo{
		infos: map[string]*repository.PrinterInfo{
			testPrinter: {
				ID: testPrinter, RoomID: "rm-101", RoomNumber: "101", RoomOwnerName: "Pat Lee",
				BuildingID: testBuilding, BuildingName: "Main Building",
				PrinterModelID: "pm-m402", PrinterModelName: "HP LaserJet Pro M402",
				InventoryTag: "INV-0042",
			},
			"pr-annex": {
				ID: "pr-annex", RoomID: "rm-201", RoomNumber: "201",
				BuildingID: testAnnex, BuildingName: "Annex",
				PrinterModelID: "pm-m402", PrinterModelName: "HP LaserJet Pro M402",
			},
			"pr-alien": {
				ID: "pr-alien", RoomID: "rm-102", RoomNumber: "102",
				BuildingID: testBuilding, BuildingName: "Main Building",
				PrinterModelID: "pm-other", PrinterModelName: "Kyocera P2040",
			},
		},
	}
	uc := ledger.NewRecordMovementUseCase(&fakeTxRunner{store: store}, cartridges, buildings, printers)
	return store, uc
}

func receive(t *testing.T, uc *ledger.RecordMovementUseCase, qty int64) *entity.StockMovement {
	t.Helper()
	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge,
		Type:             entity.MovementTypeIN,
		Qty:              qty,
		BuildingID:       testBuilding,
		UserID:           testUser,
	})
	require.NoError(t, err)
	return mov
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_RejectsInvalidInput(t *testing.T) {
	_, uc := newFixture()
	base := ledger.MovementInput{
		CartridgeModelID: testCartridge,
		Type:             entity.MovementTypeIN,
		Qty:              1,
		BuildingID:       testBuilding,
		UserID:           testUser,
	}

	cases := map[string]func(in *ledger.MovementInput){
		"zero qty":            func(in *ledger.MovementInput) { in.Qty = 0 },
		"negative qty":        func(in *ledger.MovementInput) { in.Qty = -3 },
		"missing cartridge":   func(in *ledger.MovementInput) { in.CartridgeModelID = "" },
		"missing building":    func(in *ledger.MovementInput) { in.BuildingID = "" },
		"missing user":        func(in *ledger.MovementInput) { in.UserID = "" },
		"unknown type":        func(in *ledger.MovementInput) { in.Type = "TRANSFER" },
		"out without printer": func(in *ledger.MovementInput) { in.Type = entity.MovementTypeOUT },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := uc.RecordMovement(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordMovement_UnknownCartridgeOrBuilding(t *testing.T) {
	_, uc := newFixture()

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: "cm-ghost", Type: entity.MovementTypeIN, Qty: 1,
		BuildingID: testBuilding, UserID: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeIN, Qty: 1,
		BuildingID: "b-ghost", UserID: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// IN movements
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_InAdjustsBothBalances(t *testing.T) {
	store, uc := newFixture()

	mov := receive(t, uc, 10)
	assert.Equal(t, "Main Building", mov.BuildingSnapshot)
	assert.NotEmpty(t, mov.ID)

	key := globalKey{testCartridge, false}
	assert.Equal(t, int64(10), store.global[key])
	assert.Equal(t, int64(10), store.building[buildingKey{testBuilding, testCartridge, false}])
	require.Len(t, store.movements, 1)
}

func TestRecordMovement_OnBalanceFlagSplitsKeys(t *testing.T) {
	store, uc := newFixture()

	receive(t, uc, 4)
	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeIN, Qty: 6,
		OnBalance: true, BuildingID: testBuilding, UserID: testUser,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), store.global[globalKey{testCartridge, false}])
	assert.Equal(t, int64(6), store.global[globalKey{testCartridge, true}])
}

// ─────────────────────────────────────────────────────────────────────────────
// OUT movements
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_OutFillsSnapshotsAndDefaultsIssuedTo(t *testing.T) {
	store, uc := newFixture()
	receive(t, uc, 5)

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 2,
		BuildingID: testBuilding, PrinterID: testPrinter, UserID: testUser,
	})
	require.NoError(t, err)

	assert.Equal(t, "Pat Lee", mov.IssuedTo, "issued-to defaults to the room owner")
	assert.Equal(t, "101", mov.RoomSnapshot)
	assert.Equal(t, "HP LaserJet Pro M402", mov.PrinterModelSnapshot)
	assert.Equal(t, "INV-0042", mov.PrinterTagSnapshot)

	assert.Equal(t, int64(3), store.global[globalKey{testCartridge, false}])
	assert.Equal(t, int64(3), store.building[buildingKey{testBuilding, testCartridge, false}])
}

func TestRecordMovement_OutKeepsExplicitIssuedTo(t *testing.T) {
	_, uc := newFixture()
	receive(t, uc, 5)

	mov, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 1,
		BuildingID: testBuilding, PrinterID: testPrinter,
		IssuedTo: "J. Smith", UserID: testUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "J. Smith", mov.IssuedTo)
}

func TestRecordMovement_OutRejectsPrinterInOtherBuilding(t *testing.T) {
	_, uc := newFixture()
	receive(t, uc, 5)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 1,
		BuildingID: testBuilding, PrinterID: "pr-annex", UserID: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_OutRejectsIncompatibleCartridge(t *testing.T) {
	_, uc := newFixture()
	receive(t, uc, 5)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 1,
		BuildingID: testBuilding, PrinterID: "pr-alien", UserID: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrIncompatibleCartridge)
}

func TestRecordMovement_OutRejectsUnknownPrinter(t *testing.T) {
	_, uc := newFixture()
	receive(t, uc, 5)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 1,
		BuildingID: testBuilding, PrinterID: "pr-ghost", UserID: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_InsufficientStockLeavesNothingBehind(t *testing.T) {
	store, uc := newFixture()
	receive(t, uc, 3)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 5,
		BuildingID: testBuilding, PrinterID: testPrinter, UserID: testUser,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var detail *domain.InsufficientStockError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, domain.ScopeBuilding, detail.Scope)
	assert.Equal(t, int64(3), detail.Available)
	assert.Equal(t, int64(5), detail.Requested)

	// The failed OUT must not have touched the ledger or the balances.
	assert.Len(t, store.movements, 1)
	assert.Equal(t, int64(3), store.global[globalKey{testCartridge, false}])
}

func TestRecordMovement_DriftedGlobalBelowBuildingFailsOnGlobalScope(t *testing.T) {
	// Snapshots that drifted apart: the building row claims 5 units, the
	// global row only 2. The OUT must fail on the global check and write
	// nothing; repairing the drift is the reconciliation tool's job.
	store, uc := newFixture()
	store.building[buildingKey{testBuilding, testCartridge, false}] = 5
	store.global[globalKey{testCartridge, false}] = 2

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 3,
		BuildingID: testBuilding, PrinterID: testPrinter, UserID: testUser,
	})

	var detail *domain.InsufficientStockError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, domain.ScopeGlobal, detail.Scope)
	assert.Equal(t, int64(2), detail.Available)
	assert.Equal(t, int64(3), detail.Requested)

	assert.Empty(t, store.movements)
	assert.Equal(t, int64(2), store.global[globalKey{testCartridge, false}])
	assert.Equal(t, int64(5), store.building[buildingKey{testBuilding, testCartridge, false}])
}

func TestRecordMovement_OnBalanceStocksDoNotCover(t *testing.T) {
	// 5 units held on-balance do not satisfy an off-balance OUT.
	_, uc := newFixture()
	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeIN, Qty: 5,
		OnBalance: true, BuildingID: testBuilding, UserID: testUser,
	})
	require.NoError(t, err)

	_, err = uc.RecordMovement(context.Background(), ledger.MovementInput{
		CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 1,
		OnBalance: false, BuildingID: testBuilding, PrinterID: testPrinter, UserID: testUser,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ─────────────────────────────────────────────────────────────────────────────
// Concurrency
// ─────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_ConcurrentInsOnFreshKeyKeepEveryDelta(t *testing.T) {
	// The snapshot row does not exist yet; every concurrent IN must still
	// land, none may overwrite another's delta.
	store, uc := newFixture()

	const workers = 4
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(qty int64) {
			defer wg.Done()
			_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
				CartridgeModelID: testCartridge, Type: entity.MovementTypeIN, Qty: qty,
				BuildingID: testBuilding, UserID: testUser,
			})
			assert.NoError(t, err)
		}(int64(i + 1))
	}
	wg.Wait()

	require.Len(t, store.movements, workers)
	assert.Equal(t, int64(1+2+3+4), store.global[globalKey{testCartridge, false}])
	assert.Equal(t, int64(1+2+3+4), store.building[buildingKey{testBuilding, testCartridge, false}])
}

func TestRecordMovement_ConcurrentOutsNeverOverdraw(t *testing.T) {
	store, uc := newFixture()
	receive(t, uc, 5)

	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordMovement(context.Background(), ledger.MovementInput{
				CartridgeModelID: testCartridge, Type: entity.MovementTypeOUT, Qty: 2,
				BuildingID: testBuilding, PrinterID: testPrinter, UserID: testUser,
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 2, ok, "only two OUTs of 2 fit into 5 units")
	assert.Equal(t, workers-2, insufficient)
	assert.Equal(t, int64(1), store.global[globalKey{testCartridge, false}])
	assert.GreaterOrEqual(t, store.building[buildingKey{testBuilding, testCartridge, false}], int64(0))
}
