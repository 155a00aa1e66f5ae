package ledger

import (
	"context"

	"github.com/campus-it/printstock/internal/domain"
	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
)

// JournalUseCase is the read path over the movement log. It never mutates
// ledger or balances.
type JournalUseCase struct {
	movementRepo repository.MovementRepository
}

// NewJournalUseCase builds the use case.
func NewJournalUseCase(movementRepo repository.MovementRepository) *JournalUseCase {
	return &JournalUseCase{movementRepo: movementRepo}
}

// SearchMovements returns one journal page (newest first, id descending on
// timestamp ties) and the total match count.
func (uc *JournalUseCase) SearchMovements(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, 0, domain.ErrInvalidInput
	}
	return uc.movementRepo.Search(ctx, f, limit, offset)
}

// GetMovement returns one journal entry or nil when absent.
func (uc *JournalUseCase) GetMovement(ctx context.Context, id string) (*entity.StockMovement, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.GetByID(ctx, id)
}

// BalanceUseCase reads the materialized balance snapshots.
type BalanceUseCase struct {
	balanceRepo repository.BalanceRepository
}

// NewBalanceUseCase builds the use case.
func NewBalanceUseCase(balanceRepo repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{balanceRepo: balanceRepo}
}

// GetBalance returns the current balance for a cartridge model, summed
// across both on-balance flags: organization-wide when buildingID is empty,
// building-scoped otherwise.
func (uc *BalanceUseCase) GetBalance(ctx context.Context, cartridgeModelID, buildingID string) (int64, error) {
	if cartridgeModelID == "" {
		return 0, domain.ErrInvalidInput
	}
	if buildingID == "" {
		return uc.balanceRepo.SumGlobal(ctx, cartridgeModelID)
	}
	return uc.balanceRepo.SumBuilding(ctx, buildingID, cartridgeModelID)
}

// Overview returns the stock dashboard: every cartridge model with its
// global quantity and per-building breakdown, optionally filtered by q.
func (uc *BalanceUseCase) Overview(ctx context.Context, q string) ([]*repository.OverviewRow, error) {
	return uc.balanceRepo.Overview(ctx, q)
}
