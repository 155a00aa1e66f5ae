package ledger

import (
	"context"

	"github.com/campus-it/printstock/internal/domain/repository"
)

// TxRunner runs a function inside one database transaction, passing
// repositories bound to that transaction. It guarantees the ledger's
// all-or-nothing property: the movement insert and the balance updates
// commit together or not at all.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error) error
}
