package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicate             = errors.New("duplicate resource")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("access denied")
	ErrProtected             = errors.New("resource is referenced by other records")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrIncompatibleCartridge = errors.New("cartridge model is not compatible with the printer")
	ErrConcurrencyConflict   = errors.New("concurrent update conflict, retry the request")
	ErrIntegrity             = errors.New("balance snapshot does not match the movement log")
)

// Balance scopes used by InsufficientStockError.
const (
	ScopeGlobal   = "global"
	ScopeBuilding = "building"
)

// InsufficientStockError reports which balance an OUT movement would drive
// negative. Unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	Scope     string // ScopeGlobal or ScopeBuilding
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock (%s): available %d, requested %d",
		e.Scope, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
