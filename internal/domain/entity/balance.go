package entity

import "time"

// GlobalStock is the materialized organization-wide balance for a cartridge
// model, split by the on-balance flag. Derived from the movement log; must
// always equal the signed sum of matching movements and never go negative.
type GlobalStock struct {
	CartridgeModelID string
	OnBalance        bool
	Qty              int64
	UpdatedAt        time.Time
}

// BuildingStock is the materialized per-building balance for a cartridge
// model, split by the on-balance flag. Same derivation rules as GlobalStock.
type BuildingStock struct {
	BuildingID       string
	CartridgeModelID string
	OnBalance        bool
	Qty              int64
	UpdatedAt        time.Time
}
