package entity

import "time"

// CartridgeModel identifies a cartridge type, unique per (vendor, code).
// Compatibility with printers is declared against printer models, not
// individual devices. Once a movement references the model it can only be
// renamed, never deleted.
type CartridgeModel struct {
	ID        string
	Vendor    string
	Code      string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
