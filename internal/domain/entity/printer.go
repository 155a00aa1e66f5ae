package entity

import "time"

// PrinterModel identifies a printer make/model, unique per (vendor, model).
type PrinterModel struct {
	ID        string
	Vendor    string
	Model     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Printer is a physical device installed in a room.
type Printer struct {
	ID             string
	RoomID         string
	PrinterModelID string
	InventoryTag   string
	Note           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
