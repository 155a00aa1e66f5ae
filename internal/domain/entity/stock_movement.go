package entity

import "time"

// Movement types.
const (
	MovementTypeIN  = "IN"  // stock received into a building warehouse
	MovementTypeOUT = "OUT" // cartridge issued to a printer
)

// StockMovement is one immutable ledger entry. Corrections are recorded as
// compensating movements, never as edits or deletes.
//
// BuildingID is the warehouse the movement touches: the destination for IN,
// the source for OUT. PrinterID is set for OUT only and must reference a
// printer in that building whose model is compatible with the cartridge.
//
// The *Snapshot fields denormalize catalog names at movement time so the
// journal stays readable after catalog entities are renamed.
type StockMovement struct {
	ID               string
	Type             string // IN, OUT
	CartridgeModelID string
	Qty              int64 // always positive; Type carries the sign
	OnBalance        bool  // batch is held on the organization's balance sheet
	BuildingID       string
	PrinterID        string // empty for IN
	IssuedTo         string
	Comment          string
	CreatedBy        string // user ID
	CreatedAt        time.Time

	BuildingSnapshot     string
	RoomSnapshot         string
	PrinterModelSnapshot string
	PrinterTagSnapshot   string
}

// SignedQty returns the quantity with the ledger sign applied (IN positive,
// OUT negative).
func (m *StockMovement) SignedQty() int64 {
	if m.Type == MovementTypeOUT {
		return -m.Qty
	}
	return m.Qty
}
