package dto

import "time"

// RecordMovementRequest is the body for POST /api/stock/movements.
type RecordMovementRequest struct {
	CartridgeModelID string `json:"cartridge_model_id"`
	Type             string `json:"type"` // IN, OUT
	Qty              int64  `json:"qty"`
	OnBalance        bool   `json:"on_balance"`
	BuildingID       string `json:"building_id"`
	PrinterID        string `json:"printer_id,omitempty"` // required for OUT
	IssuedTo         string `json:"issued_to,omitempty"`  // defaults to the room owner for OUT
	Comment          string `json:"comment,omitempty"`
}

// MovementResponse is one journal entry.
type MovementResponse struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	CartridgeModelID string    `json:"cartridge_model_id"`
	Qty              int64     `json:"qty"`
	OnBalance        bool      `json:"on_balance"`
	BuildingID       string    `json:"building_id"`
	PrinterID        string    `json:"printer_id,omitempty"`
	IssuedTo         string    `json:"issued_to,omitempty"`
	Comment          string    `json:"comment,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`

	Building     string `json:"building,omitempty"`
	Room         string `json:"room,omitempty"`
	PrinterModel string `json:"printer_model,omitempty"`
	PrinterTag   string `json:"printer_tag,omitempty"`
}

// JournalResponse is one page of journal search results.
type JournalResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// BalanceResponse is the current balance for a (cartridge[, building]) key.
type BalanceResponse struct {
	CartridgeModelID string `json:"cartridge_model_id"`
	BuildingID       string `json:"building_id,omitempty"`
	Qty              int64  `json:"qty"`
}

// OverviewBuildingQty is one per-building quantity in an overview row.
type OverviewBuildingQty struct {
	BuildingID   string `json:"building_id"`
	BuildingName string `json:"building_name"`
	Qty          int64  `json:"qty"`
}

// OverviewRowResponse is the dashboard row for one cartridge model.
type OverviewRowResponse struct {
	CartridgeModelID string                `json:"cartridge_model_id"`
	Vendor           string                `json:"vendor"`
	Code             string                `json:"code"`
	Title            string                `json:"title"`
	GlobalQty        int64                 `json:"global_qty"`
	Buildings        []OverviewBuildingQty `json:"buildings"`
}

// ReconcileRequest is the body for POST /api/admin/reconcile.
type ReconcileRequest struct {
	DryRun           bool   `json:"dry_run"`
	CartridgeModelID string `json:"cartridge_model_id,omitempty"`
}
