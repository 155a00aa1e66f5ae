package dto

import "time"

// ── Buildings ────────────────────────────────────────────────────────────────

type CreateBuildingRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type UpdateBuildingRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

type BuildingResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BuildingListResponse struct {
	Items []BuildingResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Rooms ────────────────────────────────────────────────────────────────────

type CreateRoomRequest struct {
	BuildingID string `json:"building_id"`
	Number     string `json:"number"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

type UpdateRoomRequest struct {
	Number     *string `json:"number,omitempty"`
	OwnerName  *string `json:"owner_name,omitempty"`
	OwnerEmail *string `json:"owner_email,omitempty"`
}

type RoomResponse struct {
	ID         string    `json:"id"`
	BuildingID string    `json:"building_id"`
	Number     string    `json:"number"`
	OwnerName  string    `json:"owner_name"`
	OwnerEmail string    `json:"owner_email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RoomListResponse struct {
	Items []RoomResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ── Printer models ───────────────────────────────────────────────────────────

type CreatePrinterModelRequest struct {
	Vendor string `json:"vendor"`
	Model  string `json:"model"`
}

type UpdatePrinterModelRequest struct {
	Vendor *string `json:"vendor,omitempty"`
	Model  *string `json:"model,omitempty"`
}

type PrinterModelResponse struct {
	ID        string    `json:"id"`
	Vendor    string    `json:"vendor"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PrinterModelListResponse struct {
	Items []PrinterModelResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ── Cartridge models ─────────────────────────────────────────────────────────

type CreateCartridgeModelRequest struct {
	Vendor string `json:"vendor"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	// CompatiblePrinterModelIDs declares which printer models accept this
	// cartridge.
	CompatiblePrinterModelIDs []string `json:"compatible_printer_model_ids"`
}

type UpdateCartridgeModelRequest struct {
	Vendor                    *string  `json:"vendor,omitempty"`
	Code                      *string  `json:"code,omitempty"`
	Title                     *string  `json:"title,omitempty"`
	CompatiblePrinterModelIDs []string `json:"compatible_printer_model_ids,omitempty"`
}

type CartridgeModelResponse struct {
	ID                      string                 `json:"id"`
	Vendor                  string                 `json:"vendor"`
	Code                    string                 `json:"code"`
	Title                   string                 `json:"title"`
	CompatiblePrinterModels []PrinterModelResponse `json:"compatible_printer_models,omitempty"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

type CartridgeModelListResponse struct {
	Items []CartridgeModelResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// ── Printers ─────────────────────────────────────────────────────────────────

type CreatePrinterRequest struct {
	RoomID         string `json:"room_id"`
	PrinterModelID string `json:"printer_model_id"`
	InventoryTag   string `json:"inventory_tag"`
	Note           string `json:"note"`
}

type UpdatePrinterRequest struct {
	RoomID         *string `json:"room_id,omitempty"`
	PrinterModelID *string `json:"printer_model_id,omitempty"`
	InventoryTag   *string `json:"inventory_tag,omitempty"`
	Note           *string `json:"note,omitempty"`
}

type PrinterResponse struct {
	ID             string    `json:"id"`
	RoomID         string    `json:"room_id"`
	PrinterModelID string    `json:"printer_model_id"`
	InventoryTag   string    `json:"inventory_tag"`
	Note           string    `json:"note"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PrinterListResponse struct {
	Items []PrinterResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ── Delete guard ─────────────────────────────────────────────────────────────

// DeleteBlocker names a record kind that prevents deletion.
type DeleteBlocker struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// DeleteReport is the pre-delete inspection result for a catalog entity.
type DeleteReport struct {
	CanDelete bool            `json:"can_delete"`
	Blockers  []DeleteBlocker `json:"blockers,omitempty"`
}
