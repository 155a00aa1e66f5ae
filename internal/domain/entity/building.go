package entity

import "time"

// Building is a school building that also acts as a stock location.
type Building struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Room is a room inside a building. The room owner is the person cartridge
// issues are attributed to by default.
type Room struct {
	ID         string
	BuildingID string
	Number     string
	OwnerName  string
	OwnerEmail string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
