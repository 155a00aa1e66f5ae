package repository

// Reference counts records of one kind that point at a catalog entity.
// Used by the pre-delete guards: a non-empty reference list blocks deletion.
type Reference struct {
	Kind  string // e.g. "rooms", "printers", "movements"
	Count int
}
