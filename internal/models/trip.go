package models

// Trip represents a group of people sharing expenses.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Lisbon 2026").
	Name string

	// StartDate and EndDate are optional calendar dates in YYYY-MM-DD form.
	StartDate string
	EndDate   string

	// Members is the ordered roster of participant names.
	// The creator is always on it.
	Members []string

	// CreatedBy is the member who created the trip.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// HasMember reports whether name is on the trip roster.
func (t *Trip) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}
