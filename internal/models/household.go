package models

// Household represents a group of users who share expenses.
type Household struct {
	// ID is the unique identifier for the household (UUID format).
	ID string

	// Name is the display name of the household (e.g., "Elm St Flat").
	Name string

	// CreatedBy is the user ID of the household's creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the household was created.
	CreatedAt int64
}

// HouseholdMember links a user to a household.
// A user belongs to at most one household at a time.
type HouseholdMember struct {
	HouseholdID string
	UserID      string

	// JoinedAt is the Unix timestamp when the user joined.
	JoinedAt int64
}
