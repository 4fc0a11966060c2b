package utils

import "github.com/google/uuid"

// NewUUID returns a new UUIDv7 identifier. V7 IDs are time-ordered, which
// keeps B-tree primary keys append-mostly. Falls back to a random V4 if V7
// generation fails.
func NewUUID() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
