package models

import (
	"time"

	"github.com/google/uuid"
)

// Permission is a named capability granted to staff members and API keys
// through junction tables. Names are unique.
type Permission struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// TableName returns the name of the database table
// associated with the Permission model.
func (p Permission) TableName() string {
	return "permissions"
}
