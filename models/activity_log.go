package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is one append-only audit row. Rows are never updated or
// deleted by the online path. UserID is the acting user and may be nil for
// rows whose actor has since been deleted.
type ActivityLog struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"user_id"`
	ActivityType string     `json:"activity_type"`
	Description  string     `json:"description"`
	IPAddress    string     `json:"ip_address,omitempty"`
	UserAgent    string     `json:"user_agent,omitempty"`
	LoggedAt     time.Time  `json:"logged_at"`

	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// TableName returns the name of the database table
// associated with the ActivityLog model.
func (l ActivityLog) TableName() string {
	return "activity_logs"
}

// ActivityLogFilter narrows an activity-log listing. Zero values are
// ignored; Limit defaults to a server-side cap when unset.
type ActivityLogFilter struct {
	UserID       *uuid.UUID
	ActivityType string
	Since        *time.Time
	Until        *time.Time
	Limit        uint64
	Offset       uint64
}
