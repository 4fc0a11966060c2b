package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of one issued refresh token. It is what
// makes refresh tokens revocable: logout flips IsValid to false and the token
// can never be exchanged again, regardless of its embedded expiry.
//
// A user may hold any number of concurrently valid sessions (one per login).
// Sessions are never deleted by the online path; UserID is nullable so the
// audit trail survives user deletion.
type Session struct {
	ID uuid.UUID `json:"id"`

	// UserID is the owning user. Nil after the owning user is deleted.
	UserID *uuid.UUID `json:"user_id"`

	// RefreshToken is the signed refresh token this session was created
	// for. Unique across all sessions.
	RefreshToken string `json:"refresh_token"`

	UserAgent string `json:"user_agent"`
	IPAddress string `json:"ip_address"`

	// IsValid is true until the session is invalidated by logout.
	IsValid bool `json:"is_valid"`

	// ExpiresAt is the absolute UTC expiry of the refresh token.
	ExpiresAt time.Time `json:"expires_at"`

	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
