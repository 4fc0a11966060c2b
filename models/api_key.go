package models

import (
	"time"

	"github.com/google/uuid"
)

// APIKey is a long-lived machine credential owned by a user. The raw key is
// never stored; KeyHash is its HMAC-SHA256 digest. UserID is nullable so keys
// survive user deletion for auditing.
type APIKey struct {
	ID      uuid.UUID  `json:"id"`
	UserID  *uuid.UUID `json:"user_id"`
	KeyHash string     `json:"key_hash"`
	Secret  string     `json:"-"`

	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// Permissions granted through the api_key_permissions junction table.
	Permissions []Permission `json:"permissions,omitempty"`

	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// TableName returns the name of the database table
// associated with the APIKey model.
func (k APIKey) TableName() string {
	return "api_keys"
}

// APIKeyPatch carries the mutable fields of an API key for partial updates.
// Nil pointers mean "leave unchanged".
type APIKeyPatch struct {
	IsActive      *bool        `json:"is_active,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	PermissionIDs *[]uuid.UUID `json:"permission_ids,omitempty"`
}
