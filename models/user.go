package models

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus is the lifecycle state of a user account.
// New accounts start in StatusPendingKYC and move to StatusActive once
// their identity verification is approved.
type UserStatus string

const (
	StatusActive      UserStatus = "active"
	StatusInactive    UserStatus = "inactive"
	StatusSuspended   UserStatus = "suspended"
	StatusPendingKYC  UserStatus = "pending_kyc"
	StatusKYCRejected UserStatus = "kyc_rejected"
)

// User is the identity record every other entity hangs off.
// At most one user system-wide may have IsSuperuser set; the constraint is
// enforced by a partial unique index on the users table.
type User struct {
	// ID is the surrogate identifier assigned at creation (UUIDv7).
	ID uuid.UUID `json:"id"`

	// Username and Email are both unique and both accepted as a login
	// identifier.
	Username string `json:"username"`
	Email    string `json:"email"`

	PhoneNumber string `json:"phone_number"`

	// HashedPassword is the bcrypt hash of the user's password.
	// Never exposed via JSON.
	HashedPassword string `json:"-"`

	IsVerified  bool       `json:"is_verified"`
	IsSuperuser bool       `json:"is_superuser"`
	Status      UserStatus `json:"status"`

	// TwoFASecret is the optional TOTP secret. Never exposed via JSON.
	TwoFASecret string `json:"-"`

	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserPatch carries the mutable fields of a user for partial updates.
// Nil pointers mean "leave unchanged".
type UserPatch struct {
	Username    *string     `json:"username,omitempty"`
	Email       *string     `json:"email,omitempty"`
	PhoneNumber *string     `json:"phone_number,omitempty"`
	Password    *string     `json:"password,omitempty"`
	IsVerified  *bool       `json:"is_verified,omitempty"`
	Status      *UserStatus `json:"status,omitempty"`
	TwoFASecret *string     `json:"twofa_secret,omitempty"`
}

// IsZero reports whether the patch carries no changes at all.
func (p UserPatch) IsZero() bool {
	return p.Username == nil && p.Email == nil && p.PhoneNumber == nil &&
		p.Password == nil && p.IsVerified == nil && p.Status == nil && p.TwoFASecret == nil
}
