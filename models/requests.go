package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestMeta carries the request-level metadata (client address, user
// agent) that the audit sink stamps onto every activity row. Handlers fill
// it from the inbound request; services pass it through untouched.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// LoginRequest is the credential pair accepted by POST /api/auth/login.
// Email doubles as a username-or-email identifier.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a fresh access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CreateUserRequest is the signup payload.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
}

// CreateStaffRequest attaches a staff profile to an existing user.
type CreateStaffRequest struct {
	UserID        uuid.UUID   `json:"user_id"`
	Role          StaffRole   `json:"role"`
	Department    Department  `json:"department"`
	PermissionIDs []uuid.UUID `json:"permission_ids,omitempty"`
}

// CreatePermissionRequest declares a new named capability.
type CreatePermissionRequest struct {
	Name string `json:"name"`
}

// CreateAPIKeyRequest registers a new API key for a user. The raw key
// material is hashed server-side before storage.
type CreateAPIKeyRequest struct {
	UserID        uuid.UUID   `json:"user_id"`
	Key           string      `json:"key"`
	Secret        string      `json:"secret"`
	IsActive      *bool       `json:"is_active,omitempty"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
	PermissionIDs []uuid.UUID `json:"permission_ids,omitempty"`
}

// SubmitKYCRequest is one identity-verification submission.
type SubmitKYCRequest struct {
	FullName     string `json:"full_name,omitempty"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`

	DocumentType     string `json:"document_type,omitempty"`
	DocumentNumber   string `json:"document_number,omitempty"`
	DocumentImageURL string `json:"document_image_url,omitempty"`
	SelfieImageURL   string `json:"selfie_image_url,omitempty"`

	Notes string `json:"kyc_notes,omitempty"`
}
