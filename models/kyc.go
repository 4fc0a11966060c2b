package models

import (
	"time"

	"github.com/google/uuid"
)

// KYCStatus is the review state of a single KYC submission.
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// KYCVerification is one identity-verification submission. Submissions are
// kept as history; the "latest" record is the newest by DateCreated.
type KYCVerification struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	FullName    string `json:"full_name,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Nationality string `json:"nationality,omitempty"`

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

	Notes  string    `json:"kyc_notes,omitempty"`
	Status KYCStatus `json:"status"`

	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// TableName returns the name of the database table
// associated with the KYCVerification model.
func (k KYCVerification) TableName() string {
	return "kyc_verifications"
}
