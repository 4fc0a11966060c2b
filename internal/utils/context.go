// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, JWT token generation and validation,
// and other common operations.
package utils

import (
	"context"

	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the authenticated user's identifier
// is stored in the request context by the auth middleware.
var UserIDCtxKey = contextKey("userID")

// CurrentUserCtxKey is the key under which the fully loaded authenticated
// user record is stored in the request context by the auth middleware.
// Downstream handlers read it instead of re-querying the users table.
var CurrentUserCtxKey = contextKey("currentUser")

// GetUserIDFromContext retrieves the authenticated user's identifier from
// the context.
//
// Returns the user ID and an ok flag:
//   - ok == true  — value is found and has the correct uuid.UUID type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(uuid.UUID)
	return userID, ok
}

// GetCurrentUserFromContext retrieves the authenticated user record placed
// in the context by the auth middleware.
func GetCurrentUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(*models.User)
	return user, ok
}
