package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername    = errors.New("username must be 3 to 64 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrEmptyLogin         = errors.New("login is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrEmptyKey           = errors.New("key is required")
	ErrEmptySecret        = errors.New("secret is required")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
)
