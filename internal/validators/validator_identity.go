package validators

import (
	"context"
	"regexp"
	"time"

	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldPassword    = "password"
	FieldLogin       = "login"
	FieldUserID      = "user_id"
	FieldKey         = "key"
	FieldSecret      = "secret"
	FieldDateOfBirth = "date_of_birth"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 8
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// IdentityValidator validates the inbound request payloads of the identity
// service before they reach storage.
type IdentityValidator struct {
}

func NewIdentityValidator() Validator {
	return &IdentityValidator{}
}

func (v *IdentityValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateUserRequest:
		return v.validateCreateUserRequest(ctx, value, fields...)
	case *models.CreateUserRequest:
		return v.validateCreateUserRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.CreateAPIKeyRequest:
		return v.validateCreateAPIKeyRequest(ctx, value, fields...)
	case *models.CreateAPIKeyRequest:
		return v.validateCreateAPIKeyRequest(ctx, *value, fields...)

	case models.SubmitKYCRequest:
		return v.validateSubmitKYCRequest(ctx, value, fields...)
	case *models.SubmitKYCRequest:
		return v.validateSubmitKYCRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *IdentityValidator) validateCreateUserRequest(_ context.Context, req models.CreateUserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPhoneNumber, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength {
				return ErrInvalidUsername
			}
		case FieldEmail:
			if !emailPattern.MatchString(req.Email) {
				return ErrInvalidEmail
			}
		case FieldPhoneNumber:
			// Phone number is optional at signup.
			if req.PhoneNumber != "" && !phonePattern.MatchString(req.PhoneNumber) {
				return ErrInvalidPhoneNumber
			}
		case FieldPassword:
			if len(req.Password) < minPasswordLength {
				return ErrWeakPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *IdentityValidator) validateLoginRequest(_ context.Context, req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if req.Email == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *IdentityValidator) validateCreateAPIKeyRequest(_ context.Context, req models.CreateAPIKeyRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldKey, FieldSecret}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if req.UserID == uuid.Nil {
				return ErrInvalidUserID
			}
		case FieldKey:
			if req.Key == "" {
				return ErrEmptyKey
			}
		case FieldSecret:
			if req.Secret == "" {
				return ErrEmptySecret
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *IdentityValidator) validateSubmitKYCRequest(_ context.Context, req models.SubmitKYCRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDateOfBirth}
	}

	for _, f := range fields {
		switch f {
		case FieldDateOfBirth:
			// Date of birth is optional; when present it must be a past
			// calendar date.
			if req.DateOfBirth != "" {
				dob, err := time.Parse("2006-01-02", req.DateOfBirth)
				if err != nil || dob.After(time.Now()) {
					return ErrInvalidDateOfBirth
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
