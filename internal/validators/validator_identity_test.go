package validators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

func TestValidate_CreateUserRequest(t *testing.T) {
	v := NewIdentityValidator()

	valid := models.CreateUserRequest{
		Username: "john",
		Email:    "john@example.com",
		Password: "secret-password",
	}

	tests := []struct {
		name string
		req  models.CreateUserRequest
		want error
	}{
		{"valid", valid, nil},
		{"valid with phone", func() models.CreateUserRequest {
			r := valid
			r.PhoneNumber = "+15551234567"
			return r
		}(), nil},
		{"username too short", func() models.CreateUserRequest {
			r := valid
			r.Username = "jo"
			return r
		}(), ErrInvalidUsername},
		{"username too long", func() models.CreateUserRequest {
			r := valid
			r.Username = strings.Repeat("a", 65)
			return r
		}(), ErrInvalidUsername},
		{"email without domain", func() models.CreateUserRequest {
			r := valid
			r.Email = "john@"
			return r
		}(), ErrInvalidEmail},
		{"email without at sign", func() models.CreateUserRequest {
			r := valid
			r.Email = "john.example.com"
			return r
		}(), ErrInvalidEmail},
		{"phone with letters", func() models.CreateUserRequest {
			r := valid
			r.PhoneNumber = "call-me"
			return r
		}(), ErrInvalidPhoneNumber},
		{"short password", func() models.CreateUserRequest {
			r := valid
			r.Password = "short"
			return r
		}(), ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_FieldScoping(t *testing.T) {
	v := NewIdentityValidator()

	// invalid email is ignored when only the username field is requested
	req := models.CreateUserRequest{
		Username: "john",
		Email:    "broken",
		Password: "x",
	}

	if err := v.Validate(context.Background(), req, FieldUsername); err != nil {
		t.Errorf("Validate(username only) error = %v", err)
	}

	if err := v.Validate(context.Background(), req, FieldEmail); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Validate(email only) error = %v, want %v", err, ErrInvalidEmail)
	}
}

func TestValidate_UnknownField(t *testing.T) {
	v := NewIdentityValidator()

	req := models.CreateUserRequest{Username: "john", Email: "a@b.c", Password: "secret-password"}
	if err := v.Validate(context.Background(), req, "favourite_colour"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Validate() error = %v, want %v", err, ErrUnknownField)
	}
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewIdentityValidator()

	if err := v.Validate(context.Background(), struct{}{}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Validate() error = %v, want %v", err, ErrUnsupportedType)
	}
}

func TestValidate_PointerAndValueEquivalent(t *testing.T) {
	v := NewIdentityValidator()

	req := models.CreateUserRequest{Username: "jo", Email: "a@b.c", Password: "secret-password"}

	errValue := v.Validate(context.Background(), req)
	errPointer := v.Validate(context.Background(), &req)

	if !errors.Is(errValue, ErrInvalidUsername) || !errors.Is(errPointer, ErrInvalidUsername) {
		t.Errorf("value/pointer mismatch: %v vs %v", errValue, errPointer)
	}
}

func TestValidate_LoginRequest(t *testing.T) {
	v := NewIdentityValidator()

	tests := []struct {
		name string
		req  models.LoginRequest
		want error
	}{
		{"valid", models.LoginRequest{Email: "john", Password: "secret"}, nil},
		{"empty login", models.LoginRequest{Password: "secret"}, ErrEmptyLogin},
		{"empty password", models.LoginRequest{Email: "john"}, ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_CreateAPIKeyRequest(t *testing.T) {
	v := NewIdentityValidator()

	valid := models.CreateAPIKeyRequest{
		UserID: utils.NewUUID(),
		Key:    "raw-api-key",
		Secret: "raw-secret",
	}

	tests := []struct {
		name string
		req  models.CreateAPIKeyRequest
		want error
	}{
		{"valid", valid, nil},
		{"nil user id", func() models.CreateAPIKeyRequest {
			r := valid
			r.UserID = uuid.Nil
			return r
		}(), ErrInvalidUserID},
		{"empty key", func() models.CreateAPIKeyRequest {
			r := valid
			r.Key = ""
			return r
		}(), ErrEmptyKey},
		{"empty secret", func() models.CreateAPIKeyRequest {
			r := valid
			r.Secret = ""
			return r
		}(), ErrEmptySecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_SubmitKYCRequest(t *testing.T) {
	v := NewIdentityValidator()

	tests := []struct {
		name string
		dob  string
		want error
	}{
		{"absent", "", nil},
		{"valid past date", "1990-06-15", nil},
		{"future date", "2999-01-01", ErrInvalidDateOfBirth},
		{"wrong format", "15/06/1990", ErrInvalidDateOfBirth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), models.SubmitKYCRequest{DateOfBirth: tt.dob})
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
