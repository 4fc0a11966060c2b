package service

import (
	"context"
	"time"

	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// AuthService owns the login/logout/refresh flows and token parsing for the
// request gate.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (models.LoginResponse, error)
	Logout(ctx context.Context, actor models.User, refreshToken string, meta models.RequestMeta) error
	Refresh(ctx context.Context, refreshToken string, meta models.RequestMeta) (models.RefreshResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SessionService manages the server-side records that make refresh tokens
// revocable. The optional actor is only used for audit attribution.
type SessionService interface {
	Create(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, expiresAt time.Time, meta models.RequestMeta) (models.Session, error)
	Invalidate(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, meta models.RequestMeta) error
	ValidateRefreshToken(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, meta models.RequestMeta) (models.Session, error)
}

// RestrictionService is the staff-on-staff authorization decision point.
type RestrictionService interface {
	Enforce(actor, target models.Staff, action Action) error
	EnsureSingleSuperuser(ctx context.Context, role models.StaffRole, department models.Department) error
}

// ActivityService is the append-only audit sink and its gated read side.
type ActivityService interface {
	// Record writes one audit row. A nil actor is silently skipped.
	Record(ctx context.Context, actor, target *models.User, activityType, description string, meta models.RequestMeta) (models.ActivityLog, error)
	List(ctx context.Context, actor models.User, filter models.ActivityLogFilter) ([]models.ActivityLog, error)
}

// UserService owns the user account lifecycle.
type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	// FindByID is the ungated lookup used by the request middleware.
	FindByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUser(ctx context.Context, actor models.User, id uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context, actor models.User, limit, offset uint64) ([]models.User, error)
	UpdateUser(ctx context.Context, actor models.User, id uuid.UUID, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, actor models.User, id uuid.UUID, meta models.RequestMeta) error
}

// StaffService owns staff profiles; every operation passes the restriction
// engine.
type StaffService interface {
	CreateStaff(ctx context.Context, actor models.User, req models.CreateStaffRequest, meta models.RequestMeta) (models.Staff, error)
	GetStaff(ctx context.Context, actor models.User, id uuid.UUID) (models.Staff, error)
	ListStaff(ctx context.Context, actor models.User, limit, offset uint64) ([]models.Staff, error)
	UpdateStaff(ctx context.Context, actor models.User, id uuid.UUID, patch models.StaffPatch, meta models.RequestMeta) (models.Staff, error)
	DeleteStaff(ctx context.Context, actor models.User, id uuid.UUID, meta models.RequestMeta) error
}

// PermissionService owns the named-capability catalogue.
type PermissionService interface {
	CreatePermission(ctx context.Context, actor models.User, req models.CreatePermissionRequest) (models.Permission, error)
	GetPermission(ctx context.Context, id uuid.UUID) (models.Permission, error)
	ListPermissions(ctx context.Context) ([]models.Permission, error)
	RenamePermission(ctx context.Context, actor models.User, id uuid.UUID, name string) (models.Permission, error)
	DeletePermission(ctx context.Context, actor models.User, id uuid.UUID) error
}

// APIKeyService owns machine credentials tied to a user.
type APIKeyService interface {
	CreateAPIKey(ctx context.Context, actor models.User, req models.CreateAPIKeyRequest) (models.APIKey, error)
	GetAPIKey(ctx context.Context, actor models.User, id uuid.UUID) (models.APIKey, error)
	ListAPIKeys(ctx context.Context, actor models.User) ([]models.APIKey, error)
	UpdateAPIKey(ctx context.Context, actor models.User, id uuid.UUID, patch models.APIKeyPatch) (models.APIKey, error)
	DeleteAPIKey(ctx context.Context, actor models.User, id uuid.UUID) error
}

// KYCService owns identity-verification submissions and their review.
type KYCService interface {
	SubmitKYC(ctx context.Context, actor models.User, req models.SubmitKYCRequest, meta models.RequestMeta) (models.KYCVerification, error)
	GetLatestKYC(ctx context.Context, actor models.User, userID uuid.UUID) (models.KYCVerification, error)
	ListKYC(ctx context.Context, actor models.User, userID uuid.UUID) ([]models.KYCVerification, error)
	ReviewKYC(ctx context.Context, actor models.User, id uuid.UUID, status models.KYCStatus, notes string, meta models.RequestMeta) (models.KYCVerification, error)
}
