package store

import (
	"context"

	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	// GetUserByLogin matches login against both username and email.
	GetUserByLogin(ctx context.Context, login string) (models.User, error)
	ListUsers(ctx context.Context, limit, offset uint64) ([]models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (models.User, error)
	UpdateUserStatus(ctx context.Context, id uuid.UUID, status models.UserStatus) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SuperuserExists(ctx context.Context) (bool, error)
}

// SessionRepository persists refresh-token sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	// FindValidSession returns the session matching (userID, refreshToken)
	// with is_valid still set. ErrSessionNotFound covers both a missing row
	// and an invalidated one.
	FindValidSession(ctx context.Context, userID uuid.UUID, refreshToken string) (models.Session, error)
	InvalidateSession(ctx context.Context, userID uuid.UUID, refreshToken string) error
	// InvalidateUserSessions flips every valid session of the user and
	// returns how many were affected.
	InvalidateUserSessions(ctx context.Context, userID uuid.UUID) (int64, error)
	// DeleteExpiredSessions removes sessions past their expiry and returns
	// how many rows were removed.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// StaffRepository persists staff profiles and their permission grants.
type StaffRepository interface {
	CreateStaff(ctx context.Context, staff models.Staff, permissionIDs []uuid.UUID) (models.Staff, error)
	GetStaffByID(ctx context.Context, id uuid.UUID) (models.Staff, error)
	GetStaffByUserID(ctx context.Context, userID uuid.UUID) (models.Staff, error)
	ListStaff(ctx context.Context, limit, offset uint64) ([]models.Staff, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, patch models.StaffPatch) (models.Staff, error)
	DeleteStaff(ctx context.Context, id uuid.UUID) error
	SuperuserRoleExists(ctx context.Context) (bool, error)
	SuperuserDepartmentExists(ctx context.Context) (bool, error)
}

// PermissionRepository persists named permissions.
type PermissionRepository interface {
	CreatePermission(ctx context.Context, permission models.Permission) (models.Permission, error)
	GetPermissionByID(ctx context.Context, id uuid.UUID) (models.Permission, error)
	ListPermissions(ctx context.Context) ([]models.Permission, error)
	RenamePermission(ctx context.Context, id uuid.UUID, name string) (models.Permission, error)
	DeletePermission(ctx context.Context, id uuid.UUID) error
}

// APIKeyRepository persists API keys and their permission grants.
type APIKeyRepository interface {
	CreateAPIKey(ctx context.Context, key models.APIKey, permissionIDs []uuid.UUID) (models.APIKey, error)
	GetAPIKeyByID(ctx context.Context, id uuid.UUID) (models.APIKey, error)
	GetAPIKeyByHash(ctx context.Context, keyHash string) (models.APIKey, error)
	ListAPIKeysByUser(ctx context.Context, userID uuid.UUID) ([]models.APIKey, error)
	UpdateAPIKey(ctx context.Context, id uuid.UUID, patch models.APIKeyPatch) (models.APIKey, error)
	DeleteAPIKey(ctx context.Context, id uuid.UUID) error
}

// ActivityLogRepository appends and reads the audit trail.
type ActivityLogRepository interface {
	CreateActivityLog(ctx context.Context, record models.ActivityLog) (models.ActivityLog, error)
	ListActivityLogs(ctx context.Context, filter models.ActivityLogFilter) ([]models.ActivityLog, error)
}

// KYCRepository persists identity-verification submissions.
type KYCRepository interface {
	CreateKYC(ctx context.Context, kyc models.KYCVerification) (models.KYCVerification, error)
	GetLatestKYCByUserID(ctx context.Context, userID uuid.UUID) (models.KYCVerification, error)
	ListKYCByUserID(ctx context.Context, userID uuid.UUID) ([]models.KYCVerification, error)
	UpdateKYCStatus(ctx context.Context, id uuid.UUID, status models.KYCStatus, notes string) (models.KYCVerification, error)
}
