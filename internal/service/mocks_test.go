package service

import (
	"context"
	"time"

	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// grants builds a permission slice from names, for staff records returned
// by mocks.
func grants(names ...string) []models.Permission {
	perms := make([]models.Permission, 0, len(names))
	for _, name := range names {
		perms = append(perms, models.Permission{ID: uuid.New(), Name: name})
	}
	return perms
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn       func(ctx context.Context, user models.User) (models.User, error)
	getUserByIDFn      func(ctx context.Context, id uuid.UUID) (models.User, error)
	getUserByLoginFn   func(ctx context.Context, login string) (models.User, error)
	listUsersFn        func(ctx context.Context, limit, offset uint64) ([]models.User, error)
	updateUserFn       func(ctx context.Context, id uuid.UUID, patch models.UserPatch) (models.User, error)
	updateUserStatusFn func(ctx context.Context, id uuid.UUID, status models.UserStatus) error
	deleteUserFn       func(ctx context.Context, id uuid.UUID) error
	superuserExistsFn  func(ctx context.Context) (bool, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return models.User{ID: id}, nil
}

func (m *mockUserRepository) GetUserByLogin(ctx context.Context, login string) (models.User, error) {
	if m.getUserByLoginFn != nil {
		return m.getUserByLoginFn(ctx, login)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context, limit, offset uint64) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, id, patch)
	}
	return models.User{ID: id}, nil
}

func (m *mockUserRepository) UpdateUserStatus(ctx context.Context, id uuid.UUID, status models.UserStatus) error {
	if m.updateUserStatusFn != nil {
		return m.updateUserStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) SuperuserExists(ctx context.Context) (bool, error) {
	if m.superuserExistsFn != nil {
		return m.superuserExistsFn(ctx)
	}
	return false, nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	createSessionFn          func(ctx context.Context, session models.Session) (models.Session, error)
	findValidSessionFn       func(ctx context.Context, userID uuid.UUID, refreshToken string) (models.Session, error)
	invalidateSessionFn      func(ctx context.Context, userID uuid.UUID, refreshToken string) error
	invalidateUserSessionsFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	deleteExpiredSessionsFn  func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(ctx, session)
	}
	return session, nil
}

func (m *mockSessionRepository) FindValidSession(ctx context.Context, userID uuid.UUID, refreshToken string) (models.Session, error) {
	if m.findValidSessionFn != nil {
		return m.findValidSessionFn(ctx, userID, refreshToken)
	}
	return models.Session{}, nil
}

func (m *mockSessionRepository) InvalidateSession(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	if m.invalidateSessionFn != nil {
		return m.invalidateSessionFn(ctx, userID, refreshToken)
	}
	return nil
}

func (m *mockSessionRepository) InvalidateUserSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.invalidateUserSessionsFn != nil {
		return m.invalidateUserSessionsFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	if m.deleteExpiredSessionsFn != nil {
		return m.deleteExpiredSessionsFn(ctx)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.StaffRepository
// ─────────────────────────────────────────────

type mockStaffRepository struct {
	createStaffFn               func(ctx context.Context, staff models.Staff, permissionIDs []uuid.UUID) (models.Staff, error)
	getStaffByIDFn              func(ctx context.Context, id uuid.UUID) (models.Staff, error)
	getStaffByUserIDFn          func(ctx context.Context, userID uuid.UUID) (models.Staff, error)
	listStaffFn                 func(ctx context.Context, limit, offset uint64) ([]models.Staff, error)
	updateStaffFn               func(ctx context.Context, id uuid.UUID, patch models.StaffPatch) (models.Staff, error)
	deleteStaffFn               func(ctx context.Context, id uuid.UUID) error
	superuserRoleExistsFn       func(ctx context.Context) (bool, error)
	superuserDepartmentExistsFn func(ctx context.Context) (bool, error)
}

func (m *mockStaffRepository) CreateStaff(ctx context.Context, staff models.Staff, permissionIDs []uuid.UUID) (models.Staff, error) {
	if m.createStaffFn != nil {
		return m.createStaffFn(ctx, staff, permissionIDs)
	}
	return staff, nil
}

func (m *mockStaffRepository) GetStaffByID(ctx context.Context, id uuid.UUID) (models.Staff, error) {
	if m.getStaffByIDFn != nil {
		return m.getStaffByIDFn(ctx, id)
	}
	return models.Staff{ID: id}, nil
}

func (m *mockStaffRepository) GetStaffByUserID(ctx context.Context, userID uuid.UUID) (models.Staff, error) {
	if m.getStaffByUserIDFn != nil {
		return m.getStaffByUserIDFn(ctx, userID)
	}
	return models.Staff{UserID: userID}, nil
}

func (m *mockStaffRepository) ListStaff(ctx context.Context, limit, offset uint64) ([]models.Staff, error) {
	if m.listStaffFn != nil {
		return m.listStaffFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockStaffRepository) UpdateStaff(ctx context.Context, id uuid.UUID, patch models.StaffPatch) (models.Staff, error) {
	if m.updateStaffFn != nil {
		return m.updateStaffFn(ctx, id, patch)
	}
	return models.Staff{ID: id}, nil
}

func (m *mockStaffRepository) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if m.deleteStaffFn != nil {
		return m.deleteStaffFn(ctx, id)
	}
	return nil
}

func (m *mockStaffRepository) SuperuserRoleExists(ctx context.Context) (bool, error) {
	if m.superuserRoleExistsFn != nil {
		return m.superuserRoleExistsFn(ctx)
	}
	return false, nil
}

func (m *mockStaffRepository) SuperuserDepartmentExists(ctx context.Context) (bool, error) {
	if m.superuserDepartmentExistsFn != nil {
		return m.superuserDepartmentExistsFn(ctx)
	}
	return false, nil
}

// ─────────────────────────────────────────────
// Mock: store.ActivityLogRepository
// ─────────────────────────────────────────────

type mockActivityLogRepository struct {
	createActivityLogFn func(ctx context.Context, record models.ActivityLog) (models.ActivityLog, error)
	listActivityLogsFn  func(ctx context.Context, filter models.ActivityLogFilter) ([]models.ActivityLog, error)
}

func (m *mockActivityLogRepository) CreateActivityLog(ctx context.Context, record models.ActivityLog) (models.ActivityLog, error) {
	if m.createActivityLogFn != nil {
		return m.createActivityLogFn(ctx, record)
	}
	return record, nil
}

func (m *mockActivityLogRepository) ListActivityLogs(ctx context.Context, filter models.ActivityLogFilter) ([]models.ActivityLog, error) {
	if m.listActivityLogsFn != nil {
		return m.listActivityLogsFn(ctx, filter)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.APIKeyRepository
// ─────────────────────────────────────────────

type mockAPIKeyRepository struct {
	createAPIKeyFn      func(ctx context.Context, key models.APIKey, permissionIDs []uuid.UUID) (models.APIKey, error)
	getAPIKeyByIDFn     func(ctx context.Context, id uuid.UUID) (models.APIKey, error)
	getAPIKeyByHashFn   func(ctx context.Context, keyHash string) (models.APIKey, error)
	listAPIKeysByUserFn func(ctx context.Context, userID uuid.UUID) ([]models.APIKey, error)
	updateAPIKeyFn      func(ctx context.Context, id uuid.UUID, patch models.APIKeyPatch) (models.APIKey, error)
	deleteAPIKeyFn      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAPIKeyRepository) CreateAPIKey(ctx context.Context, key models.APIKey, permissionIDs []uuid.UUID) (models.APIKey, error) {
	if m.createAPIKeyFn != nil {
		return m.createAPIKeyFn(ctx, key, permissionIDs)
	}
	return key, nil
}

func (m *mockAPIKeyRepository) GetAPIKeyByID(ctx context.Context, id uuid.UUID) (models.APIKey, error) {
	if m.getAPIKeyByIDFn != nil {
		return m.getAPIKeyByIDFn(ctx, id)
	}
	return models.APIKey{ID: id}, nil
}

func (m *mockAPIKeyRepository) GetAPIKeyByHash(ctx context.Context, keyHash string) (models.APIKey, error) {
	if m.getAPIKeyByHashFn != nil {
		return m.getAPIKeyByHashFn(ctx, keyHash)
	}
	return models.APIKey{}, nil
}

func (m *mockAPIKeyRepository) ListAPIKeysByUser(ctx context.Context, userID uuid.UUID) ([]models.APIKey, error) {
	if m.listAPIKeysByUserFn != nil {
		return m.listAPIKeysByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockAPIKeyRepository) UpdateAPIKey(ctx context.Context, id uuid.UUID, patch models.APIKeyPatch) (models.APIKey, error) {
	if m.updateAPIKeyFn != nil {
		return m.updateAPIKeyFn(ctx, id, patch)
	}
	return models.APIKey{ID: id}, nil
}

func (m *mockAPIKeyRepository) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	if m.deleteAPIKeyFn != nil {
		return m.deleteAPIKeyFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.KYCRepository
// ─────────────────────────────────────────────

type mockKYCRepository struct {
	createKYCFn            func(ctx context.Context, kyc models.KYCVerification) (models.KYCVerification, error)
	getLatestKYCByUserIDFn func(ctx context.Context, userID uuid.UUID) (models.KYCVerification, error)
	listKYCByUserIDFn      func(ctx context.Context, userID uuid.UUID) ([]models.KYCVerification, error)
	updateKYCStatusFn      func(ctx context.Context, id uuid.UUID, status models.KYCStatus, notes string) (models.KYCVerification, error)
}

func (m *mockKYCRepository) CreateKYC(ctx context.Context, kyc models.KYCVerification) (models.KYCVerification, error) {
	if m.createKYCFn != nil {
		return m.createKYCFn(ctx, kyc)
	}
	return kyc, nil
}

func (m *mockKYCRepository) GetLatestKYCByUserID(ctx context.Context, userID uuid.UUID) (models.KYCVerification, error) {
	if m.getLatestKYCByUserIDFn != nil {
		return m.getLatestKYCByUserIDFn(ctx, userID)
	}
	return models.KYCVerification{UserID: userID}, nil
}

func (m *mockKYCRepository) ListKYCByUserID(ctx context.Context, userID uuid.UUID) ([]models.KYCVerification, error) {
	if m.listKYCByUserIDFn != nil {
		return m.listKYCByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockKYCRepository) UpdateKYCStatus(ctx context.Context, id uuid.UUID, status models.KYCStatus, notes string) (models.KYCVerification, error) {
	if m.updateKYCStatusFn != nil {
		return m.updateKYCStatusFn(ctx, id, status, notes)
	}
	return models.KYCVerification{ID: id, Status: status, Notes: notes}, nil
}

// ─────────────────────────────────────────────
// Mock: ActivityService
// ─────────────────────────────────────────────

type mockActivityService struct {
	recordFn func(ctx context.Context, actor, target *models.User, activityType, description string, meta models.RequestMeta) (models.ActivityLog, error)
	listFn   func(ctx context.Context, actor models.User, filter models.ActivityLogFilter) ([]models.ActivityLog, error)

	recorded []string
}

func (m *mockActivityService) Record(ctx context.Context, actor, target *models.User, activityType, description string, meta models.RequestMeta) (models.ActivityLog, error) {
	m.recorded = append(m.recorded, activityType)
	if m.recordFn != nil {
		return m.recordFn(ctx, actor, target, activityType, description, meta)
	}
	return models.ActivityLog{}, nil
}

func (m *mockActivityService) List(ctx context.Context, actor models.User, filter models.ActivityLogFilter) ([]models.ActivityLog, error) {
	if m.listFn != nil {
		return m.listFn(ctx, actor, filter)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: SessionService
// ─────────────────────────────────────────────

type mockSessionService struct {
	createFn     func(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, expiresAt time.Time, meta models.RequestMeta) (models.Session, error)
	invalidateFn func(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, meta models.RequestMeta) error
	validateFn   func(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, meta models.RequestMeta) (models.Session, error)
}

func (m *mockSessionService) Create(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, expiresAt time.Time, meta models.RequestMeta) (models.Session, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, userID, refreshToken, expiresAt, meta)
	}
	return models.Session{}, nil
}

func (m *mockSessionService) Invalidate(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, meta models.RequestMeta) error {
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx, actor, userID, refreshToken, meta)
	}
	return nil
}

func (m *mockSessionService) ValidateRefreshToken(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, meta models.RequestMeta) (models.Session, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, actor, userID, refreshToken, meta)
	}
	return models.Session{}, nil
}

// ─────────────────────────────────────────────
// Mock: PermissionRepository
// ─────────────────────────────────────────────

type mockPermissionRepository struct {
	createPermissionFn  func(ctx context.Context, permission models.Permission) (models.Permission, error)
	getPermissionByIDFn func(ctx context.Context, id uuid.UUID) (models.Permission, error)
	listPermissionsFn   func(ctx context.Context) ([]models.Permission, error)
	renamePermissionFn  func(ctx context.Context, id uuid.UUID, name string) (models.Permission, error)
	deletePermissionFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPermissionRepository) CreatePermission(ctx context.Context, permission models.Permission) (models.Permission, error) {
	if m.createPermissionFn != nil {
		return m.createPermissionFn(ctx, permission)
	}
	return permission, nil
}

func (m *mockPermissionRepository) GetPermissionByID(ctx context.Context, id uuid.UUID) (models.Permission, error) {
	if m.getPermissionByIDFn != nil {
		return m.getPermissionByIDFn(ctx, id)
	}
	return models.Permission{ID: id}, nil
}

func (m *mockPermissionRepository) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	if m.listPermissionsFn != nil {
		return m.listPermissionsFn(ctx)
	}
	return nil, nil
}

func (m *mockPermissionRepository) RenamePermission(ctx context.Context, id uuid.UUID, name string) (models.Permission, error) {
	if m.renamePermissionFn != nil {
		return m.renamePermissionFn(ctx, id, name)
	}
	return models.Permission{ID: id, Name: name}, nil
}

func (m *mockPermissionRepository) DeletePermission(ctx context.Context, id uuid.UUID) error {
	if m.deletePermissionFn != nil {
		return m.deletePermissionFn(ctx, id)
	}
	return nil
}
