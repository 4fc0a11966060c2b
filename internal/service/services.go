package service

import (
	"github.com/corepay/identity-service/internal/config"
	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/validators"
)

// Services bundles every business service behind one constructor so the
// handler layer takes a single dependency.
type Services struct {
	AuthService        AuthService
	SessionService     SessionService
	RestrictionService RestrictionService
	ActivityService    ActivityService
	UserService        UserService
	StaffService       StaffService
	PermissionService  PermissionService
	APIKeyService      APIKeyService
	KYCService         KYCService
}

// NewServices wires the full service graph over the repositories.
// The restriction engine and the audit sink come first because almost
// everything else depends on them.
func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	restrictionService := NewRestrictionService(repositories.StaffRepository, logger)
	activityService := NewActivityService(repositories.ActivityLogRepository, repositories.StaffRepository, restrictionService, logger)
	sessionService := NewSessionService(repositories.SessionRepository, activityService, logger)
	validator := validators.NewIdentityValidator()

	return &Services{
		AuthService:        NewAuthService(repositories.UserRepository, sessionService, activityService, cfg.App, logger),
		SessionService:     sessionService,
		RestrictionService: restrictionService,
		ActivityService:    activityService,
		UserService:        NewUserService(repositories.UserRepository, repositories.SessionRepository, repositories.StaffRepository, activityService, validator, logger),
		StaffService:       NewStaffService(repositories.StaffRepository, restrictionService, activityService, logger),
		PermissionService:  NewPermissionService(repositories.PermissionRepository, repositories.StaffRepository, logger),
		APIKeyService:      NewAPIKeyService(repositories.APIKeyRepository, repositories.StaffRepository, cfg.App, validator, logger),
		KYCService:         NewKYCService(repositories.KYCRepository, repositories.UserRepository, repositories.StaffRepository, activityService, validator, logger),
	}
}
