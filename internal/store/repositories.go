package store

import (
	"github.com/corepay/identity-service/internal/logger"
)

// Repositories bundles every repository behind one constructor so the service
// layer takes a single dependency.
type Repositories struct {
	UserRepository        UserRepository
	SessionRepository     SessionRepository
	StaffRepository       StaffRepository
	PermissionRepository  PermissionRepository
	APIKeyRepository      APIKeyRepository
	ActivityLogRepository ActivityLogRepository
	KYCRepository         KYCRepository
}

// NewRepositories wires every repository to the shared database connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db, log),
		SessionRepository:     NewSessionRepository(db, log),
		StaffRepository:       NewStaffRepository(db, log),
		PermissionRepository:  NewPermissionRepository(db, log),
		APIKeyRepository:      NewAPIKeyRepository(db, log),
		ActivityLogRepository: NewActivityLogRepository(db, log),
		KYCRepository:         NewKYCRepository(db, log),
	}
}
