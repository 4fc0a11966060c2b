package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// permissionService is the concrete implementation of [PermissionService].
// Reads are open to any authenticated caller; mutations require an admin or
// superuser staff actor holding the matching named permission grant.
type permissionService struct {
	permissionRepository store.PermissionRepository
	staffRepository      store.StaffRepository
	logger               *logger.Logger
}

// NewPermissionService constructs a [PermissionService].
func NewPermissionService(permissionRepository store.PermissionRepository, staffRepository store.StaffRepository, logger *logger.Logger) PermissionService {
	return &permissionService{
		permissionRepository: permissionRepository,
		staffRepository:      staffRepository,
		logger:               logger,
	}
}

// CreatePermission declares a new named capability.
// Returns [store.ErrPermissionNameTaken] on a duplicate name.
func (s *permissionService) CreatePermission(ctx context.Context, actor models.User, req models.CreatePermissionRequest) (models.Permission, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" {
		return models.Permission{}, ErrInvalidDataProvided
	}
	if err := s.requireManager(ctx, actor, permPermissionCreate); err != nil {
		return models.Permission{}, err
	}

	permission := models.Permission{
		ID:   utils.NewUUID(),
		Name: req.Name,
	}

	created, err := s.permissionRepository.CreatePermission(ctx, permission)
	if err != nil {
		log.Err(err).Str("name", req.Name).Msg("permission creation ended with error")
		return models.Permission{}, fmt.Errorf("permission creation ended with error: %w", err)
	}

	return created, nil
}

// GetPermission returns one permission by id.
func (s *permissionService) GetPermission(ctx context.Context, id uuid.UUID) (models.Permission, error) {
	return s.permissionRepository.GetPermissionByID(ctx, id)
}

// ListPermissions returns the whole catalogue.
func (s *permissionService) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	return s.permissionRepository.ListPermissions(ctx)
}

// RenamePermission changes a permission's name.
func (s *permissionService) RenamePermission(ctx context.Context, actor models.User, id uuid.UUID, name string) (models.Permission, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		return models.Permission{}, ErrInvalidDataProvided
	}
	if err := s.requireManager(ctx, actor, permPermissionUpdate); err != nil {
		return models.Permission{}, err
	}

	renamed, err := s.permissionRepository.RenamePermission(ctx, id, name)
	if err != nil {
		log.Err(err).Str("permission_id", id.String()).Msg("permission rename ended with error")
		return models.Permission{}, fmt.Errorf("permission rename ended with error: %w", err)
	}

	return renamed, nil
}

// DeletePermission removes a permission; grants cascade away.
func (s *permissionService) DeletePermission(ctx context.Context, actor models.User, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	if err := s.requireManager(ctx, actor, permPermissionDelete); err != nil {
		return err
	}

	if err := s.permissionRepository.DeletePermission(ctx, id); err != nil {
		log.Err(err).Str("permission_id", id.String()).Msg("permission deletion ended with error")
		return fmt.Errorf("permission deletion ended with error: %w", err)
	}

	return nil
}

func (s *permissionService) requireManager(ctx context.Context, actor models.User, grant string) error {
	staff, err := s.staffRepository.GetStaffByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrStaffNotFound) {
			return fmt.Errorf("%w: a staff profile is required to manage permissions", ErrActionForbidden)
		}
		return fmt.Errorf("actor staff lookup failed: %w", err)
	}
	if staff.Role != models.RoleAdmin && staff.Role != models.RoleSuperuser {
		return fmt.Errorf("%w: an admin or superuser actor is required", ErrActionForbidden)
	}
	return requireGrant(staff, grant)
}
