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

const (
	activityStaffCreated = "staff_created"
	activityStaffUpdated = "staff_updated"
	activityStaffDeleted = "staff_deleted"
)

// staffService is the concrete implementation of [StaffService]. Every
// operation resolves the actor's own staff profile, runs the restriction
// engine against the target, and requires the matching named permission
// grant before touching storage.
type staffService struct {
	staffRepository    store.StaffRepository
	restrictionService RestrictionService
	activityService    ActivityService
	logger             *logger.Logger
}

// NewStaffService constructs a [StaffService].
func NewStaffService(staffRepository store.StaffRepository, restrictionService RestrictionService, activityService ActivityService, logger *logger.Logger) StaffService {
	return &staffService{
		staffRepository:    staffRepository,
		restrictionService: restrictionService,
		activityService:    activityService,
		logger:             logger,
	}
}

// CreateStaff attaches a staff profile to a user.
//
// Bootstrap exception: when no staff exist at all, a superuser user account
// may create the first (superuser) profile without holding one itself.
// Otherwise the actor's profile must pass the create rule against the
// requested role, and a superuser role/department goes through the
// single-superuser pre-check; the partial unique indexes are the final
// guard either way.
func (s *staffService) CreateStaff(ctx context.Context, actor models.User, req models.CreateStaffRequest, meta models.RequestMeta) (models.Staff, error) {
	log := logger.FromContext(ctx)

	if !models.ValidRole(req.Role) || !models.ValidDepartment(req.Department) {
		return models.Staff{}, ErrInvalidDataProvided
	}

	target := models.Staff{Role: req.Role, Department: req.Department}

	actorStaff, err := s.staffRepository.GetStaffByUserID(ctx, actor.ID)
	switch {
	case err == nil:
		if err := s.restrictionService.Enforce(actorStaff, target, ActionCreate); err != nil {
			return models.Staff{}, err
		}
		if err := requireGrant(actorStaff, permStaffCreate); err != nil {
			return models.Staff{}, err
		}
	case errors.Is(err, store.ErrStaffNotFound):
		if !actor.IsSuperuser {
			return models.Staff{}, fmt.Errorf("%w: a staff profile is required to create staff", ErrActionForbidden)
		}
	default:
		return models.Staff{}, fmt.Errorf("actor staff lookup failed: %w", err)
	}

	if err := s.restrictionService.EnsureSingleSuperuser(ctx, req.Role, req.Department); err != nil {
		return models.Staff{}, err
	}

	staff := models.Staff{
		ID:         utils.NewUUID(),
		UserID:     req.UserID,
		Role:       req.Role,
		Department: req.Department,
	}

	created, err := s.staffRepository.CreateStaff(ctx, staff, req.PermissionIDs)
	if err != nil {
		log.Err(err).Str("user_id", req.UserID.String()).Msg("staff creation ended with error")
		return models.Staff{}, fmt.Errorf("staff creation ended with error: %w", err)
	}

	if _, err := s.activityService.Record(ctx, &actor, nil, activityStaffCreated, fmt.Sprintf("staff profile %s created", created.ID), meta); err != nil {
		return models.Staff{}, err
	}

	return created, nil
}

// GetStaff returns one staff profile, gated by the view rule.
func (s *staffService) GetStaff(ctx context.Context, actor models.User, id uuid.UUID) (models.Staff, error) {
	target, err := s.staffRepository.GetStaffByID(ctx, id)
	if err != nil {
		return models.Staff{}, err
	}

	actorStaff, err := s.requireStaff(ctx, actor)
	if err != nil {
		return models.Staff{}, err
	}
	if err := s.restrictionService.Enforce(actorStaff, target, ActionView); err != nil {
		return models.Staff{}, err
	}
	if err := requireGrant(actorStaff, permStaffRead); err != nil {
		return models.Staff{}, err
	}

	return target, nil
}

// ListStaff returns a page of staff profiles. Listing spans every profile,
// so it requires an admin or superuser actor.
func (s *staffService) ListStaff(ctx context.Context, actor models.User, limit, offset uint64) ([]models.Staff, error) {
	actorStaff, err := s.requireStaff(ctx, actor)
	if err != nil {
		return nil, err
	}
	if actorStaff.Role != models.RoleAdmin && actorStaff.Role != models.RoleSuperuser {
		return nil, fmt.Errorf("%w: an admin or superuser actor is required", ErrActionForbidden)
	}
	if err := requireGrant(actorStaff, permStaffList); err != nil {
		return nil, err
	}

	return s.staffRepository.ListStaff(ctx, limit, offset)
}

// UpdateStaff applies a partial update, gated by the edit rule. The
// superuser role and department can never be assigned after creation, and
// the edit rule itself makes the existing superuser profile immutable.
func (s *staffService) UpdateStaff(ctx context.Context, actor models.User, id uuid.UUID, patch models.StaffPatch, meta models.RequestMeta) (models.Staff, error) {
	log := logger.FromContext(ctx)

	if patch.Role != nil && !models.ValidRole(*patch.Role) {
		return models.Staff{}, ErrInvalidDataProvided
	}
	if patch.Department != nil && !models.ValidDepartment(*patch.Department) {
		return models.Staff{}, ErrInvalidDataProvided
	}
	if (patch.Role != nil && *patch.Role == models.RoleSuperuser) ||
		(patch.Department != nil && *patch.Department == models.DepartmentSuperuser) {
		return models.Staff{}, ErrCannotAssignSuperuser
	}

	target, err := s.staffRepository.GetStaffByID(ctx, id)
	if err != nil {
		return models.Staff{}, err
	}

	actorStaff, err := s.requireStaff(ctx, actor)
	if err != nil {
		return models.Staff{}, err
	}
	if err := s.restrictionService.Enforce(actorStaff, target, ActionEdit); err != nil {
		return models.Staff{}, err
	}
	if err := requireGrant(actorStaff, permStaffUpdate); err != nil {
		return models.Staff{}, err
	}

	updated, err := s.staffRepository.UpdateStaff(ctx, id, patch)
	if err != nil {
		log.Err(err).Str("staff_id", id.String()).Msg("staff update ended with error")
		return models.Staff{}, fmt.Errorf("staff update ended with error: %w", err)
	}

	if _, err := s.activityService.Record(ctx, &actor, nil, activityStaffUpdated, fmt.Sprintf("staff profile %s updated", id), meta); err != nil {
		return models.Staff{}, err
	}

	return updated, nil
}

// DeleteStaff removes a staff profile, gated by the delete rule.
func (s *staffService) DeleteStaff(ctx context.Context, actor models.User, id uuid.UUID, meta models.RequestMeta) error {
	log := logger.FromContext(ctx)

	target, err := s.staffRepository.GetStaffByID(ctx, id)
	if err != nil {
		return err
	}

	actorStaff, err := s.requireStaff(ctx, actor)
	if err != nil {
		return err
	}
	if err := s.restrictionService.Enforce(actorStaff, target, ActionDelete); err != nil {
		return err
	}
	if err := requireGrant(actorStaff, permStaffDelete); err != nil {
		return err
	}

	if err := s.staffRepository.DeleteStaff(ctx, id); err != nil {
		log.Err(err).Str("staff_id", id.String()).Msg("staff deletion ended with error")
		return fmt.Errorf("staff deletion ended with error: %w", err)
	}

	if _, err := s.activityService.Record(ctx, &actor, nil, activityStaffDeleted, fmt.Sprintf("staff profile %s deleted", id), meta); err != nil {
		return err
	}

	return nil
}

func (s *staffService) requireStaff(ctx context.Context, actor models.User) (models.Staff, error) {
	staff, err := s.staffRepository.GetStaffByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrStaffNotFound) {
			return models.Staff{}, fmt.Errorf("%w: a staff profile is required", ErrActionForbidden)
		}
		return models.Staff{}, fmt.Errorf("actor staff lookup failed: %w", err)
	}
	return staff, nil
}
