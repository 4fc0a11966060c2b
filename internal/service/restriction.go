package service

import (
	"context"
	"fmt"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// Action is a staff-on-staff operation gated by the restriction engine.
type Action string

const (
	ActionView     Action = "view"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionCreate   Action = "create"
	ActionViewLogs Action = "view_logs"
)

// Named permission strings required by the staff-scope operations, on top
// of the restriction engine's role rules. Grants are attached to staff
// profiles through the staff_permissions junction table.
const (
	permStaffCreate = "staff:create"
	permStaffRead   = "staff:read"
	permStaffList   = "staff:list"
	permStaffUpdate = "staff:update"
	permStaffDelete = "staff:delete"

	permPermissionCreate = "permission:create"
	permPermissionUpdate = "permission:update"
	permPermissionDelete = "permission:delete"

	permCreateAPIKey = "create_api_key"
	permViewAPIKey   = "view_api_key"
	permUpdateAPIKey = "update_api_key"
	permDeleteAPIKey = "delete_api_key"

	permKYCView   = "kyc:view"
	permKYCReview = "kyc:review"

	permViewLogs = "view_logs"
)

// requireGrant checks that staff holds the named permission. The superuser
// staff role holds every permission implicitly; everyone else must carry an
// explicit grant.
func requireGrant(staff models.Staff, name string) error {
	if staff.Role == models.RoleSuperuser {
		return nil
	}
	if !staff.HasPermission(name) {
		return fmt.Errorf("%w: permission %q is required", ErrActionForbidden, name)
	}
	return nil
}

// restrictionService implements [RestrictionService]. Enforce is a pure
// decision function over (actor, target, action); only the superuser
// pre-checks touch storage.
type restrictionService struct {
	staffRepository store.StaffRepository
	logger          *logger.Logger
}

// NewRestrictionService constructs a [RestrictionService] using the staff
// repository for the superuser existence pre-checks.
func NewRestrictionService(staffRepository store.StaffRepository, logger *logger.Logger) RestrictionService {
	return &restrictionService{
		staffRepository: staffRepository,
		logger:          logger,
	}
}

// Enforce decides whether actor may perform action on target.
//
// The rule lattice, from most to least protected target:
//   - target role superuser: only the superuser acting on their own staff
//     record, and even then edit is denied (the superuser profile is
//     immutable after creation).
//   - target role admin: only a superuser actor.
//   - any other target: an admin or superuser actor.
//
// Every denial is an error wrapping [ErrActionForbidden]; an action outside
// the declared set returns [ErrUnsupportedAction].
func (s *restrictionService) Enforce(actor, target models.Staff, action Action) error {
	switch action {
	case ActionView, ActionEdit, ActionDelete, ActionCreate, ActionViewLogs:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}

	switch {
	case target.Role == models.RoleSuperuser:
		// a zero staff ID must never pass the self check, or an
		// unsaved record could impersonate the superuser
		if actor.ID == uuid.Nil || actor.ID != target.ID {
			return fmt.Errorf("%w: only the superuser may act on the superuser profile", ErrActionForbidden)
		}
		if action == ActionEdit {
			return fmt.Errorf("%w: the superuser profile is immutable", ErrActionForbidden)
		}

	case target.Role == models.RoleAdmin:
		if actor.Role != models.RoleSuperuser {
			return fmt.Errorf("%w: only a superuser may act on an admin profile", ErrActionForbidden)
		}

	default:
		if actor.Role != models.RoleAdmin && actor.Role != models.RoleSuperuser {
			return fmt.Errorf("%w: an admin or superuser actor is required", ErrActionForbidden)
		}
	}

	return nil
}

// EnsureSingleSuperuser rejects a staff creation that would introduce a
// second superuser role or department. It is a check-then-act fast path;
// the partial unique indexes on the staffs table remain the source of truth
// and close the race between concurrent creations.
func (s *restrictionService) EnsureSingleSuperuser(ctx context.Context, role models.StaffRole, department models.Department) error {
	log := logger.FromContext(ctx)

	if role == models.RoleSuperuser {
		exists, err := s.staffRepository.SuperuserRoleExists(ctx)
		if err != nil {
			log.Err(err).Str("func", "*restrictionService.EnsureSingleSuperuser").Msg("superuser role check failed")
			return fmt.Errorf("superuser role check failed: %w", err)
		}
		if exists {
			return ErrSuperuserRoleExists
		}
	}

	if department == models.DepartmentSuperuser {
		exists, err := s.staffRepository.SuperuserDepartmentExists(ctx)
		if err != nil {
			log.Err(err).Str("func", "*restrictionService.EnsureSingleSuperuser").Msg("superuser department check failed")
			return fmt.Errorf("superuser department check failed: %w", err)
		}
		if exists {
			return ErrSuperuserDepartmentExists
		}
	}

	return nil
}
