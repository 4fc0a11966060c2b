package service

import (
	"context"
	"errors"
	"testing"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRestrictionService(staffRepo *mockStaffRepository) RestrictionService {
	return NewRestrictionService(staffRepo, logger.Nop())
}

func staffWithRole(role models.StaffRole) models.Staff {
	return models.Staff{ID: utils.NewUUID(), UserID: utils.NewUUID(), Role: role}
}

func TestEnforce_SuperuserTarget(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{})
	superuser := staffWithRole(models.RoleSuperuser)
	admin := staffWithRole(models.RoleAdmin)

	tests := []struct {
		name    string
		actor   models.Staff
		action  Action
		allowed bool
	}{
		{"self view allowed", superuser, ActionView, true},
		{"self delete allowed", superuser, ActionDelete, true},
		{"self view_logs allowed", superuser, ActionViewLogs, true},
		{"self edit denied", superuser, ActionEdit, false},
		{"admin view denied", admin, ActionView, false},
		{"admin edit denied", admin, ActionEdit, false},
		{"admin delete denied", admin, ActionDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Enforce(tt.actor, superuser, tt.action)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrActionForbidden)
			}
		})
	}
}

func TestEnforce_AdminTarget(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{})
	target := staffWithRole(models.RoleAdmin)

	tests := []struct {
		name    string
		actor   models.Staff
		allowed bool
	}{
		{"superuser actor allowed", staffWithRole(models.RoleSuperuser), true},
		{"admin actor denied", staffWithRole(models.RoleAdmin), false},
		{"support actor denied", staffWithRole(models.RoleSupport), false},
		{"general actor denied", staffWithRole(models.RoleGeneral), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Enforce(tt.actor, target, ActionView)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrActionForbidden)
			}
		})
	}
}

func TestEnforce_RegularTarget(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{})
	target := staffWithRole(models.RoleSupport)

	tests := []struct {
		name    string
		actor   models.Staff
		allowed bool
	}{
		{"superuser actor allowed", staffWithRole(models.RoleSuperuser), true},
		{"admin actor allowed", staffWithRole(models.RoleAdmin), true},
		{"support actor denied", staffWithRole(models.RoleSupport), false},
		{"compliance actor denied", staffWithRole(models.RoleCompliance), false},
		{"manager actor denied", staffWithRole(models.RoleManager), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Enforce(tt.actor, target, ActionEdit)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrActionForbidden)
			}
		})
	}
}

func TestEnforce_ZeroStaffIDCannotActOnSuperuser(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{})

	// both records are unsaved zero values; the matching nil IDs must not
	// read as the superuser acting on itself
	actor := models.Staff{Role: models.RoleAdmin}
	target := models.Staff{Role: models.RoleSuperuser}

	err := svc.Enforce(actor, target, ActionView)
	assert.ErrorIs(t, err, ErrActionForbidden)
}

func TestEnforce_UnsupportedAction(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{})
	actor := staffWithRole(models.RoleSuperuser)
	target := staffWithRole(models.RoleGeneral)

	err := svc.Enforce(actor, target, Action("promote"))
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}

func TestEnsureSingleSuperuser_FirstCreationAllowed(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{
		superuserRoleExistsFn:       func(ctx context.Context) (bool, error) { return false, nil },
		superuserDepartmentExistsFn: func(ctx context.Context) (bool, error) { return false, nil },
	})

	err := svc.EnsureSingleSuperuser(context.Background(), models.RoleSuperuser, models.DepartmentSuperuser)
	assert.NoError(t, err)
}

func TestEnsureSingleSuperuser_SecondRoleRejected(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{
		superuserRoleExistsFn: func(ctx context.Context) (bool, error) { return true, nil },
	})

	err := svc.EnsureSingleSuperuser(context.Background(), models.RoleSuperuser, models.DepartmentGeneral)
	assert.ErrorIs(t, err, ErrSuperuserRoleExists)
}

func TestEnsureSingleSuperuser_SecondDepartmentRejected(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{
		superuserRoleExistsFn:       func(ctx context.Context) (bool, error) { return false, nil },
		superuserDepartmentExistsFn: func(ctx context.Context) (bool, error) { return true, nil },
	})

	err := svc.EnsureSingleSuperuser(context.Background(), models.RoleAdmin, models.DepartmentSuperuser)
	assert.ErrorIs(t, err, ErrSuperuserDepartmentExists)
}

func TestEnsureSingleSuperuser_NonSuperuserSkipsChecks(t *testing.T) {
	svc := newTestRestrictionService(&mockStaffRepository{
		superuserRoleExistsFn: func(ctx context.Context) (bool, error) {
			t.Fatal("role check must not run for a non-superuser role")
			return false, nil
		},
		superuserDepartmentExistsFn: func(ctx context.Context) (bool, error) {
			t.Fatal("department check must not run for a non-superuser department")
			return false, nil
		},
	})

	err := svc.EnsureSingleSuperuser(context.Background(), models.RoleAdmin, models.DepartmentFinance)
	require.NoError(t, err)
}

func TestEnsureSingleSuperuser_CheckErrorPropagates(t *testing.T) {
	checkErr := errors.New("db down")
	svc := newTestRestrictionService(&mockStaffRepository{
		superuserRoleExistsFn: func(ctx context.Context) (bool, error) { return false, checkErr },
	})

	err := svc.EnsureSingleSuperuser(context.Background(), models.RoleSuperuser, models.DepartmentGeneral)
	assert.ErrorIs(t, err, checkErr)
}
