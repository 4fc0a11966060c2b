package models

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole is the authorization role attached to a staff profile.
// Exactly one staff row may carry RoleSuperuser; the staffs table enforces
// this with a partial unique index.
type StaffRole string

const (
	RoleSuperuser  StaffRole = "superuser"
	RoleAdmin      StaffRole = "admin"
	RoleSupport    StaffRole = "support"
	RoleCompliance StaffRole = "compliance"
	RoleManager    StaffRole = "manager"
	RoleGeneral    StaffRole = "general"
)

// Department groups staff organisationally. DepartmentSuperuser is unique
// system-wide, mirroring RoleSuperuser.
type Department string

const (
	DepartmentSuperuser  Department = "superuser"
	DepartmentFinance    Department = "finance"
	DepartmentMarketing  Department = "marketing"
	DepartmentSupport    Department = "support"
	DepartmentCompliance Department = "compliance"
	DepartmentManagement Department = "management"
	DepartmentGeneral    Department = "general"
)

// Staff attaches a role and department to exactly one user, turning that
// user into an internal operator. Authorization between staff members is
// decided by the restriction engine over (actor, target, action).
type Staff struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Role       StaffRole  `json:"role"`
	Department Department `json:"department"`

	// Permissions are the named capabilities granted to this staff member
	// through the staff_permissions junction table.
	Permissions []Permission `json:"permissions,omitempty"`

	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// TableName returns the name of the database table
// associated with the Staff model.
func (s Staff) TableName() string {
	return "staffs"
}

// StaffPatch carries the mutable fields of a staff profile for partial
// updates. Nil pointers mean "leave unchanged".
type StaffPatch struct {
	Role          *StaffRole   `json:"role,omitempty"`
	Department    *Department  `json:"department,omitempty"`
	PermissionIDs *[]uuid.UUID `json:"permission_ids,omitempty"`
}

// HasPermission reports whether the staff profile carries a grant with the
// given name.
func (s Staff) HasPermission(name string) bool {
	for _, p := range s.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ValidRole reports whether r is one of the declared staff roles.
func ValidRole(r StaffRole) bool {
	switch r {
	case RoleSuperuser, RoleAdmin, RoleSupport, RoleCompliance, RoleManager, RoleGeneral:
		return true
	}
	return false
}

// ValidDepartment reports whether d is one of the declared departments.
func ValidDepartment(d Department) bool {
	switch d {
	case DepartmentSuperuser, DepartmentFinance, DepartmentMarketing, DepartmentSupport,
		DepartmentCompliance, DepartmentManagement, DepartmentGeneral:
		return true
	}
	return false
}
