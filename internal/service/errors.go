package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown login identifier and a
	// wrong password. The two cases are never distinguished externally so
	// a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountSuspended blocks login for suspended accounts. Other
	// non-active statuses may still log in; protected endpoints enforce
	// the ACTIVE requirement separately.
	ErrAccountSuspended = errors.New("account is suspended")

	// ErrAccountNotActive is returned by the request gate when the token's
	// subject exists but its status is not ACTIVE.
	ErrAccountNotActive = errors.New("account is not active")

	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrRefreshTokenMissing is returned when a logout or refresh arrives
	// without the X-Refresh-Token header.
	ErrRefreshTokenMissing = errors.New("refresh token is missing")

	// ErrInvalidOrExpiredRefreshToken is the single external answer for a
	// refresh token that is unknown, already invalidated, or past its
	// expiry. The expired case additionally wraps [ErrSessionExpired] so
	// logs and tests can tell the causes apart.
	ErrInvalidOrExpiredRefreshToken = errors.New("invalid or expired refresh token")
	ErrSessionExpired               = errors.New("session is expired")

	// ErrActionForbidden is the restriction engine's denial.
	ErrActionForbidden = errors.New("action is forbidden")

	// ErrUnsupportedAction is returned for an action outside the declared
	// set (view, edit, delete, create, view_logs).
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrSuperuserRoleExists and ErrSuperuserDepartmentExists are the
	// conflict answers of the single-superuser pre-check.
	ErrSuperuserRoleExists       = errors.New("a superuser role already exists")
	ErrSuperuserDepartmentExists = errors.New("a superuser department already exists")

	// ErrCannotAssignSuperuser denies promoting an existing staff profile
	// to the superuser role or department. Superuser staff can only be
	// created, never made.
	ErrCannotAssignSuperuser = errors.New("superuser role and department cannot be assigned")
)
