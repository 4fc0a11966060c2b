package http

import (
	"errors"
	"net/http"

	"github.com/corepay/identity-service/internal/service"
	"github.com/corepay/identity-service/internal/store"
)

// errorStatusMap is ordered: an error chain may carry several sentinels
// (e.g. a refresh-token rejection wraps the session store's not-found), and
// the first match wins, so service-level sentinels come before store-level
// ones.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrRefreshTokenMissing, http.StatusBadRequest},
	{ErrMissingRefreshTokenHeader, http.StatusBadRequest},
	{service.ErrUnsupportedAction, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpired, http.StatusUnauthorized},
	{service.ErrTokenIsInvalid, http.StatusUnauthorized},
	{service.ErrInvalidOrExpiredRefreshToken, http.StatusUnauthorized},
	{service.ErrAccountSuspended, http.StatusForbidden},
	{service.ErrAccountNotActive, http.StatusForbidden},
	{service.ErrActionForbidden, http.StatusForbidden},
	{service.ErrCannotAssignSuperuser, http.StatusForbidden},
	{service.ErrSuperuserRoleExists, http.StatusConflict},
	{service.ErrSuperuserDepartmentExists, http.StatusConflict},

	{store.ErrUsernameAlreadyTaken, http.StatusConflict},
	{store.ErrEmailAlreadyRegistered, http.StatusConflict},
	{store.ErrSuperuserAlreadyExists, http.StatusConflict},
	{store.ErrRefreshTokenAlreadyUsed, http.StatusConflict},
	{store.ErrPermissionNameTaken, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrSessionNotFound, http.StatusNotFound},
	{store.ErrStaffNotFound, http.StatusNotFound},
	{store.ErrPermissionNotFound, http.StatusNotFound},
	{store.ErrAPIKeyNotFound, http.StatusNotFound},
	{store.ErrKYCNotFound, http.StatusNotFound},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}
