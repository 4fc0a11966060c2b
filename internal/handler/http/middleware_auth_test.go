package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/service"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// protectedProbe mounts the auth middleware in front of a handler that
// records whether it ran and what identity it saw.
func protectedProbe(auth service.AuthService, users service.UserService) (http.Handler, *models.User) {
	h := NewHandler(testServices(auth, users), logger.Nop())

	seen := &models.User{}
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := currentUser(r); ok {
			*seen = user
		}
		w.WriteHeader(http.StatusOK)
	})

	return h.auth(probe), seen
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	handler, _ := protectedProbe(&mockAuthService{}, &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	handler, _ := protectedProbe(&mockAuthService{}, &mockUserService{})

	tests := []struct {
		name   string
		header string
	}{
		{"no token", "Bearer"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpired
		},
	}
	handler, _ := protectedProbe(auth, &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrTokenIsExpired.Error())
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsInvalid
		},
	}
	handler, _ := protectedProbe(auth, &mockUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_SubjectGone(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			return models.Token{UserID: uuid.New()}, nil
		},
	}
	users := &mockUserService{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	handler, _ := protectedProbe(auth, users)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer orphan")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthMiddleware_AccountNotActive(t *testing.T) {
	statuses := []models.UserStatus{models.StatusPendingKYC, models.StatusSuspended}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			user := activeUser()
			user.Status = status

			auth := &mockAuthService{
				parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
					return models.Token{UserID: user.ID}, nil
				},
			}
			users := &mockUserService{
				findByIDFn: func(ctx context.Context, id uuid.UUID) (models.User, error) { return user, nil },
			}
			handler, _ := protectedProbe(auth, users)

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.Header.Set("Authorization", "Bearer valid")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestAuthMiddleware_ActiveUserPassesThrough(t *testing.T) {
	user := activeUser()
	auth := &mockAuthService{
		parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "valid", tokenString)
			return models.Token{UserID: user.ID}, nil
		},
	}
	users := &mockUserService{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (models.User, error) {
			require.Equal(t, user.ID, id)
			return user, nil
		},
	}
	handler, seen := protectedProbe(auth, users)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, seen.ID)
}

func TestCheckHTTPMethod_UnregisteredMethodHidden(t *testing.T) {
	router := newTestRouter(&mockAuthService{}, &mockUserService{})

	// /api/auth/login only accepts POST; a GET must look like a missing route
	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
