package service

import (
	"context"
	"testing"
	"time"

	"github.com/corepay/identity-service/internal/config"
	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSignKey = "test-sign-key"

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         testSignKey,
		TokenIssuer:          "identity-service-test",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 168 * time.Hour,
	}
}

func newTestAuthService(userRepo *mockUserRepository, sessions *mockSessionService, sink *mockActivityService) AuthService {
	return NewAuthService(userRepo, sessions, sink, testAppConfig(), logger.Nop())
}

func registeredUser(t *testing.T, password string, status models.UserStatus) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return models.User{
		ID:             utils.NewUUID(),
		Username:       "john",
		Email:          "john@example.com",
		HashedPassword: hash,
		Status:         status,
	}
}

func TestLogin_Success(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusActive)
	sink := &mockActivityService{}
	userRepo := &mockUserRepository{
		getUserByLoginFn: func(ctx context.Context, login string) (models.User, error) {
			assert.Equal(t, "john", login)
			return user, nil
		},
	}
	svc := newTestAuthService(userRepo, &mockSessionService{}, sink)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "john", Password: "secret-password"}, models.RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	assert.Contains(t, sink.recorded, activityLoginSuccess)
}

func TestLogin_UnknownUserAndWrongPasswordCollapse(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusActive)

	userRepoUnknown := &mockUserRepository{
		getUserByLoginFn: func(ctx context.Context, login string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svcUnknown := newTestAuthService(userRepoUnknown, &mockSessionService{}, &mockActivityService{})
	_, errUnknown := svcUnknown.Login(context.Background(), models.LoginRequest{Email: "ghost", Password: "whatever"}, models.RequestMeta{})

	userRepoKnown := &mockUserRepository{
		getUserByLoginFn: func(ctx context.Context, login string) (models.User, error) {
			return user, nil
		},
	}
	svcKnown := newTestAuthService(userRepoKnown, &mockSessionService{}, &mockActivityService{})
	_, errWrongPassword := svcKnown.Login(context.Background(), models.LoginRequest{Email: "john", Password: "not-it"}, models.RequestMeta{})

	// both failures are indistinguishable to the caller
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
}

func TestLogin_WrongPasswordIsAudited(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusActive)
	sink := &mockActivityService{}
	userRepo := &mockUserRepository{
		getUserByLoginFn: func(ctx context.Context, login string) (models.User, error) { return user, nil },
	}
	svc := newTestAuthService(userRepo, &mockSessionService{}, sink)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "john", Password: "not-it"}, models.RequestMeta{})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, []string{activityLoginFailed}, sink.recorded)
}

func TestLogin_SuspendedBlocked(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusSuspended)
	sink := &mockActivityService{}
	userRepo := &mockUserRepository{
		getUserByLoginFn: func(ctx context.Context, login string) (models.User, error) { return user, nil },
	}
	svc := newTestAuthService(userRepo, &mockSessionService{}, sink)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "john", Password: "secret-password"}, models.RequestMeta{})

	assert.ErrorIs(t, err, ErrAccountSuspended)
	assert.Equal(t, []string{activityLoginBlocked}, sink.recorded)
}

func TestLogin_PendingKYCAllowed(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusPendingKYC)
	userRepo := &mockUserRepository{
		getUserByLoginFn: func(ctx context.Context, login string) (models.User, error) { return user, nil },
	}
	svc := newTestAuthService(userRepo, &mockSessionService{}, &mockActivityService{})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "john", Password: "secret-password"}, models.RequestMeta{})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionService{}, &mockActivityService{})

	_, err := svc.Login(context.Background(), models.LoginRequest{}, models.RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestLogin_SessionExpiryMatchesRefreshDuration(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusActive)
	var capturedExpiry time.Time
	sessions := &mockSessionService{
		createFn: func(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, expiresAt time.Time, meta models.RequestMeta) (models.Session, error) {
			capturedExpiry = expiresAt
			return models.Session{}, nil
		},
	}
	svc := NewAuthService(&mockUserRepository{
		getUserByLoginFn: func(ctx context.Context, login string) (models.User, error) { return user, nil },
	}, sessions, &mockActivityService{}, testAppConfig(), logger.Nop())

	before := time.Now().UTC().Add(168 * time.Hour)
	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "john", Password: "secret-password"}, models.RequestMeta{})
	after := time.Now().UTC().Add(168 * time.Hour)

	require.NoError(t, err)
	assert.False(t, capturedExpiry.Before(before))
	assert.False(t, capturedExpiry.After(after))
}

func TestLogout_EmptyRefreshToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionService{}, &mockActivityService{})

	err := svc.Logout(context.Background(), models.User{ID: utils.NewUUID()}, "", models.RequestMeta{})
	assert.ErrorIs(t, err, ErrRefreshTokenMissing)
}

func TestLogout_Success(t *testing.T) {
	sink := &mockActivityService{}
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionService{}, sink)

	err := svc.Logout(context.Background(), models.User{ID: utils.NewUUID()}, "tok", models.RequestMeta{})

	require.NoError(t, err)
	assert.Equal(t, []string{activityLogoutSuccess}, sink.recorded)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionService{}, &mockActivityService{})

	_, err := svc.Refresh(context.Background(), "not-a-jwt", models.RequestMeta{})
	assert.ErrorIs(t, err, ErrInvalidOrExpiredRefreshToken)
}

func TestRefresh_Success(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusActive)
	cfg := testAppConfig()

	refresh, err := utils.GenerateJWTToken(cfg.TokenIssuer, user.ID, cfg.RefreshTokenDuration, cfg.TokenSignKey)
	require.NoError(t, err)

	sink := &mockActivityService{}
	svc := NewAuthService(&mockUserRepository{
		getUserByIDFn: func(ctx context.Context, id uuid.UUID) (models.User, error) { return user, nil },
	}, &mockSessionService{}, sink, cfg, logger.Nop())

	resp, err := svc.Refresh(context.Background(), refresh.SignedString, models.RequestMeta{})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Contains(t, sink.recorded, activityRefreshSuccess)
}

func TestParseToken_ExpiredVsInvalid(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusActive)
	cfg := testAppConfig()
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionService{}, &mockActivityService{})

	expired, err := utils.GenerateJWTToken(cfg.TokenIssuer, user.ID, -time.Minute, cfg.TokenSignKey)
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), expired.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)

	_, err = svc.ParseToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}

func TestParseToken_WrongIssuer(t *testing.T) {
	user := registeredUser(t, "secret-password", models.StatusActive)
	cfg := testAppConfig()
	svc := newTestAuthService(&mockUserRepository{}, &mockSessionService{}, &mockActivityService{})

	foreign, err := utils.GenerateJWTToken("someone-else", user.ID, time.Hour, cfg.TokenSignKey)
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), foreign.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsInvalid)
}
