package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corepay/identity-service/internal/config"
	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
	"github.com/golang-jwt/jwt/v5"
)

// Audit event types emitted by the auth flows. Failures are audited per
// cause; note that a failed lookup has no actor, so the sink drops it.
const (
	activityLoginSuccess   = "login_success"
	activityLoginFailed    = "login_failed"
	activityLoginBlocked   = "login_blocked"
	activityLogoutSuccess  = "logout_success"
	activityRefreshSuccess = "token_refresh_success"
	activityRefreshFailed  = "token_refresh_failed"
)

const tokenTypeBearer = "bearer"

// authService is the concrete implementation of [AuthService].
//
// It composes password verification, the account-status gate, JWT issuance
// and the session store into the login/logout/refresh flows. All state is
// read-only after construction; the service is safe for concurrent use.
type authService struct {
	userRepository  store.UserRepository
	sessionService  SessionService
	activityService ActivityService

	// tokenSignKey is the HMAC secret signing every issued JWT. A single
	// pre-shared key, so any holder can forge tokens; acceptable for a
	// single-service deployment.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the user repository,
// the session service and the audit sink, with token parameters from cfg.
func NewAuthService(userRepository store.UserRepository, sessionService SessionService, activityService ActivityService, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       userRepository,
		sessionService:       sessionService,
		activityService:      activityService,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		logger:               logger,
	}
}

// Login authenticates a credential pair and opens a new session.
//
// The flow: look the user up by username-or-email, verify the password,
// gate on account status, mint the access and refresh tokens, persist the
// session, audit. An unknown identifier and a wrong password both return
// [ErrInvalidCredentials] so the response carries no enumeration signal.
//
// Only SUSPENDED blocks login ([ErrAccountSuspended]); a PENDING_KYC user
// may still sign in to finish verification. Protected endpoints demand
// ACTIVE separately.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Msg("invalid login data provided")
		return models.LoginResponse{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.GetUserByLogin(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("login", req.Email).Msg("user search by login failed")
		if errors.Is(err, store.ErrNoUserWasFound) {
			// no actor exists; the sink drops this event by design
			return models.LoginResponse{}, ErrInvalidCredentials
		}
		return models.LoginResponse{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err := utils.VerifyPassword(req.Password, user.HashedPassword); err != nil {
		log.Warn().Str("user_id", user.ID.String()).Msg("wrong password")
		if _, auditErr := a.activityService.Record(ctx, &user, nil, activityLoginFailed, "wrong password", meta); auditErr != nil {
			return models.LoginResponse{}, auditErr
		}
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	if user.Status == models.StatusSuspended {
		log.Warn().Str("user_id", user.ID.String()).Msg("login blocked: account suspended")
		if _, auditErr := a.activityService.Record(ctx, &user, nil, activityLoginBlocked, "account suspended", meta); auditErr != nil {
			return models.LoginResponse{}, auditErr
		}
		return models.LoginResponse{}, ErrAccountSuspended
	}

	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	refreshToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.refreshTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	expiresAt := time.Now().UTC().Add(a.refreshTokenDuration)
	if _, err := a.sessionService.Create(ctx, &user, user.ID, refreshToken.SignedString, expiresAt, meta); err != nil {
		return models.LoginResponse{}, err
	}

	if _, err := a.activityService.Record(ctx, &user, nil, activityLoginSuccess, "user logged in", meta); err != nil {
		return models.LoginResponse{}, err
	}

	return models.LoginResponse{
		User:         user,
		AccessToken:  accessToken.SignedString,
		RefreshToken: refreshToken.SignedString,
		TokenType:    tokenTypeBearer,
	}, nil
}

// Logout revokes the session behind refreshToken for the authenticated
// actor. An empty token is the handler's missing-header case and returns
// [ErrRefreshTokenMissing]; an unknown or already-revoked token surfaces
// the session store's not-found.
func (a *authService) Logout(ctx context.Context, actor models.User, refreshToken string, meta models.RequestMeta) error {
	if refreshToken == "" {
		return ErrRefreshTokenMissing
	}

	if err := a.sessionService.Invalidate(ctx, &actor, actor.ID, refreshToken, meta); err != nil {
		return err
	}

	if _, err := a.activityService.Record(ctx, &actor, nil, activityLogoutSuccess, "user logged out", meta); err != nil {
		return err
	}

	return nil
}

// Refresh exchanges a still-valid refresh token for a fresh access token.
// The subject is taken from the refresh token itself, then checked against
// the session store; any token or session problem surfaces as
// [ErrInvalidOrExpiredRefreshToken].
func (a *authService) Refresh(ctx context.Context, refreshToken string, meta models.RequestMeta) (models.RefreshResponse, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return models.RefreshResponse{}, ErrRefreshTokenMissing
	}

	token, err := utils.ValidateAndParseJWTToken(refreshToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token did not verify")
		return models.RefreshResponse{}, fmt.Errorf("%w: %w", ErrInvalidOrExpiredRefreshToken, err)
	}

	user, err := a.userRepository.GetUserByID(ctx, token.UserID)
	if err != nil {
		log.Err(err).Str("user_id", token.UserID.String()).Msg("refresh token subject lookup failed")
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.RefreshResponse{}, fmt.Errorf("%w: %w", ErrInvalidOrExpiredRefreshToken, err)
		}
		return models.RefreshResponse{}, fmt.Errorf("refresh token subject lookup failed: %w", err)
	}

	if _, err := a.sessionService.ValidateRefreshToken(ctx, &user, user.ID, refreshToken, meta); err != nil {
		if _, auditErr := a.activityService.Record(ctx, &user, nil, activityRefreshFailed, "refresh token rejected", meta); auditErr != nil {
			return models.RefreshResponse{}, auditErr
		}
		return models.RefreshResponse{}, err
	}

	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if _, err := a.activityService.Record(ctx, &user, nil, activityRefreshSuccess, "access token refreshed", meta); err != nil {
		return models.RefreshResponse{}, err
	}

	return models.RefreshResponse{
		AccessToken: accessToken.SignedString,
		TokenType:   tokenTypeBearer,
	}, nil
}

// ParseToken validates a raw access token. Expiry and any other validation
// failure stay distinct internally ([ErrTokenIsExpired] vs
// [ErrTokenIsInvalid]); the HTTP layer answers 401 for both.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsInvalid
	}

	return token, nil
}
