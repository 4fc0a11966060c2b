package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// Audit event types emitted by the session service. Every branch of every
// operation emits exactly one.
const (
	activitySessionCreateSuccess     = "session_create_success"
	activitySessionCreateError       = "session_create_error"
	activitySessionInvalidateSuccess = "session_invalidate_success"
	activitySessionInvalidateFailed  = "session_invalidate_failed"
	activitySessionValidateSuccess   = "session_validate_success"
	activitySessionValidateFailed    = "session_validate_failed"
)

// sessionService is the concrete implementation of [SessionService].
//
// It persists one row per issued refresh token and is the only place that
// can revoke one. Validation deliberately collapses "no such session" and
// "session expired" into one external error so a caller probing tokens
// cannot learn which tokens once existed.
type sessionService struct {
	sessionRepository store.SessionRepository
	activityService   ActivityService
	logger            *logger.Logger
}

// NewSessionService constructs a [SessionService] wired to the session
// repository and the audit sink.
func NewSessionService(sessionRepository store.SessionRepository, activityService ActivityService, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository: sessionRepository,
		activityService:   activityService,
		logger:            logger,
	}
}

// Create persists a new session for the refresh token. The expiry is
// normalised to UTC on the way into storage. Storage failure is audited and
// propagated.
func (s *sessionService) Create(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, expiresAt time.Time, meta models.RequestMeta) (models.Session, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	session := models.Session{
		ID:           utils.NewUUID(),
		UserID:       &userID,
		RefreshToken: refreshToken,
		UserAgent:    meta.UserAgent,
		IPAddress:    meta.IPAddress,
		IsValid:      true,
		ExpiresAt:    expiresAt.UTC(),
	}

	saved, err := s.sessionRepository.CreateSession(ctx, session)
	if err != nil {
		log.Err(err).Str("user_id", userID.String()).Msg("session creation ended with error")
		return models.Session{}, errors.Join(
			fmt.Errorf("session creation ended with error: %w", err),
			s.audit(ctx, actor, activitySessionCreateError, "session creation failed", meta))
	}

	if err := s.audit(ctx, actor, activitySessionCreateSuccess, "session created", meta); err != nil {
		return models.Session{}, err
	}
	return saved, nil
}

// Invalidate revokes the session holding refreshToken. The repository UPDATE
// is atomic, so of two concurrent invalidations exactly one flips the row
// and the other observes [store.ErrSessionNotFound].
func (s *sessionService) Invalidate(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, meta models.RequestMeta) error {
	log := logger.FromContext(ctx)

	if err := s.sessionRepository.InvalidateSession(ctx, userID, refreshToken); err != nil {
		log.Err(err).Str("user_id", userID.String()).Msg("session invalidation failed")
		return errors.Join(
			fmt.Errorf("session invalidation failed: %w", err),
			s.audit(ctx, actor, activitySessionInvalidateFailed, "session invalidation failed", meta))
	}

	return s.audit(ctx, actor, activitySessionInvalidateSuccess, "session invalidated", meta)
}

// ValidateRefreshToken confirms that refreshToken belongs to a still-valid,
// unexpired session of userID.
//
// A missing/invalidated session and an expired one both surface as
// [ErrInvalidOrExpiredRefreshToken]; the expired case additionally wraps
// [ErrSessionExpired] for logs and tests.
func (s *sessionService) ValidateRefreshToken(ctx context.Context, actor *models.User, userID uuid.UUID, refreshToken string, meta models.RequestMeta) (models.Session, error) {
	log := logger.FromContext(ctx)

	session, err := s.sessionRepository.FindValidSession(ctx, userID, refreshToken)
	if err != nil {
		log.Err(err).Str("user_id", userID.String()).Msg("refresh token validation failed")
		return models.Session{}, errors.Join(
			fmt.Errorf("%w: %w", ErrInvalidOrExpiredRefreshToken, err),
			s.audit(ctx, actor, activitySessionValidateFailed, "refresh token validation failed", meta))
	}

	if !session.ExpiresAt.UTC().After(time.Now().UTC()) {
		log.Warn().Str("user_id", userID.String()).Time("expires_at", session.ExpiresAt).Msg("refresh token is expired")
		return models.Session{}, errors.Join(
			fmt.Errorf("%w: %w", ErrInvalidOrExpiredRefreshToken, ErrSessionExpired),
			s.audit(ctx, actor, activitySessionValidateFailed, "refresh token is expired", meta))
	}

	if err := s.audit(ctx, actor, activitySessionValidateSuccess, "refresh token validated", meta); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// audit emits exactly one event through the sink. A failed audit write is a
// real error for the caller; it is never swallowed.
func (s *sessionService) audit(ctx context.Context, actor *models.User, activityType, description string, meta models.RequestMeta) error {
	if _, err := s.activityService.Record(ctx, actor, nil, activityType, description, meta); err != nil {
		logger.FromContext(ctx).Err(err).Str("activity_type", activityType).Msg("audit write failed")
		return fmt.Errorf("audit write failed: %w", err)
	}
	return nil
}
