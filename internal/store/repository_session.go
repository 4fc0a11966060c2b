package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. Sessions are never deleted here; invalidation is a
// single atomic UPDATE so concurrent logout and refresh cannot both win.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the provided
// database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// scanSession reads one sessions row. user_id, user_agent and ip_address are
// nullable in the schema.
func scanSession(row rowScanner) (models.Session, error) {
	var session models.Session
	var userID uuid.NullUUID
	var userAgent, ipAddress sql.NullString

	err := row.Scan(
		&session.ID, &userID, &session.RefreshToken, &userAgent, &ipAddress,
		&session.IsValid, &session.ExpiresAt, &session.DateCreated, &session.DateUpdated,
	)
	if err != nil {
		return models.Session{}, err
	}

	if userID.Valid {
		session.UserID = &userID.UUID
	}
	session.UserAgent = userAgent.String
	session.IPAddress = ipAddress.String

	return session, nil
}

// CreateSession persists a new session row and returns it as stored.
// ExpiresAt is normalised to UTC before the insert.
//
// Error handling:
//   - unique_violation on refresh_token → [ErrRefreshTokenAlreadyUsed].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	var userID uuid.NullUUID
	if session.UserID != nil {
		userID = uuid.NullUUID{UUID: *session.UserID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createSession,
		session.ID, userID, session.RefreshToken,
		session.UserAgent, session.IPAddress, session.IsValid,
		session.ExpiresAt.UTC())

	saved, err := scanSession(row)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: inserting session")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Session{}, ErrRefreshTokenAlreadyUsed
		}
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// FindValidSession returns the still-valid session owned by userID carrying
// refreshToken. A missing row and an invalidated row both come back as
// [ErrSessionNotFound]; expiry is NOT checked here, the service compares
// ExpiresAt against the clock so the two failure modes stay distinguishable.
func (r *sessionRepository) FindValidSession(ctx context.Context, userID uuid.UUID, refreshToken string) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findValidSession, userID, refreshToken)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.FindValidSession").Msg("error: scanning session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// InvalidateSession atomically flips is_valid on the matching session.
// Returns [ErrSessionNotFound] when nothing was flipped, which covers both a
// token that never existed and one already invalidated by an earlier logout.
func (r *sessionRepository) InvalidateSession(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, invalidateSession, userID, refreshToken)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.InvalidateSession").Msg("error: invalidating session")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteExpiredSessions removes every session row whose expiry has passed,
// valid or not, and returns the number of rows removed. Run periodically by
// the session sweeper worker.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteExpiredSessions)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error: deleting expired sessions")
		return 0, errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrExecutingStatement, err)
	}

	return affected, nil
}

// InvalidateUserSessions flips every valid session of the user at once and
// returns the number of sessions revoked. Zero affected rows is not an error.
func (r *sessionRepository) InvalidateUserSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, invalidateUserSessions, userID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.InvalidateUserSessions").Msg("error: invalidating sessions")
		return 0, errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrExecutingStatement, err)
	}

	return affected, nil
}
