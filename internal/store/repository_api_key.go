package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// apiKeyRepository is the PostgreSQL-backed implementation of
// [APIKeyRepository]. Key rows and their permission grants live in two
// tables; writes that touch both run in a single transaction.
type apiKeyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAPIKeyRepository constructs an [APIKeyRepository] backed by the provided
// database connection and logger.
func NewAPIKeyRepository(db *DB, logger *logger.Logger) APIKeyRepository {
	logger.Debug().Msg("creating api key repository")
	return &apiKeyRepository{
		db:     db,
		logger: logger,
	}
}

// scanAPIKey reads one api_keys row. user_id and expires_at are nullable in
// the schema.
func scanAPIKey(row rowScanner) (models.APIKey, error) {
	var key models.APIKey
	var userID uuid.NullUUID
	var expiresAt sql.NullTime

	err := row.Scan(
		&key.ID, &userID, &key.KeyHash, &key.Secret,
		&key.IsActive, &expiresAt, &key.DateCreated, &key.DateUpdated,
	)
	if err != nil {
		return models.APIKey{}, err
	}

	if userID.Valid {
		key.UserID = &userID.UUID
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		key.ExpiresAt = &t
	}

	return key, nil
}

// CreateAPIKey inserts the key row and its permission grants in one
// transaction and returns the key with permissions resolved.
//
// Error handling:
//   - foreign_key_violation on user_id → [ErrNoUserWasFound].
//   - foreign_key_violation on a permission grant → [ErrPermissionNotFound].
func (r *apiKeyRepository) CreateAPIKey(ctx context.Context, key models.APIKey, permissionIDs []uuid.UUID) (models.APIKey, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.CreateAPIKey").Msg("error: beginning transaction")
		return models.APIKey{}, errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var userID uuid.NullUUID
	if key.UserID != nil {
		userID = uuid.NullUUID{UUID: *key.UserID, Valid: true}
	}
	var expiresAt sql.NullTime
	if key.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: key.ExpiresAt.UTC(), Valid: true}
	}

	row := tx.QueryRowContext(ctx, createAPIKey,
		key.ID, userID, key.KeyHash, key.Secret, key.IsActive, expiresAt)

	saved, err := scanAPIKey(row)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.CreateAPIKey").Msg("error: inserting api key")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.APIKey{}, ErrNoUserWasFound
		}
		return models.APIKey{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	for _, permissionID := range permissionIDs {
		if _, err := tx.ExecContext(ctx, attachAPIKeyPermission, saved.ID, permissionID); err != nil {
			log.Err(err).Str("func", "*apiKeyRepository.CreateAPIKey").Msg("error: attaching permission")

			if postgresError(err) == pgerrcode.ForeignKeyViolation {
				return models.APIKey{}, ErrPermissionNotFound
			}
			return models.APIKey{}, errors.Join(ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.CreateAPIKey").Msg("error: committing transaction")
		return models.APIKey{}, errors.Join(ErrCommitingTransaction, err)
	}

	saved.Permissions, err = r.loadPermissions(ctx, saved.ID)
	if err != nil {
		return models.APIKey{}, err
	}

	return saved, nil
}

// GetAPIKeyByID retrieves an API key with its permissions resolved.
// Returns [ErrAPIKeyNotFound] when no row matches.
func (r *apiKeyRepository) GetAPIKeyByID(ctx context.Context, id uuid.UUID) (models.APIKey, error) {
	return r.getAPIKey(ctx, getAPIKeyByID, id)
}

// GetAPIKeyByHash retrieves an API key by the HMAC digest of its raw value.
// Returns [ErrAPIKeyNotFound] when no row matches.
func (r *apiKeyRepository) GetAPIKeyByHash(ctx context.Context, keyHash string) (models.APIKey, error) {
	return r.getAPIKey(ctx, getAPIKeyByHash, keyHash)
}

func (r *apiKeyRepository) getAPIKey(ctx context.Context, query string, key any) (models.APIKey, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, key)

	apiKey, err := scanAPIKey(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.APIKey{}, ErrAPIKeyNotFound
		}
		log.Err(err).Str("func", "*apiKeyRepository.getAPIKey").Msg("error: scanning api key")
		return models.APIKey{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	apiKey.Permissions, err = r.loadPermissions(ctx, apiKey.ID)
	if err != nil {
		return models.APIKey{}, err
	}

	return apiKey, nil
}

// ListAPIKeysByUser returns every key owned by the user ordered by creation
// time. Permissions are not resolved on the listing path.
func (r *apiKeyRepository) ListAPIKeysByUser(ctx context.Context, userID uuid.UUID) ([]models.APIKey, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAPIKeysByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.ListAPIKeysByUser").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var keys []models.APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			log.Err(err).Str("func", "*apiKeyRepository.ListAPIKeysByUser").Msg("error: scanning api key")
			return nil, errors.Join(ErrScanningRows, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return keys, nil
}

// UpdateAPIKey applies a partial update to the key and replaces the
// permission grant set when patch.PermissionIDs is present. Everything runs
// in one transaction.
//
// Returns [ErrAPIKeyNotFound] when no row matches and
// [ErrPermissionNotFound] when a granted permission does not exist.
func (r *apiKeyRepository) UpdateAPIKey(ctx context.Context, id uuid.UUID, patch models.APIKeyPatch) (models.APIKey, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.UpdateAPIKey").Msg("error: beginning transaction")
		return models.APIKey{}, errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	builder := psql.Update("api_keys").Set("date_updated", sq.Expr("now()"))
	if patch.IsActive != nil {
		builder = builder.Set("is_active", *patch.IsActive)
	}
	if patch.ExpiresAt != nil {
		builder = builder.Set("expires_at", patch.ExpiresAt.UTC())
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + apiKeyColumns).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.UpdateAPIKey").Msg("error: building query")
		return models.APIKey{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := tx.QueryRowContext(ctx, query, args...)

	updated, err := scanAPIKey(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.APIKey{}, ErrAPIKeyNotFound
		}
		log.Err(err).Str("func", "*apiKeyRepository.UpdateAPIKey").Msg("error: updating api key")
		return models.APIKey{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if patch.PermissionIDs != nil {
		if _, err := tx.ExecContext(ctx, detachAPIKeyPermissions, id); err != nil {
			log.Err(err).Str("func", "*apiKeyRepository.UpdateAPIKey").Msg("error: detaching permissions")
			return models.APIKey{}, errors.Join(ErrExecutingStatement, err)
		}
		for _, permissionID := range *patch.PermissionIDs {
			if _, err := tx.ExecContext(ctx, attachAPIKeyPermission, id, permissionID); err != nil {
				log.Err(err).Str("func", "*apiKeyRepository.UpdateAPIKey").Msg("error: attaching permission")

				if postgresError(err) == pgerrcode.ForeignKeyViolation {
					return models.APIKey{}, ErrPermissionNotFound
				}
				return models.APIKey{}, errors.Join(ErrExecutingStatement, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.UpdateAPIKey").Msg("error: committing transaction")
		return models.APIKey{}, errors.Join(ErrCommitingTransaction, err)
	}

	updated.Permissions, err = r.loadPermissions(ctx, id)
	if err != nil {
		return models.APIKey{}, err
	}

	return updated, nil
}

// DeleteAPIKey removes the key row; permission grants cascade away.
// Returns [ErrAPIKeyNotFound] when no row matches.
func (r *apiKeyRepository) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteAPIKey, id)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.DeleteAPIKey").Msg("error: deleting api key")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAPIKeyNotFound
	}

	return nil
}

func (r *apiKeyRepository) loadPermissions(ctx context.Context, keyID uuid.UUID) ([]models.Permission, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAPIKeyPermissions, keyID)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.loadPermissions").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanPermissions(rows)
}
