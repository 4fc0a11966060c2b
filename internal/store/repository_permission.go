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

// permissionRepository is the PostgreSQL-backed implementation of
// [PermissionRepository].
type permissionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPermissionRepository constructs a [PermissionRepository] backed by the
// provided database connection and logger.
func NewPermissionRepository(db *DB, logger *logger.Logger) PermissionRepository {
	logger.Debug().Msg("creating permission repository")
	return &permissionRepository{
		db:     db,
		logger: logger,
	}
}

func scanPermission(row rowScanner) (models.Permission, error) {
	var p models.Permission
	if err := row.Scan(&p.ID, &p.Name, &p.DateCreated, &p.DateUpdated); err != nil {
		return models.Permission{}, err
	}
	return p, nil
}

// CreatePermission persists a new permission and returns it as stored.
// Returns [ErrPermissionNameTaken] when the name already exists.
func (r *permissionRepository) CreatePermission(ctx context.Context, permission models.Permission) (models.Permission, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createPermission, permission.ID, permission.Name)

	saved, err := scanPermission(row)
	if err != nil {
		log.Err(err).Str("func", "*permissionRepository.CreatePermission").Msg("error: inserting permission")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Permission{}, ErrPermissionNameTaken
		}
		return models.Permission{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// GetPermissionByID retrieves a single permission by primary key.
// Returns [ErrPermissionNotFound] when no row matches.
func (r *permissionRepository) GetPermissionByID(ctx context.Context, id uuid.UUID) (models.Permission, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getPermissionByID, id)

	permission, err := scanPermission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Permission{}, ErrPermissionNotFound
		}
		log.Err(err).Str("func", "*permissionRepository.GetPermissionByID").Msg("error: scanning permission")
		return models.Permission{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return permission, nil
}

// ListPermissions returns every permission ordered by name.
func (r *permissionRepository) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listPermissions)
	if err != nil {
		log.Err(err).Str("func", "*permissionRepository.ListPermissions").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanPermissions(rows)
}

// RenamePermission changes the permission's name and returns the updated
// record. Returns [ErrPermissionNotFound] when no row matches and
// [ErrPermissionNameTaken] when the new name already exists.
func (r *permissionRepository) RenamePermission(ctx context.Context, id uuid.UUID, name string) (models.Permission, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, renamePermission, id, name)

	permission, err := scanPermission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Permission{}, ErrPermissionNotFound
		}
		log.Err(err).Str("func", "*permissionRepository.RenamePermission").Msg("error: renaming permission")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Permission{}, ErrPermissionNameTaken
		}
		return models.Permission{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return permission, nil
}

// DeletePermission removes the permission row; staff and API key grants
// cascade away. Returns [ErrPermissionNotFound] when no row matches.
func (r *permissionRepository) DeletePermission(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deletePermission, id)
	if err != nil {
		log.Err(err).Str("func", "*permissionRepository.DeletePermission").Msg("error: deleting permission")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrPermissionNotFound
	}

	return nil
}
