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

// staffRepository is the PostgreSQL-backed implementation of
// [StaffRepository]. Staff rows and their permission grants live in two
// tables; writes that touch both run in a single transaction.
type staffRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStaffRepository constructs a [StaffRepository] backed by the provided
// database connection and logger.
func NewStaffRepository(db *DB, logger *logger.Logger) StaffRepository {
	logger.Debug().Msg("creating staff repository")
	return &staffRepository{
		db:     db,
		logger: logger,
	}
}

func scanStaff(row rowScanner) (models.Staff, error) {
	var staff models.Staff
	err := row.Scan(
		&staff.ID, &staff.UserID, &staff.Role, &staff.Department,
		&staff.DateCreated, &staff.DateUpdated,
	)
	if err != nil {
		return models.Staff{}, err
	}
	return staff, nil
}

func scanPermissions(rows *sql.Rows) ([]models.Permission, error) {
	var permissions []models.Permission
	for rows.Next() {
		var p models.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.DateCreated, &p.DateUpdated); err != nil {
			return nil, errors.Join(ErrScanningRows, err)
		}
		permissions = append(permissions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}
	return permissions, nil
}

// classifyStaffConflict maps a unique violation on the staffs table to the
// domain sentinel matching the violated constraint. Both superuser indexes
// map to the same sentinel.
func classifyStaffConflict(err error) error {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return nil
	}

	switch postgresConstraint(err) {
	case "uq_staff_superuser_role", "uq_staff_superuser_department":
		return ErrSuperuserAlreadyExists
	}

	return nil
}

// CreateStaff inserts the staff row and its permission grants in one
// transaction and returns the profile with permissions resolved.
//
// Error handling:
//   - unique_violation on a superuser index → [ErrSuperuserAlreadyExists].
//   - foreign_key_violation on a permission grant → [ErrPermissionNotFound].
//   - foreign_key_violation on user_id → [ErrNoUserWasFound].
func (r *staffRepository) CreateStaff(ctx context.Context, staff models.Staff, permissionIDs []uuid.UUID) (models.Staff, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*staffRepository.CreateStaff").Msg("error: beginning transaction")
		return models.Staff{}, errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createStaff, staff.ID, staff.UserID, staff.Role, staff.Department)

	saved, err := scanStaff(row)
	if err != nil {
		log.Err(err).Str("func", "*staffRepository.CreateStaff").Msg("error: inserting staff")

		if conflict := classifyStaffConflict(err); conflict != nil {
			return models.Staff{}, conflict
		}
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Staff{}, ErrNoUserWasFound
		}
		return models.Staff{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	for _, permissionID := range permissionIDs {
		if _, err := tx.ExecContext(ctx, attachStaffPermission, saved.ID, permissionID); err != nil {
			log.Err(err).Str("func", "*staffRepository.CreateStaff").Msg("error: attaching permission")

			if postgresError(err) == pgerrcode.ForeignKeyViolation {
				return models.Staff{}, ErrPermissionNotFound
			}
			return models.Staff{}, errors.Join(ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*staffRepository.CreateStaff").Msg("error: committing transaction")
		return models.Staff{}, errors.Join(ErrCommitingTransaction, err)
	}

	saved.Permissions, err = r.loadPermissions(ctx, saved.ID)
	if err != nil {
		return models.Staff{}, err
	}

	return saved, nil
}

// GetStaffByID retrieves a staff profile with its permissions resolved.
// Returns [ErrStaffNotFound] when no row matches.
func (r *staffRepository) GetStaffByID(ctx context.Context, id uuid.UUID) (models.Staff, error) {
	return r.getStaff(ctx, getStaffByID, id)
}

// GetStaffByUserID retrieves the staff profile attached to a user.
// Returns [ErrStaffNotFound] when the user has no staff profile.
func (r *staffRepository) GetStaffByUserID(ctx context.Context, userID uuid.UUID) (models.Staff, error) {
	return r.getStaff(ctx, getStaffByUserID, userID)
}

func (r *staffRepository) getStaff(ctx context.Context, query string, key uuid.UUID) (models.Staff, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, key)

	staff, err := scanStaff(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Staff{}, ErrStaffNotFound
		}
		log.Err(err).Str("func", "*staffRepository.getStaff").Msg("error: scanning staff")
		return models.Staff{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	staff.Permissions, err = r.loadPermissions(ctx, staff.ID)
	if err != nil {
		return models.Staff{}, err
	}

	return staff, nil
}

// ListStaff returns a page of staff profiles ordered by creation time.
// Permissions are not resolved on the listing path.
func (r *staffRepository) ListStaff(ctx context.Context, limit, offset uint64) ([]models.Staff, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listStaff, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*staffRepository.ListStaff").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var staffs []models.Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			log.Err(err).Str("func", "*staffRepository.ListStaff").Msg("error: scanning staff")
			return nil, errors.Join(ErrScanningRows, err)
		}
		staffs = append(staffs, staff)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return staffs, nil
}

// UpdateStaff applies a partial update to role and department, and replaces
// the permission grant set when patch.PermissionIDs is present. Everything
// runs in one transaction.
//
// Returns [ErrStaffNotFound] when no row matches, [ErrSuperuserAlreadyExists]
// when the change collides with the superuser indexes, and
// [ErrPermissionNotFound] when a granted permission does not exist.
func (r *staffRepository) UpdateStaff(ctx context.Context, id uuid.UUID, patch models.StaffPatch) (models.Staff, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*staffRepository.UpdateStaff").Msg("error: beginning transaction")
		return models.Staff{}, errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	builder := psql.Update("staffs").Set("date_updated", sq.Expr("now()"))
	if patch.Role != nil {
		builder = builder.Set("role", *patch.Role)
	}
	if patch.Department != nil {
		builder = builder.Set("department", *patch.Department)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + staffColumns).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*staffRepository.UpdateStaff").Msg("error: building query")
		return models.Staff{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := tx.QueryRowContext(ctx, query, args...)

	updated, err := scanStaff(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Staff{}, ErrStaffNotFound
		}
		log.Err(err).Str("func", "*staffRepository.UpdateStaff").Msg("error: updating staff")

		if conflict := classifyStaffConflict(err); conflict != nil {
			return models.Staff{}, conflict
		}
		return models.Staff{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if patch.PermissionIDs != nil {
		if _, err := tx.ExecContext(ctx, detachStaffPermissions, id); err != nil {
			log.Err(err).Str("func", "*staffRepository.UpdateStaff").Msg("error: detaching permissions")
			return models.Staff{}, errors.Join(ErrExecutingStatement, err)
		}
		for _, permissionID := range *patch.PermissionIDs {
			if _, err := tx.ExecContext(ctx, attachStaffPermission, id, permissionID); err != nil {
				log.Err(err).Str("func", "*staffRepository.UpdateStaff").Msg("error: attaching permission")

				if postgresError(err) == pgerrcode.ForeignKeyViolation {
					return models.Staff{}, ErrPermissionNotFound
				}
				return models.Staff{}, errors.Join(ErrExecutingStatement, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*staffRepository.UpdateStaff").Msg("error: committing transaction")
		return models.Staff{}, errors.Join(ErrCommitingTransaction, err)
	}

	updated.Permissions, err = r.loadPermissions(ctx, id)
	if err != nil {
		return models.Staff{}, err
	}

	return updated, nil
}

// DeleteStaff removes the staff row; permission grants cascade away.
// Returns [ErrStaffNotFound] when no row matches.
func (r *staffRepository) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteStaff, id)
	if err != nil {
		log.Err(err).Str("func", "*staffRepository.DeleteStaff").Msg("error: deleting staff")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

// SuperuserRoleExists reports whether any staff row carries the superuser
// role. Advisory fast path; the partial unique index closes the race.
func (r *staffRepository) SuperuserRoleExists(ctx context.Context) (bool, error) {
	return r.superuserExists(ctx, superuserRoleExists)
}

// SuperuserDepartmentExists reports whether any staff row carries the
// superuser department. Advisory fast path; the partial unique index closes
// the race.
func (r *staffRepository) SuperuserDepartmentExists(ctx context.Context) (bool, error) {
	return r.superuserExists(ctx, superuserDepartmentExists)
}

func (r *staffRepository) superuserExists(ctx context.Context, query string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*staffRepository.superuserExists").Msg("error: executing query")
		return false, errors.Join(ErrExecutingQuery, err)
	}

	return exists, nil
}

func (r *staffRepository) loadPermissions(ctx context.Context, staffID uuid.UUID) ([]models.Permission, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getStaffPermissions, staffID)
	if err != nil {
		log.Err(err).Str("func", "*staffRepository.loadPermissions").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanPermissions(rows)
}
