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

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup and mutation against the "users"
// table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one users row. twofa_secret is nullable in the schema and is
// folded into an empty string on the model.
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var twoFASecret sql.NullString

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PhoneNumber,
		&user.HashedPassword, &user.IsVerified, &user.IsSuperuser,
		&user.Status, &twoFASecret, &user.DateCreated, &user.DateUpdated,
	)
	if err != nil {
		return models.User{}, err
	}

	user.TwoFASecret = twoFASecret.String
	return user, nil
}

// classifyUserConflict maps a unique violation on the users table to the
// domain sentinel matching the violated constraint.
func classifyUserConflict(err error) error {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return nil
	}

	switch postgresConstraint(err) {
	case "users_username_key":
		return ErrUsernameAlreadyTaken
	case "users_email_key":
		return ErrEmailAlreadyRegistered
	case "unique_superuser":
		return ErrSuperuserAlreadyExists
	}

	return nil
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] as stored, timestamps included.
//
// Error handling:
//   - unique_violation on username/email/superuser → the matching sentinel
//     ([ErrUsernameAlreadyTaken], [ErrEmailAlreadyRegistered],
//     [ErrSuperuserAlreadyExists]).
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.ID, user.Username, user.Email, user.PhoneNumber,
		user.HashedPassword, user.IsVerified, user.IsSuperuser, user.Status)

	saved, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: inserting user")

		if conflict := classifyUserConflict(err); conflict != nil {
			return models.User{}, conflict
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// GetUserByID retrieves a single user by primary key.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getUserByID, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.GetUserByID").Msg("error: scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// GetUserByLogin retrieves a user whose username or email equals login.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) GetUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getUserByLogin, login)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.GetUserByLogin").Msg("error: scanning user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// ListUsers returns a page of users ordered by creation time.
func (r *userRepository) ListUsers(ctx context.Context, limit, offset uint64) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("id", "username", "email", "phone_number", "hashed_password",
			"is_verified", "is_superuser", "status", "twofa_secret",
			"date_created", "date_updated").
		From("users").
		OrderBy("date_created").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: scanning user")
			return nil, errors.Join(ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser applies a partial update to the user and returns the updated
// record. Patch fields that are nil are left untouched. patch.Password is
// expected to already be a bcrypt hash; it lands in hashed_password.
//
// Returns [ErrNoUserWasFound] when no row matches, and the same uniqueness
// sentinels as [userRepository.CreateUser] on conflict.
func (r *userRepository) UpdateUser(ctx context.Context, id uuid.UUID, patch models.UserPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	builder := psql.Update("users").Set("date_updated", sq.Expr("now()"))
	if patch.Username != nil {
		builder = builder.Set("username", *patch.Username)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.PhoneNumber != nil {
		builder = builder.Set("phone_number", *patch.PhoneNumber)
	}
	if patch.Password != nil {
		builder = builder.Set("hashed_password", *patch.Password)
	}
	if patch.IsVerified != nil {
		builder = builder.Set("is_verified", *patch.IsVerified)
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
	}
	if patch.TwoFASecret != nil {
		builder = builder.Set("twofa_secret", *patch.TwoFASecret)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: building query")
		return models.User{}, errors.Join(ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: updating user")

		if conflict := classifyUserConflict(err); conflict != nil {
			return models.User{}, conflict
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// UpdateUserStatus flips only the lifecycle status of the user.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) UpdateUserStatus(ctx context.Context, id uuid.UUID, status models.UserStatus) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserStatus, id, status)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserStatus").Msg("error: updating user status")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// DeleteUser removes the user row. Sessions and API keys keep their rows with
// user_id set to NULL; staff profiles and KYC submissions cascade away.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: deleting user")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// SuperuserExists reports whether any user row carries the superuser flag.
// It is an advisory fast path; the partial unique index closes the race.
func (r *userRepository) SuperuserExists(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, superuserExists).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*userRepository.SuperuserExists").Msg("error: executing query")
		return false, errors.Join(ErrExecutingQuery, err)
	}

	return exists, nil
}
