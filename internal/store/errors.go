package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyTaken is returned when an INSERT or UPDATE on the
	// users table violates the username uniqueness constraint.
	ErrUsernameAlreadyTaken = errors.New("username already taken")

	// ErrEmailAlreadyRegistered is returned when an INSERT or UPDATE on the
	// users table violates the email uniqueness constraint.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrSuperuserAlreadyExists is returned when an insert would create a
	// second superuser: either a second users row with is_superuser or a
	// second staffs row with the superuser role or department. The partial
	// unique indexes behind it are the authoritative guard; the service
	// layer's pre-check is only a fast path.
	ErrSuperuserAlreadyExists = errors.New("superuser already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned when the (user, refresh token, valid)
	// tuple does not match any session row: the session never existed or
	// was already invalidated. The two cases are indistinguishable on
	// purpose.
	ErrSessionNotFound = errors.New("session not found or already invalidated")

	// ErrRefreshTokenAlreadyUsed is returned when a session insert violates
	// the refresh-token uniqueness constraint.
	ErrRefreshTokenAlreadyUsed = errors.New("refresh token already used by another session")

	// ErrStaffNotFound is returned when a staff lookup by id or user id
	// produces no row.
	ErrStaffNotFound = errors.New("staff not found")

	// ErrPermissionNotFound is returned when a permission lookup produces
	// no row, or an attach references a permission that does not exist.
	ErrPermissionNotFound = errors.New("permission not found")

	// ErrPermissionNameTaken is returned when a permission insert or rename
	// violates the name uniqueness constraint.
	ErrPermissionNameTaken = errors.New("permission name already exists")

	// ErrAPIKeyNotFound is returned when an API key lookup produces no row.
	ErrAPIKeyNotFound = errors.New("api key not found")

	// ErrKYCNotFound is returned when a user has no KYC submissions at all.
	ErrKYCNotFound = errors.New("no kyc verification was found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
