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

// kycRepository is the PostgreSQL-backed implementation of [KYCRepository].
// Submissions accumulate as history; "latest" means newest by date_created.
type kycRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewKYCRepository constructs a [KYCRepository] backed by the provided
// database connection and logger.
func NewKYCRepository(db *DB, logger *logger.Logger) KYCRepository {
	logger.Debug().Msg("creating kyc repository")
	return &kycRepository{
		db:     db,
		logger: logger,
	}
}

// scanKYC reads one kyc_verifications row. Every applicant field is nullable
// in the schema; date_of_birth is a DATE and is rendered as YYYY-MM-DD.
func scanKYC(row rowScanner) (models.KYCVerification, error) {
	var kyc models.KYCVerification
	var dateOfBirth sql.NullTime
	var fullName, nationality sql.NullString
	var addressLine1, addressLine2, city, state, postalCode, country sql.NullString
	var documentType, documentNumber, documentImageURL, selfieImageURL, notes sql.NullString

	err := row.Scan(
		&kyc.ID, &kyc.UserID, &fullName, &dateOfBirth, &nationality,
		&addressLine1, &addressLine2, &city, &state, &postalCode, &country,
		&documentType, &documentNumber, &documentImageURL, &selfieImageURL,
		&notes, &kyc.Status, &kyc.DateCreated, &kyc.DateUpdated,
	)
	if err != nil {
		return models.KYCVerification{}, err
	}

	kyc.FullName = fullName.String
	if dateOfBirth.Valid {
		kyc.DateOfBirth = dateOfBirth.Time.Format("2006-01-02")
	}
	kyc.Nationality = nationality.String
	kyc.AddressLine1 = addressLine1.String
	kyc.AddressLine2 = addressLine2.String
	kyc.City = city.String
	kyc.State = state.String
	kyc.PostalCode = postalCode.String
	kyc.Country = country.String
	kyc.DocumentType = documentType.String
	kyc.DocumentNumber = documentNumber.String
	kyc.DocumentImageURL = documentImageURL.String
	kyc.SelfieImageURL = selfieImageURL.String
	kyc.Notes = notes.String

	return kyc, nil
}

// nullStr maps an empty string to SQL NULL so absent applicant fields stay
// NULL in the table instead of becoming empty strings.
func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateKYC persists a new submission and returns it as stored.
// Returns [ErrNoUserWasFound] when the referenced user does not exist.
func (r *kycRepository) CreateKYC(ctx context.Context, kyc models.KYCVerification) (models.KYCVerification, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createKYC,
		kyc.ID, kyc.UserID, nullStr(kyc.FullName), nullStr(kyc.DateOfBirth),
		nullStr(kyc.Nationality), nullStr(kyc.AddressLine1), nullStr(kyc.AddressLine2),
		nullStr(kyc.City), nullStr(kyc.State), nullStr(kyc.PostalCode), nullStr(kyc.Country),
		nullStr(kyc.DocumentType), nullStr(kyc.DocumentNumber),
		nullStr(kyc.DocumentImageURL), nullStr(kyc.SelfieImageURL),
		nullStr(kyc.Notes), kyc.Status)

	saved, err := scanKYC(row)
	if err != nil {
		log.Err(err).Str("func", "*kycRepository.CreateKYC").Msg("error: inserting kyc verification")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.KYCVerification{}, ErrNoUserWasFound
		}
		return models.KYCVerification{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// GetLatestKYCByUserID returns the user's newest submission.
// Returns [ErrKYCNotFound] when the user has never submitted.
func (r *kycRepository) GetLatestKYCByUserID(ctx context.Context, userID uuid.UUID) (models.KYCVerification, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getLatestKYCByUserID, userID)

	kyc, err := scanKYC(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.KYCVerification{}, ErrKYCNotFound
		}
		log.Err(err).Str("func", "*kycRepository.GetLatestKYCByUserID").Msg("error: scanning kyc verification")
		return models.KYCVerification{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return kyc, nil
}

// ListKYCByUserID returns the user's full submission history, newest first.
func (r *kycRepository) ListKYCByUserID(ctx context.Context, userID uuid.UUID) ([]models.KYCVerification, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listKYCByUserID, userID)
	if err != nil {
		log.Err(err).Str("func", "*kycRepository.ListKYCByUserID").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var submissions []models.KYCVerification
	for rows.Next() {
		kyc, err := scanKYC(rows)
		if err != nil {
			log.Err(err).Str("func", "*kycRepository.ListKYCByUserID").Msg("error: scanning kyc verification")
			return nil, errors.Join(ErrScanningRows, err)
		}
		submissions = append(submissions, kyc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return submissions, nil
}

// UpdateKYCStatus records the review decision on a submission and returns it
// as stored. Returns [ErrKYCNotFound] when no row matches.
func (r *kycRepository) UpdateKYCStatus(ctx context.Context, id uuid.UUID, status models.KYCStatus, notes string) (models.KYCVerification, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, updateKYCStatus, id, status, nullStr(notes))

	kyc, err := scanKYC(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.KYCVerification{}, ErrKYCNotFound
		}
		log.Err(err).Str("func", "*kycRepository.UpdateKYCStatus").Msg("error: updating kyc status")
		return models.KYCVerification{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return kyc, nil
}
