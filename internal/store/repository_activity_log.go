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
)

// defaultActivityLogLimit caps unbounded listings so a filterless request
// cannot drag the whole audit trail over the wire.
const defaultActivityLogLimit = 100

// activityLogRepository is the PostgreSQL-backed implementation of
// [ActivityLogRepository]. The table is append-only; there is no update or
// delete path.
type activityLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewActivityLogRepository constructs an [ActivityLogRepository] backed by
// the provided database connection and logger.
func NewActivityLogRepository(db *DB, logger *logger.Logger) ActivityLogRepository {
	logger.Debug().Msg("creating activity log repository")
	return &activityLogRepository{
		db:     db,
		logger: logger,
	}
}

// scanActivityLog reads one activity_logs row. user_id, description,
// ip_address and user_agent are nullable in the schema.
func scanActivityLog(row rowScanner) (models.ActivityLog, error) {
	var record models.ActivityLog
	var userID uuid.NullUUID
	var description, ipAddress, userAgent sql.NullString

	err := row.Scan(
		&record.ID, &userID, &record.ActivityType, &description,
		&ipAddress, &userAgent, &record.LoggedAt,
		&record.DateCreated, &record.DateUpdated,
	)
	if err != nil {
		return models.ActivityLog{}, err
	}

	if userID.Valid {
		record.UserID = &userID.UUID
	}
	record.Description = description.String
	record.IPAddress = ipAddress.String
	record.UserAgent = userAgent.String

	return record, nil
}

// CreateActivityLog appends one audit row and returns it as stored.
// LoggedAt is normalised to UTC before the insert.
func (r *activityLogRepository) CreateActivityLog(ctx context.Context, record models.ActivityLog) (models.ActivityLog, error) {
	log := logger.FromContext(ctx)

	var userID uuid.NullUUID
	if record.UserID != nil {
		userID = uuid.NullUUID{UUID: *record.UserID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createActivityLog,
		record.ID, userID, record.ActivityType, record.Description,
		record.IPAddress, record.UserAgent, record.LoggedAt.UTC())

	saved, err := scanActivityLog(row)
	if err != nil {
		log.Err(err).Str("func", "*activityLogRepository.CreateActivityLog").Msg("error: inserting activity log")
		return models.ActivityLog{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

// ListActivityLogs returns audit rows matching the filter, newest first.
// Zero-valued filter fields are ignored; Limit falls back to
// [defaultActivityLogLimit] when unset.
func (r *activityLogRepository) ListActivityLogs(ctx context.Context, filter models.ActivityLogFilter) ([]models.ActivityLog, error) {
	log := logger.FromContext(ctx)

	builder := psql.
		Select("id", "user_id", "activity_type", "description",
			"ip_address", "user_agent", "logged_at",
			"date_created", "date_updated").
		From("activity_logs").
		OrderBy("logged_at DESC")

	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.ActivityType != "" {
		builder = builder.Where(sq.Eq{"activity_type": filter.ActivityType})
	}
	if filter.Since != nil {
		builder = builder.Where(sq.GtOrEq{"logged_at": filter.Since.UTC()})
	}
	if filter.Until != nil {
		builder = builder.Where(sq.Lt{"logged_at": filter.Until.UTC()})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = defaultActivityLogLimit
	}
	builder = builder.Limit(limit).Offset(filter.Offset)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*activityLogRepository.ListActivityLogs").Msg("error: building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*activityLogRepository.ListActivityLogs").Msg("error: executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.ActivityLog
	for rows.Next() {
		record, err := scanActivityLog(rows)
		if err != nil {
			log.Err(err).Str("func", "*activityLogRepository.ListActivityLogs").Msg("error: scanning activity log")
			return nil, errors.Join(ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return records, nil
}
