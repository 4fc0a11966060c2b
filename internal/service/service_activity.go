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

// activityService is the concrete implementation of [ActivityService].
//
// Writes are append-only; there is no update or delete path. When both an
// actor and a target with staff profiles are involved, the restriction
// engine gates the write as view_logs, keeping cross-staff audit visibility
// under the same rules as direct staff access.
type activityService struct {
	activityLogRepository store.ActivityLogRepository
	staffRepository       store.StaffRepository
	restrictionService    RestrictionService
	logger                *logger.Logger
}

// NewActivityService constructs an [ActivityService] wired to the audit
// repository, the staff repository and the restriction engine.
func NewActivityService(activityLogRepository store.ActivityLogRepository, staffRepository store.StaffRepository, restrictionService RestrictionService, logger *logger.Logger) ActivityService {
	return &activityService{
		activityLogRepository: activityLogRepository,
		staffRepository:       staffRepository,
		restrictionService:    restrictionService,
		logger:                logger,
	}
}

// Record appends one audit row stamped with a UTC timestamp and the request
// metadata.
//
// A nil actor is silently skipped: anonymous actions produce no audit row
// and no error. When actor and target both carry staff profiles, the
// restriction engine must allow view_logs between them or the write is
// refused with [ErrActionForbidden]. A storage failure always propagates.
func (s *activityService) Record(ctx context.Context, actor, target *models.User, activityType, description string, meta models.RequestMeta) (models.ActivityLog, error) {
	log := logger.FromContext(ctx)

	if actor == nil {
		return models.ActivityLog{}, nil
	}
	if activityType == "" {
		return models.ActivityLog{}, ErrInvalidDataProvided
	}

	if target != nil {
		if err := s.enforceLogVisibility(ctx, *actor, target.ID); err != nil {
			return models.ActivityLog{}, err
		}
	}

	actorID := actor.ID
	record := models.ActivityLog{
		ID:           utils.NewUUID(),
		UserID:       &actorID,
		ActivityType: activityType,
		Description:  description,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		LoggedAt:     time.Now().UTC(),
	}

	saved, err := s.activityLogRepository.CreateActivityLog(ctx, record)
	if err != nil {
		log.Err(err).Str("activity_type", activityType).Msg("activity log write failed")
		return models.ActivityLog{}, fmt.Errorf("activity log write failed: %w", err)
	}

	return saved, nil
}

// List returns audit rows matching the filter. Reading another user's trail
// requires the restriction engine to allow view_logs between the two staff
// profiles; reading one's own rows is always permitted.
func (s *activityService) List(ctx context.Context, actor models.User, filter models.ActivityLogFilter) ([]models.ActivityLog, error) {
	log := logger.FromContext(ctx)

	if filter.UserID != nil && *filter.UserID != actor.ID {
		if err := s.enforceLogVisibility(ctx, actor, *filter.UserID); err != nil {
			return nil, err
		}
	}
	if filter.UserID == nil && !actor.IsSuperuser {
		// an unscoped listing spans every user's trail; only the
		// superuser account may request it
		self := actor.ID
		filter.UserID = &self
	}

	records, err := s.activityLogRepository.ListActivityLogs(ctx, filter)
	if err != nil {
		log.Err(err).Msg("activity log listing failed")
		return nil, fmt.Errorf("activity log listing failed: %w", err)
	}

	return records, nil
}

// enforceLogVisibility resolves the staff profiles of the actor and the
// target user, requires the view_logs grant, and runs the view_logs rule.
// A party without a staff profile leaves the gate closed for cross-user
// access unless the actor is the superuser account.
func (s *activityService) enforceLogVisibility(ctx context.Context, actor models.User, targetUserID uuid.UUID) error {
	actorStaff, err := s.staffRepository.GetStaffByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrStaffNotFound) {
			if actor.IsSuperuser {
				return nil
			}
			return fmt.Errorf("%w: a staff profile is required to access other users' logs", ErrActionForbidden)
		}
		return fmt.Errorf("actor staff lookup failed: %w", err)
	}
	if err := requireGrant(actorStaff, permViewLogs); err != nil {
		return err
	}

	targetStaff, err := s.staffRepository.GetStaffByUserID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, store.ErrStaffNotFound) {
			// plain end users are visible to any staff actor
			return nil
		}
		return fmt.Errorf("target staff lookup failed: %w", err)
	}

	return s.restrictionService.Enforce(actorStaff, targetStaff, ActionViewLogs)
}
