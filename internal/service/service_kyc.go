package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/internal/validators"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

const (
	activityKYCSubmitted = "kyc_submitted"
	activityKYCReviewed  = "kyc_reviewed"
)

// kycService is the concrete implementation of [KYCService]. Submissions
// accumulate as history per user; review decisions drive the user's
// lifecycle status.
type kycService struct {
	kycRepository   store.KYCRepository
	userRepository  store.UserRepository
	staffRepository store.StaffRepository
	activityService ActivityService
	validator       validators.Validator
	logger          *logger.Logger
}

// NewKYCService constructs a [KYCService].
func NewKYCService(kycRepository store.KYCRepository, userRepository store.UserRepository, staffRepository store.StaffRepository, activityService ActivityService, validator validators.Validator, logger *logger.Logger) KYCService {
	return &kycService{
		kycRepository:   kycRepository,
		userRepository:  userRepository,
		staffRepository: staffRepository,
		activityService: activityService,
		validator:       validator,
		logger:          logger,
	}
}

// SubmitKYC records a new verification submission for the actor and moves
// the account to PENDING_KYC until it is reviewed. Earlier submissions are
// kept as history.
func (s *kycService) SubmitKYC(ctx context.Context, actor models.User, req models.SubmitKYCRequest, meta models.RequestMeta) (models.KYCVerification, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid kyc submission data provided")
		return models.KYCVerification{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	kyc := models.KYCVerification{
		ID:     utils.NewUUID(),
		UserID: actor.ID,

		FullName:    req.FullName,
		DateOfBirth: req.DateOfBirth,
		Nationality: req.Nationality,

		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,

		DocumentType:     req.DocumentType,
		DocumentNumber:   req.DocumentNumber,
		DocumentImageURL: req.DocumentImageURL,
		SelfieImageURL:   req.SelfieImageURL,

		Notes:  req.Notes,
		Status: models.KYCPending,
	}

	created, err := s.kycRepository.CreateKYC(ctx, kyc)
	if err != nil {
		log.Err(err).Str("user_id", actor.ID.String()).Msg("kyc submission ended with error")
		return models.KYCVerification{}, fmt.Errorf("kyc submission ended with error: %w", err)
	}

	if err := s.userRepository.UpdateUserStatus(ctx, actor.ID, models.StatusPendingKYC); err != nil {
		return models.KYCVerification{}, fmt.Errorf("status transition to pending_kyc failed: %w", err)
	}

	if _, err := s.activityService.Record(ctx, &actor, nil, activityKYCSubmitted, "kyc verification submitted", meta); err != nil {
		return models.KYCVerification{}, err
	}

	return created, nil
}

// GetLatestKYC returns the newest submission of userID. Reading another
// user's record requires a reviewing staff actor.
func (s *kycService) GetLatestKYC(ctx context.Context, actor models.User, userID uuid.UUID) (models.KYCVerification, error) {
	if userID != actor.ID {
		if err := s.requireReviewer(ctx, actor, permKYCView); err != nil {
			return models.KYCVerification{}, err
		}
	}
	return s.kycRepository.GetLatestKYCByUserID(ctx, userID)
}

// ListKYC returns the full submission history of userID, newest first.
// Reading another user's history requires a reviewing staff actor.
func (s *kycService) ListKYC(ctx context.Context, actor models.User, userID uuid.UUID) ([]models.KYCVerification, error) {
	if userID != actor.ID {
		if err := s.requireReviewer(ctx, actor, permKYCView); err != nil {
			return nil, err
		}
	}
	return s.kycRepository.ListKYCByUserID(ctx, userID)
}

// ReviewKYC records an approve/reject decision on a submission and moves
// the submitting user to ACTIVE or KYC_REJECTED accordingly. Only
// compliance, admin and superuser staff holding the review grant may review.
func (s *kycService) ReviewKYC(ctx context.Context, actor models.User, id uuid.UUID, status models.KYCStatus, notes string, meta models.RequestMeta) (models.KYCVerification, error) {
	log := logger.FromContext(ctx)

	if status != models.KYCApproved && status != models.KYCRejected {
		return models.KYCVerification{}, ErrInvalidDataProvided
	}
	if err := s.requireReviewer(ctx, actor, permKYCReview); err != nil {
		return models.KYCVerification{}, err
	}

	reviewed, err := s.kycRepository.UpdateKYCStatus(ctx, id, status, notes)
	if err != nil {
		log.Err(err).Str("kyc_id", id.String()).Msg("kyc review ended with error")
		return models.KYCVerification{}, fmt.Errorf("kyc review ended with error: %w", err)
	}

	userStatus := models.StatusActive
	if status == models.KYCRejected {
		userStatus = models.StatusKYCRejected
	}
	if err := s.userRepository.UpdateUserStatus(ctx, reviewed.UserID, userStatus); err != nil {
		return models.KYCVerification{}, fmt.Errorf("status transition after kyc review failed: %w", err)
	}

	if _, err := s.activityService.Record(ctx, &actor, nil, activityKYCReviewed, fmt.Sprintf("kyc verification %s marked %s", id, status), meta); err != nil {
		return models.KYCVerification{}, err
	}

	return reviewed, nil
}

func (s *kycService) requireReviewer(ctx context.Context, actor models.User, grant string) error {
	staff, err := s.staffRepository.GetStaffByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrStaffNotFound) {
			return fmt.Errorf("%w: a staff profile is required to review kyc", ErrActionForbidden)
		}
		return fmt.Errorf("actor staff lookup failed: %w", err)
	}
	switch staff.Role {
	case models.RoleSuperuser, models.RoleAdmin, models.RoleCompliance:
		return requireGrant(staff, grant)
	}
	return fmt.Errorf("%w: a compliance, admin or superuser actor is required", ErrActionForbidden)
}
