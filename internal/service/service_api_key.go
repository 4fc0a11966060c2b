package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/corepay/identity-service/internal/config"
	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
	"github.com/corepay/identity-service/internal/utils"
	"github.com/corepay/identity-service/internal/validators"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// apiKeyService is the concrete implementation of [APIKeyService].
//
// The raw key never reaches storage; only its HMAC-SHA256 digest does, so a
// database dump cannot be replayed as credentials. Keys are strictly
// per-user: every operation except creation-for-self requires either
// ownership or an admin/superuser staff actor.
type apiKeyService struct {
	apiKeyRepository store.APIKeyRepository
	staffRepository  store.StaffRepository

	// hashKey is the server-side HMAC secret deriving key_hash values.
	hashKey string

	validator validators.Validator
	logger    *logger.Logger
}

// NewAPIKeyService constructs an [APIKeyService] with the hashing secret
// from cfg.
func NewAPIKeyService(apiKeyRepository store.APIKeyRepository, staffRepository store.StaffRepository, cfg config.App, validator validators.Validator, logger *logger.Logger) APIKeyService {
	return &apiKeyService{
		apiKeyRepository: apiKeyRepository,
		staffRepository:  staffRepository,
		hashKey:          cfg.APIKeyHashKey,
		validator:        validator,
		logger:           logger,
	}
}

// CreateAPIKey registers a key for req.UserID. Registering a key for
// another user requires an admin or superuser staff actor.
func (s *apiKeyService) CreateAPIKey(ctx context.Context, actor models.User, req models.CreateAPIKeyRequest) (models.APIKey, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.APIKey{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if req.UserID != actor.ID {
		if err := s.requireManager(ctx, actor, permCreateAPIKey); err != nil {
			return models.APIKey{}, err
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	userID := req.UserID
	key := models.APIKey{
		ID:        utils.NewUUID(),
		UserID:    &userID,
		KeyHash:   utils.HashString(req.Key, s.hashKey),
		Secret:    req.Secret,
		IsActive:  isActive,
		ExpiresAt: req.ExpiresAt,
	}

	created, err := s.apiKeyRepository.CreateAPIKey(ctx, key, req.PermissionIDs)
	if err != nil {
		log.Err(err).Str("user_id", req.UserID.String()).Msg("api key creation ended with error")
		return models.APIKey{}, fmt.Errorf("api key creation ended with error: %w", err)
	}

	return created, nil
}

// GetAPIKey returns one key, visible to its owner or a managing staff actor.
func (s *apiKeyService) GetAPIKey(ctx context.Context, actor models.User, id uuid.UUID) (models.APIKey, error) {
	key, err := s.apiKeyRepository.GetAPIKeyByID(ctx, id)
	if err != nil {
		return models.APIKey{}, err
	}
	if err := s.authorizeKeyAccess(ctx, actor, key, permViewAPIKey); err != nil {
		return models.APIKey{}, err
	}
	return key, nil
}

// ListAPIKeys returns the actor's own keys.
func (s *apiKeyService) ListAPIKeys(ctx context.Context, actor models.User) ([]models.APIKey, error) {
	return s.apiKeyRepository.ListAPIKeysByUser(ctx, actor.ID)
}

// UpdateAPIKey applies a partial update, owner or managing staff only.
func (s *apiKeyService) UpdateAPIKey(ctx context.Context, actor models.User, id uuid.UUID, patch models.APIKeyPatch) (models.APIKey, error) {
	log := logger.FromContext(ctx)

	key, err := s.apiKeyRepository.GetAPIKeyByID(ctx, id)
	if err != nil {
		return models.APIKey{}, err
	}
	if err := s.authorizeKeyAccess(ctx, actor, key, permUpdateAPIKey); err != nil {
		return models.APIKey{}, err
	}

	updated, err := s.apiKeyRepository.UpdateAPIKey(ctx, id, patch)
	if err != nil {
		log.Err(err).Str("api_key_id", id.String()).Msg("api key update ended with error")
		return models.APIKey{}, fmt.Errorf("api key update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteAPIKey removes a key, owner or managing staff only.
func (s *apiKeyService) DeleteAPIKey(ctx context.Context, actor models.User, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	key, err := s.apiKeyRepository.GetAPIKeyByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeKeyAccess(ctx, actor, key, permDeleteAPIKey); err != nil {
		return err
	}

	if err := s.apiKeyRepository.DeleteAPIKey(ctx, id); err != nil {
		log.Err(err).Str("api_key_id", id.String()).Msg("api key deletion ended with error")
		return fmt.Errorf("api key deletion ended with error: %w", err)
	}

	return nil
}

// authorizeKeyAccess lets the key's owner through directly; anyone else must
// pass the managing-staff check with the named grant.
func (s *apiKeyService) authorizeKeyAccess(ctx context.Context, actor models.User, key models.APIKey, grant string) error {
	if key.UserID != nil && *key.UserID == actor.ID {
		return nil
	}
	return s.requireManager(ctx, actor, grant)
}

func (s *apiKeyService) requireManager(ctx context.Context, actor models.User, grant string) error {
	staff, err := s.staffRepository.GetStaffByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrStaffNotFound) {
			return fmt.Errorf("%w: a staff profile is required to manage other users' api keys", ErrActionForbidden)
		}
		return fmt.Errorf("actor staff lookup failed: %w", err)
	}
	if staff.Role != models.RoleAdmin && staff.Role != models.RoleSuperuser {
		return fmt.Errorf("%w: an admin or superuser actor is required", ErrActionForbidden)
	}
	return requireGrant(staff, grant)
}
