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
	activityUserCreated = "user_created"
	activityUserUpdated = "user_updated"
	activityUserDeleted = "user_deleted"
)

// userService is the concrete implementation of [UserService].
//
// The superuser account gets special treatment throughout: its row is
// invisible to everyone else, it cannot be created twice, and only the
// superuser may remove it.
type userService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository
	staffRepository   store.StaffRepository
	activityService   ActivityService
	validator         validators.Validator
	logger            *logger.Logger
}

// NewUserService constructs a [UserService].
func NewUserService(userRepository store.UserRepository, sessionRepository store.SessionRepository, staffRepository store.StaffRepository, activityService ActivityService, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		staffRepository:   staffRepository,
		activityService:   activityService,
		validator:         validator,
		logger:            logger,
	}
}

// CreateUser registers a new account. New accounts start as PENDING_KYC.
//
// A request for a superuser account is pre-checked against the existing
// superuser; the partial unique index on the users table remains the
// authoritative guard and its violation maps to the same sentinel.
func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid signup data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if req.IsSuperuser {
		exists, err := s.userRepository.SuperuserExists(ctx)
		if err != nil {
			return models.User{}, fmt.Errorf("superuser check failed: %w", err)
		}
		if exists {
			return models.User{}, store.ErrSuperuserAlreadyExists
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		ID:             utils.NewUUID(),
		Username:       req.Username,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		HashedPassword: hash,
		IsSuperuser:    req.IsSuperuser,
		Status:         models.StatusPendingKYC,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if _, err := s.activityService.Record(ctx, &created, nil, activityUserCreated, "account registered", models.RequestMeta{}); err != nil {
		return models.User{}, err
	}

	return created, nil
}

// FindByID is the ungated lookup used by the request middleware to resolve
// a token's subject.
func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.userRepository.GetUserByID(ctx, id)
}

// GetUser returns one account. The superuser row is hidden from everyone
// but the superuser: others receive not-found, not forbidden, so the
// account's existence leaks nothing.
func (s *userService) GetUser(ctx context.Context, actor models.User, id uuid.UUID) (models.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if user.IsSuperuser && actor.ID != user.ID {
		return models.User{}, store.ErrNoUserWasFound
	}

	return user, nil
}

// ListUsers returns a page of accounts. The superuser row is filtered out
// for every actor except the superuser.
func (s *userService) ListUsers(ctx context.Context, actor models.User, limit, offset uint64) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if actor.IsSuperuser {
		return users, nil
	}

	visible := users[:0]
	for _, u := range users {
		if !u.IsSuperuser {
			visible = append(visible, u)
		}
	}
	return visible, nil
}

// UpdateUser applies a partial update. Users may always edit themselves;
// editing someone else requires an admin or superuser staff profile, and
// nobody but the superuser touches the superuser row. A password in the
// patch is bcrypt-hashed before it reaches storage, and flipping a user to
// SUSPENDED revokes every session they hold.
func (s *userService) UpdateUser(ctx context.Context, actor models.User, id uuid.UUID, patch models.UserPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	if patch.IsZero() {
		return models.User{}, ErrInvalidDataProvided
	}

	if err := s.authorizeUserMutation(ctx, actor, id); err != nil {
		return models.User{}, err
	}

	if patch.Password != nil {
		hash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		patch.Password = &hash
	}

	updated, err := s.userRepository.UpdateUser(ctx, id, patch)
	if err != nil {
		log.Err(err).Str("user_id", id.String()).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	if patch.Status != nil && *patch.Status == models.StatusSuspended {
		revoked, err := s.sessionRepository.InvalidateUserSessions(ctx, id)
		if err != nil {
			return models.User{}, fmt.Errorf("session revocation on suspension failed: %w", err)
		}
		log.Info().Str("user_id", id.String()).Int64("sessions_revoked", revoked).Msg("user suspended")
	}

	if _, err := s.activityService.Record(ctx, &actor, &updated, activityUserUpdated, "account updated", models.RequestMeta{}); err != nil {
		return models.User{}, err
	}

	return updated, nil
}

// DeleteUser removes an account. The superuser account can only be deleted
// by itself; other accounts by themselves or by an admin/superuser staff
// actor. KYC records and activity logs cascade away; sessions and API keys
// keep their rows with the user reference nulled.
func (s *userService) DeleteUser(ctx context.Context, actor models.User, id uuid.UUID, meta models.RequestMeta) error {
	log := logger.FromContext(ctx)

	if err := s.authorizeUserMutation(ctx, actor, id); err != nil {
		return err
	}

	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		log.Err(err).Str("user_id", id.String()).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	if _, err := s.activityService.Record(ctx, &actor, nil, activityUserDeleted, fmt.Sprintf("account %s deleted", id), meta); err != nil {
		return err
	}

	return nil
}

// authorizeUserMutation allows self-service, blocks anyone but the
// superuser from the superuser row, and otherwise demands an admin or
// superuser staff profile.
func (s *userService) authorizeUserMutation(ctx context.Context, actor models.User, targetID uuid.UUID) error {
	if actor.ID == targetID {
		return nil
	}

	target, err := s.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.IsSuperuser {
		return store.ErrNoUserWasFound
	}

	staff, err := s.staffRepository.GetStaffByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrStaffNotFound) {
			return fmt.Errorf("%w: only staff may manage other accounts", ErrActionForbidden)
		}
		return fmt.Errorf("actor staff lookup failed: %w", err)
	}
	if staff.Role != models.RoleAdmin && staff.Role != models.RoleSuperuser {
		return fmt.Errorf("%w: an admin or superuser actor is required", ErrActionForbidden)
	}

	return nil
}
