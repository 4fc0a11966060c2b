package http

import (
	"context"
	"time"

	"github.com/corepay/identity-service/internal/service"
	"github.com/corepay/identity-service/models"
	"github.com/google/uuid"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	loginFn      func(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (models.LoginResponse, error)
	logoutFn     func(ctx context.Context, actor models.User, refreshToken string, meta models.RequestMeta) error
	refreshFn    func(ctx context.Context, refreshToken string, meta models.RequestMeta) (models.RefreshResponse, error)
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest, meta models.RequestMeta) (models.LoginResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req, meta)
	}
	return models.LoginResponse{}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, actor models.User, refreshToken string, meta models.RequestMeta) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, actor, refreshToken, meta)
	}
	return nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string, meta models.RequestMeta) (models.RefreshResponse, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken, meta)
	}
	return models.RefreshResponse{}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	createUserFn func(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	findByIDFn   func(ctx context.Context, id uuid.UUID) (models.User, error)
	getUserFn    func(ctx context.Context, actor models.User, id uuid.UUID) (models.User, error)
	listUsersFn  func(ctx context.Context, actor models.User, limit, offset uint64) ([]models.User, error)
	updateUserFn func(ctx context.Context, actor models.User, id uuid.UUID, patch models.UserPatch) (models.User, error)
	deleteUserFn func(ctx context.Context, actor models.User, id uuid.UUID, meta models.RequestMeta) error
}

func (m *mockUserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, req)
	}
	return models.User{}, nil
}

func (m *mockUserService) FindByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.User{ID: id, Status: models.StatusActive}, nil
}

func (m *mockUserService) GetUser(ctx context.Context, actor models.User, id uuid.UUID) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, actor, id)
	}
	return models.User{ID: id}, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, actor models.User, limit, offset uint64) ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, actor, limit, offset)
	}
	return nil, nil
}

func (m *mockUserService) UpdateUser(ctx context.Context, actor models.User, id uuid.UUID, patch models.UserPatch) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, actor, id, patch)
	}
	return models.User{ID: id}, nil
}

func (m *mockUserService) DeleteUser(ctx context.Context, actor models.User, id uuid.UUID, meta models.RequestMeta) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, actor, id, meta)
	}
	return nil
}

// testServices assembles a Services value with the supplied stubs; services
// not exercised by a test stay nil.
func testServices(auth service.AuthService, users service.UserService) *service.Services {
	return &service.Services{
		AuthService: auth,
		UserService: users,
	}
}

// activeUser is a convenient ACTIVE account for middleware tests.
func activeUser() models.User {
	return models.User{
		ID:          uuid.New(),
		Username:    "john",
		Email:       "john@example.com",
		Status:      models.StatusActive,
		DateCreated: time.Now().UTC(),
	}
}
