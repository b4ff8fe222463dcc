package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/namap/backend/internal/domain/identity"
	"github.com/namap/backend/internal/domain/shared"
	"github.com/namap/backend/internal/infrastructure/auth"
	"github.com/namap/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestService(repo *MockUserRepository) (*AuthService, *auth.InMemoryTokenBlacklist) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(repo, jwtService, blacklist, DefaultAuthServiceConfig(), zap.NewNop())
	return service, blacklist
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("alice", "alice@example.com", "password1")
	require.NoError(t, err)
	return user
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers new user", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)

		repo.On("ExistsByUsername", ctx, "alice").Return(false, nil)
		repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "alice" && u.IsActive()
		})).Return(nil)

		info, err := service.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password1",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", info.Username)
		repo.AssertExpectations(t)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)

		repo.On("ExistsByUsername", ctx, "alice").Return(true, nil)

		_, err := service.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password1",
		})

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ALREADY_EXISTS", derr.Code)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)

		repo.On("ExistsByUsername", ctx, "alice").Return(false, nil)
		repo.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil)

		_, err := service.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "password1",
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token pair for valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)
		user := newTestUser(t)

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		result, err := service.Login(ctx, LoginInput{Username: "alice", Password: "password1", IP: "203.0.113.7"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "203.0.113.7", user.LastLoginIP)
	})

	t.Run("unknown user reads as invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)

		repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginInput{Username: "ghost", Password: "password1"})

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_CREDENTIALS", derr.Code)
	})

	t.Run("wrong password records failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)
		user := newTestUser(t)

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		_, err := service.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_CREDENTIALS", derr.Code)
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("locks account after max failed attempts", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)
		user := newTestUser(t)
		user.FailedAttempts = 4

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		_, err := service.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ACCOUNT_LOCKED", derr.Code)
		assert.True(t, user.IsLocked())
	})

	t.Run("rejects locked account", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)
		user := newTestUser(t)
		require.NoError(t, user.Lock(time.Hour))

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)

		_, err := service.Login(ctx, LoginInput{Username: "alice", Password: "password1"})

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ACCOUNT_LOCKED", derr.Code)
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("issues new pair for valid refresh token", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)
		user := newTestUser(t)

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)
		login, err := service.Login(ctx, LoginInput{Username: "alice", Password: "password1"})
		require.NoError(t, err)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		result, err := service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)

		_, err := service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "garbage"})

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "TOKEN_INVALID", derr.Code)
	})

	t.Run("rejects refresh for deactivated user", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)
		user := newTestUser(t)

		repo.On("FindByUsername", ctx, "alice").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)
		login, err := service.Login(ctx, LoginInput{Username: "alice", Password: "password1"})
		require.NoError(t, err)

		require.NoError(t, user.Deactivate())
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err = service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ACCOUNT_INACTIVE", derr.Code)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the token JTI", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, blacklist := newTestService(repo)

		err := service.Logout(ctx, LogoutInput{
			UserID:         uuid.New(),
			TokenJTI:       "jti-123",
			TokenExpiresAt: time.Now().Add(time.Hour),
		})

		require.NoError(t, err)
		blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-123")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("already expired token is a no-op", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, blacklist := newTestService(repo)

		err := service.Logout(ctx, LogoutInput{
			UserID:         uuid.New(),
			TokenJTI:       "jti-456",
			TokenExpiresAt: time.Now().Add(-time.Minute),
		})

		require.NoError(t, err)
		blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-456")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password with correct old password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)
		user := newTestUser(t)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		err := service.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "password1",
			NewPassword: "newpassword2",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newpassword2"))
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service, _ := newTestService(repo)
		user := newTestUser(t)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := service.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong",
			NewPassword: "newpassword2",
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
