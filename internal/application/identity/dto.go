package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/namap/backend/internal/domain/identity"
	"github.com/namap/backend/internal/infrastructure/auth"
)

// RegisterInput carries the fields for account registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries the login credentials plus the client IP for the
// login audit trail.
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// IssuedTokens is the token bundle shared by login and refresh results.
type IssuedTokens struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

func issuedTokens(pair *auth.TokenPair) IssuedTokens {
	return IssuedTokens{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

// UserInfo is the public view of an account.
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
}

func userInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.GetDisplayNameOrUsername(),
		Email:       user.Email,
	}
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	IssuedTokens
	User UserInfo
}

// RefreshTokenInput carries the refresh token being exchanged.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult is returned on a successful token refresh.
type RefreshTokenResult struct {
	IssuedTokens
}

// LogoutInput identifies the access token being revoked.
type LogoutInput struct {
	UserID         uuid.UUID
	TokenJTI       string
	TokenExpiresAt time.Time
}

// ChangePasswordInput carries a password rotation request.
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// GetCurrentUserInput identifies the account being looked up.
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// CurrentUserResult wraps the caller's own account info.
type CurrentUserResult struct {
	User UserInfo
}
