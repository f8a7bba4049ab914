package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/pms/backend/internal/domain/identity"
	"github.com/pms/backend/internal/domain/shared"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned to the console
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
	Phone       string
	Role        string
	Status      string
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string        // JWT ID for blacklisting
	TokenTTL time.Duration // Remaining lifetime of the access token
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the input for creating a console user
type CreateUserInput struct {
	Username    string
	Password    string
	Role        string
	Email       string
	Phone       string
	DisplayName string
}

// UpdateUserInput contains the input for updating a console user.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	Email       *string
	Phone       *string
	DisplayName *string
	Role        *string
}

// ResetPasswordInput contains the input for an admin password reset
type ResetPasswordInput struct {
	UserID      uuid.UUID
	NewPassword string
}

// ListUsersInput contains filters for listing users
type ListUsersInput struct {
	Filter shared.Filter
	Role   string
	Status string
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.GetDisplayNameOrUsername(),
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        string(user.Role),
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
