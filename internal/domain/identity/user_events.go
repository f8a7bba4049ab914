package identity

import (
	"github.com/pms/backend/internal/domain/shared"
)

// Event types for the user aggregate
const (
	EventUserCreated         = "identity.user.created"
	EventUserPasswordChanged = "identity.user.password_changed"
)

// UserCreatedEvent is raised when a new user account is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

// NewUserCreatedEvent creates a UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserCreated, "User", user.ID),
		Username:        user.Username,
		Role:            user.Role,
	}
}

// UserPasswordChangedEvent is raised when a user's password changes
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserPasswordChangedEvent creates a UserPasswordChangedEvent
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserPasswordChanged, "User", user.ID),
		Username:        user.Username,
	}
}
