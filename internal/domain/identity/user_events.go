package identity

import (
	"github.com/podplatform/backend/internal/domain/shared"
)

// AggregateTypeUser names the user aggregate in events
const AggregateTypeUser = "User"

const (
	EventTypeUserRegistered    = "UserRegistered"
	EventTypeUserStatusChanged = "UserStatusChanged"
)

// UserRegisteredEvent is published when a user signs up
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Email:           user.Email,
	}
}

// UserStatusChangedEvent is published when a user is activated or deactivated
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// NewUserStatusChangedEvent creates a new UserStatusChangedEvent
func NewUserStatusChangedEvent(user *User) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUser, user.ID),
		Email:           user.Email,
		IsActive:        user.IsActive,
	}
}
