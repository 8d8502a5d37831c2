package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create inserts a new user; a duplicate email returns ErrEmailTaken
	Create(ctx context.Context, user *User) error

	// Update saves changes to an existing user
	Update(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail returns ErrUserNotFound when missing
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns one page of users, oldest first, and the total count
	FindAll(ctx context.Context, page shared.Page) ([]*User, int64, error)

	// ExistsByEmail checks whether an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
