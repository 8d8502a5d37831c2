package integration

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	// Save inserts or updates a store
	Save(ctx context.Context, s *Store) error

	// FindByID returns ErrStoreNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindByUserAndPlatform returns ErrStoreNotFound when the user has no
	// store on the platform
	FindByUserAndPlatform(ctx context.Context, userID uuid.UUID, platform Platform) (*Store, error)

	// FindByUser returns the user's stores, oldest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Store, error)
}
