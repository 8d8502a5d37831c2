package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared"
)

// Filter narrows an order listing
type Filter struct {
	Status *Status
	UserID *uuid.UUID
	Page   shared.Page
}

// Repository defines the interface for order persistence
type Repository interface {
	// Create inserts a new order. A duplicate external id returns ErrDuplicateExternalID.
	Create(ctx context.Context, o *Order) error

	// Update saves changes to an existing order
	Update(ctx context.Context, o *Order) error

	// FindByID returns ErrOrderNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByExternalID returns ErrOrderNotFound when no order carries the id
	FindByExternalID(ctx context.Context, externalID string) (*Order, error)

	// FindAll returns one page of orders, newest first, and the total count
	FindAll(ctx context.Context, filter Filter) ([]*Order, int64, error)
}
