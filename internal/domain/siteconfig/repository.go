package siteconfig

import "context"

// Repository defines the interface for settings persistence
type Repository interface {
	// FindAll returns every setting ordered by group, then key
	FindAll(ctx context.Context) ([]Setting, error)

	// FindByGroup returns the group's settings ordered by key
	FindByGroup(ctx context.Context, group string) ([]Setting, error)

	// Count returns the number of stored settings
	Count(ctx context.Context) (int64, error)

	// UpsertAll writes all settings in one transaction. Either every row is
	// stored or none is.
	UpsertAll(ctx context.Context, settings []Setting) error
}
