package storage

import (
	"context"
	"fmt"

	"github.com/podplatform/backend/internal/domain/production"
	"github.com/podplatform/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the production file store selected by production.storage_backend
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (production.FileStore, error) {
	switch cfg.Production.StorageBackend {
	case "", "local":
		return NewLocalFileStore(cfg.Production.OutputDir, cfg.Production.PublicBaseURL, logger)
	case "s3":
		store, err := NewS3FileStore(ctx, &cfg.Storage, logger)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Production.StorageBackend)
	}
}
