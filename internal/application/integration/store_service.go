package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/integration"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const syncLockPrefix = "store-sync:"

// StoreServiceConfig tunes store synchronisation
type StoreServiceConfig struct {
	// SyncLockTTL bounds how long a crashed sync can block the next one
	SyncLockTTL time.Duration
	// SyncTimeout bounds the marketplace fetch
	SyncTimeout time.Duration
}

// StoreService connects marketplace shops and pulls their orders
type StoreService struct {
	storeRepo integration.StoreRepository
	sources   map[integration.Platform]integration.OrderSource
	importer  *ImportService
	lock      shared.KeyLock
	config    StoreServiceConfig
	logger    *zap.Logger
}

// NewStoreService creates a new store service. Platforms without a source
// can be connected but not synced.
func NewStoreService(
	storeRepo integration.StoreRepository,
	sources []integration.OrderSource,
	importer *ImportService,
	lock shared.KeyLock,
	config StoreServiceConfig,
	logger *zap.Logger,
) *StoreService {
	bySource := make(map[integration.Platform]integration.OrderSource, len(sources))
	for _, src := range sources {
		bySource[src.Platform()] = src
	}
	if config.SyncLockTTL <= 0 {
		config.SyncLockTTL = 2 * time.Minute
	}
	if config.SyncTimeout <= 0 {
		config.SyncTimeout = time.Minute
	}
	return &StoreService{
		storeRepo: storeRepo,
		sources:   bySource,
		importer:  importer,
		lock:      lock,
		config:    config,
		logger:    logger,
	}
}

// Connect links a shop to the user. Connecting a platform again updates the
// existing store instead of adding a second one.
func (s *StoreService) Connect(ctx context.Context, userID uuid.UUID, platformName, shopName string) (*StoreDTO, error) {
	platform, err := integration.ParsePlatform(platformName)
	if err != nil {
		return nil, err
	}

	store, err := s.storeRepo.FindByUserAndPlatform(ctx, userID, platform)
	switch {
	case err == nil:
		if err := store.Reconnect(shopName); err != nil {
			return nil, err
		}
	case shared.IsNotFound(err):
		store, err = integration.NewStore(userID, platform, shopName)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("find store: %w", err)
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		s.logger.Error("Failed to save store", zap.Error(err))
		return nil, fmt.Errorf("save store: %w", err)
	}

	s.logger.Info("Store connected",
		zap.String("store_id", store.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("platform", platform.String()),
		zap.String("shop_name", store.ShopName))
	dto := toStoreDTO(store)
	return &dto, nil
}

// List returns the user's stores
func (s *StoreService) List(ctx context.Context, userID uuid.UUID) ([]StoreDTO, error) {
	stores, err := s.storeRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	out := make([]StoreDTO, 0, len(stores))
	for _, st := range stores {
		out = append(out, toStoreDTO(st))
	}
	return out, nil
}

// Sync pulls the store's marketplace orders and imports the new ones.
// Only one sync per store runs at a time. userID, when set, must own the store.
func (s *StoreService) Sync(ctx context.Context, storeID uuid.UUID, userID *uuid.UUID) (*SyncResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "integration.sync_store", "store_id", storeID)
	defer span.End()

	result, err := s.sync(ctx, storeID, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(telemetry.Attributes(
		"fetched", result.FetchedCount,
		"new_orders", result.NewOrdersCount,
	)...)
	return result, nil
}

func (s *StoreService) sync(ctx context.Context, storeID uuid.UUID, userID *uuid.UUID) (*SyncResult, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if userID != nil && store.UserID != *userID {
		return nil, integration.ErrStoreNotFound
	}
	if err := store.CanSync(); err != nil {
		return nil, err
	}
	source, ok := s.sources[store.Platform]
	if !ok {
		return nil, integration.ErrPlatformNotSupported
	}

	lockKey := syncLockPrefix + store.ID.String()
	lockToken, acquired, err := s.lock.Acquire(ctx, lockKey, s.config.SyncLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire sync lock: %w", err)
	}
	if !acquired {
		return nil, integration.ErrSyncInProgress
	}
	defer func() {
		// Released on a fresh context so a cancelled request still frees the key
		if err := s.lock.Release(context.WithoutCancel(ctx), lockKey, lockToken); err != nil {
			s.logger.Warn("Failed to release sync lock", zap.String("store_id", store.ID.String()), zap.Error(err))
		}
	}()

	log := s.logger.With(
		zap.String("store_id", store.ID.String()),
		zap.String("platform", store.Platform.DisplayName()),
	)

	fetchCtx, cancel := context.WithTimeout(ctx, s.config.SyncTimeout)
	defer cancel()
	platformOrders, err := source.FetchOrders(fetchCtx, store)
	if err != nil {
		log.Error("Failed to fetch marketplace orders", zap.Error(err))
		var de *shared.DomainError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, integration.ErrPlatformUnavailable
	}

	result := &SyncResult{FetchedCount: len(platformOrders)}
	for _, po := range platformOrders {
		_, created, err := s.importer.ImportExternalOrder(ctx, store, po)
		if err != nil {
			if shared.HasCode(err, integration.ErrInvalidPlatformOrder.Code) {
				log.Warn("Skipping invalid marketplace order", zap.String("external_id", po.ExternalID), zap.Error(err))
				result.SkippedCount++
				continue
			}
			return nil, err
		}
		if created {
			result.NewOrdersCount++
		}
	}
	result.Message = fmt.Sprintf("Successfully synced orders from %s", store.ShopName)

	log.Info("Store synced",
		zap.Int("fetched", result.FetchedCount),
		zap.Int("new_orders", result.NewOrdersCount),
		zap.Int("skipped", result.SkippedCount))
	return result, nil
}
