package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/integration"
	"github.com/podplatform/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository implements integration.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Save inserts the store or updates the connection for its user and
// platform. On conflict the existing row keeps its id, so s.ID is reloaded.
func (r *GormStoreRepository) Save(ctx context.Context, s *integration.Store) error {
	model := models.StoreModelFromDomain(s)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{"shop_name", "access_token", "is_connected", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return err
	}

	stored, err := r.FindByUserAndPlatform(ctx, s.UserID, s.Platform)
	if err != nil {
		return err
	}
	s.ID = stored.ID
	s.CreatedAt = stored.CreatedAt
	return nil
}

// FindByID finds a store by ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.Store, error) {
	return r.findOne(ctx, r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByUserAndPlatform finds the user's store on a platform
func (r *GormStoreRepository) FindByUserAndPlatform(ctx context.Context, userID uuid.UUID, platform integration.Platform) (*integration.Store, error) {
	return r.findOne(ctx, r.db.WithContext(ctx).Where("user_id = ? AND platform = ?", userID, string(platform)))
}

func (r *GormStoreRepository) findOne(_ context.Context, query *gorm.DB) (*integration.Store, error) {
	var model models.StoreModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrStoreNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's stores, oldest first
func (r *GormStoreRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*integration.Store, error) {
	var rows []models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	stores := make([]*integration.Store, len(rows))
	for i := range rows {
		stores[i] = rows[i].ToDomain()
	}
	return stores, nil
}

// Ensure GormStoreRepository implements integration.StoreRepository
var _ integration.StoreRepository = (*GormStoreRepository)(nil)
