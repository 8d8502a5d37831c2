package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order. The unique index on external_id turns a
// concurrent import of the same marketplace order into ErrDuplicateExternalID.
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	if err := r.db.WithContext(ctx).Create(models.OrderModelFromDomain(o)).Error; err != nil {
		if isDuplicateKey(err) {
			return order.ErrDuplicateExternalID
		}
		return err
	}
	return nil
}

// Update saves an existing order with a version check
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return updateVersioned(ctx, r.db, models.OrderModelFromDomain(o), o.ID, o.Version, order.ErrOrderNotFound)
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByExternalID finds an imported order by its marketplace id
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, externalID string) (*order.Order, error) {
	if externalID == "" {
		return nil, order.ErrOrderNotFound
	}
	return r.findOne(ctx, "external_id = ?", externalID)
}

func (r *GormOrderRepository) findOne(ctx context.Context, query string, arg any) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns one page of orders, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]*order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Page.Offset).
		Limit(filter.Page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, total, nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
