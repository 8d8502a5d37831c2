package persistence

import (
	"context"

	"github.com/podplatform/backend/internal/domain/siteconfig"
	"github.com/podplatform/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSiteConfigRepository implements siteconfig.Repository using GORM
type GormSiteConfigRepository struct {
	db *gorm.DB
}

// NewGormSiteConfigRepository creates a new GormSiteConfigRepository
func NewGormSiteConfigRepository(db *gorm.DB) *GormSiteConfigRepository {
	return &GormSiteConfigRepository{db: db}
}

// FindAll returns every setting ordered by group, then key
func (r *GormSiteConfigRepository) FindAll(ctx context.Context) ([]siteconfig.Setting, error) {
	return r.find(r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "group"}}))
}

// FindByGroup returns the group's settings ordered by key
func (r *GormSiteConfigRepository) FindByGroup(ctx context.Context, group string) ([]siteconfig.Setting, error) {
	return r.find(r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "group"}, Value: group}))
}

func (r *GormSiteConfigRepository) find(query *gorm.DB) ([]siteconfig.Setting, error) {
	var rows []models.SettingModel
	if err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&rows).Error; err != nil {
		return nil, err
	}
	settings := make([]siteconfig.Setting, len(rows))
	for i := range rows {
		settings[i] = rows[i].ToDomain()
	}
	return settings, nil
}

// Count returns the number of stored settings
func (r *GormSiteConfigRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SettingModel{}).Count(&count).Error
	return count, err
}

// UpsertAll writes all settings in one transaction
func (r *GormSiteConfigRepository) UpsertAll(ctx context.Context, settings []siteconfig.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	rows := make([]*models.SettingModel, len(settings))
	for i, s := range settings {
		rows[i] = models.SettingModelFromDomain(s)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "group", "type", "label", "updated_at"}),
		}).Create(&rows).Error
	})
}

// Ensure GormSiteConfigRepository implements siteconfig.Repository
var _ siteconfig.Repository = (*GormSiteConfigRepository)(nil)
