package models

import (
	"time"

	"github.com/podplatform/backend/internal/domain/siteconfig"
)

// SettingModel is one row of the key/value site configuration
type SettingModel struct {
	Key       string    `gorm:"column:key;type:varchar(150);primaryKey"`
	Value     string    `gorm:"type:text"`
	Group     string    `gorm:"column:group;type:varchar(100);not null;default:'general';index"`
	Type      string    `gorm:"type:varchar(20);not null;default:'text'"`
	Label     string    `gorm:"type:varchar(200)"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "site_config"
}

// ToDomain converts the persistence model to a domain Setting
func (m *SettingModel) ToDomain() siteconfig.Setting {
	return siteconfig.Setting{
		Key:   m.Key,
		Value: m.Value,
		Group: m.Group,
		Type:  m.Type,
		Label: m.Label,
	}
}

// SettingModelFromDomain creates a persistence model from a domain Setting
func SettingModelFromDomain(s siteconfig.Setting) *SettingModel {
	return &SettingModel{
		Key:       s.Key,
		Value:     s.Value,
		Group:     s.Group,
		Type:      s.Type,
		Label:     s.Label,
		UpdatedAt: time.Now(),
	}
}
