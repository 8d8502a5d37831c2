package models

import (
	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/integration"
)

// StoreModel is the persistence model for a marketplace store. A user has
// at most one store per platform.
type StoreModel struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stores_user_platform"`
	Platform    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_stores_user_platform"`
	ShopName    string    `gorm:"type:varchar(200);not null"`
	AccessToken string    `gorm:"type:varchar(500)"`
	IsConnected bool      `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store
func (m *StoreModel) ToDomain() *integration.Store {
	return &integration.Store{
		BaseEntity:  m.BaseModel.ToDomain(),
		UserID:      m.UserID,
		Platform:    integration.Platform(m.Platform),
		ShopName:    m.ShopName,
		AccessToken: m.AccessToken,
		IsConnected: m.IsConnected,
	}
}

// StoreModelFromDomain creates a persistence model from a domain Store
func StoreModelFromDomain(s *integration.Store) *StoreModel {
	m := &StoreModel{
		UserID:      s.UserID,
		Platform:    string(s.Platform),
		ShopName:    s.ShopName,
		AccessToken: s.AccessToken,
		IsConnected: s.IsConnected,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
