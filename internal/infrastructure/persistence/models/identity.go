package models

import (
	"github.com/podplatform/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	AggregateModel
	Email                 string                     `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName              string                     `gorm:"type:varchar(200)"`
	PasswordHash          string                     `gorm:"type:varchar(255);not null"`
	IsActive              bool                       `gorm:"not null;default:false"`
	IsAdmin               bool                       `gorm:"not null;default:false"`
	DiscountPercentage    decimal.Decimal            `gorm:"type:decimal(5,2);not null;default:0"`
	CustomPricing         map[string]decimal.Decimal `gorm:"type:jsonb;serializer:json"`
	AllowOnAccountPayment bool                       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	var custom map[identity.Material]decimal.Decimal
	if len(m.CustomPricing) > 0 {
		custom = make(map[identity.Material]decimal.Decimal, len(m.CustomPricing))
		for k, v := range m.CustomPricing {
			custom[identity.Material(k)] = v
		}
	}
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		FullName:          m.FullName,
		PasswordHash:      m.PasswordHash,
		IsActive:          m.IsActive,
		IsAdmin:           m.IsAdmin,
		Pricing: identity.Pricing{
			DiscountPercentage:    m.DiscountPercentage,
			CustomPrices:          custom,
			AllowOnAccountPayment: m.AllowOnAccountPayment,
		},
	}
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:                 u.Email,
		FullName:              u.FullName,
		PasswordHash:          u.PasswordHash,
		IsActive:              u.IsActive,
		IsAdmin:               u.IsAdmin,
		DiscountPercentage:    u.Pricing.DiscountPercentage,
		AllowOnAccountPayment: u.Pricing.AllowOnAccountPayment,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	if len(u.Pricing.CustomPrices) > 0 {
		m.CustomPricing = make(map[string]decimal.Decimal, len(u.Pricing.CustomPrices))
		for k, v := range u.Pricing.CustomPrices {
			m.CustomPricing[string(k)] = v
		}
	}
	return m
}
