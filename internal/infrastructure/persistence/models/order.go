package models

import (
	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate. Line items
// are stored as a JSON document on the row.
type OrderModel struct {
	AggregateModel
	UserID            *uuid.UUID       `gorm:"type:uuid;index"`
	Source            string           `gorm:"type:varchar(20);not null;default:'manual'"`
	ExternalID        *string          `gorm:"type:varchar(100);uniqueIndex"`
	StoreID           *uuid.UUID       `gorm:"type:uuid;index"`
	Amount            decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Currency          string           `gorm:"type:varchar(3);not null;default:'USD'"`
	PaymentStatus     string           `gorm:"type:varchar(20);not null;default:'pending'"`
	Status            string           `gorm:"type:varchar(30);not null;default:'draft';index"`
	TrackingNumber    string           `gorm:"type:varchar(100)"`
	LineItems         []order.LineItem `gorm:"type:jsonb;serializer:json"`
	ProductionFileURL string           `gorm:"type:varchar(500)"`
	RecipientName     string           `gorm:"type:varchar(200)"`
	RecipientEmail    string           `gorm:"type:varchar(255)"`
	Street            string           `gorm:"type:varchar(255)"`
	City              string           `gorm:"type:varchar(100)"`
	State             string           `gorm:"type:varchar(100)"`
	ZipCode           string           `gorm:"type:varchar(20)"`
	Country           string           `gorm:"type:varchar(100)"`

	User  *UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Store *StoreModel `gorm:"foreignKey:StoreID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		Source:            order.Source(m.Source),
		StoreID:           m.StoreID,
		Amount:            moneyFrom(m.Amount, m.Currency),
		PaymentStatus:     order.PaymentStatus(m.PaymentStatus),
		Status:            order.Status(m.Status),
		TrackingNumber:    m.TrackingNumber,
		Items:             m.LineItems,
		ProductionFileURL: m.ProductionFileURL,
		Recipient: valueobject.Recipient{
			Name:    m.RecipientName,
			Email:   m.RecipientEmail,
			Street:  m.Street,
			City:    m.City,
			State:   m.State,
			ZipCode: m.ZipCode,
			Country: m.Country,
		},
	}
	if m.ExternalID != nil {
		o.ExternalID = *m.ExternalID
	}
	if o.Items == nil {
		o.Items = []order.LineItem{}
	}
	return o
}

// OrderModelFromDomain creates a persistence model from a domain Order.
// An empty external id is stored as NULL so the unique index only covers
// imported orders.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		UserID:            o.UserID,
		Source:            string(o.Source),
		StoreID:           o.StoreID,
		Amount:            o.Amount.Amount(),
		Currency:          string(o.Amount.Currency()),
		PaymentStatus:     string(o.PaymentStatus),
		Status:            string(o.Status),
		TrackingNumber:    o.TrackingNumber,
		LineItems:         o.Items,
		ProductionFileURL: o.ProductionFileURL,
		RecipientName:     o.Recipient.Name,
		RecipientEmail:    o.Recipient.Email,
		Street:            o.Recipient.Street,
		City:              o.Recipient.City,
		State:             o.Recipient.State,
		ZipCode:           o.Recipient.ZipCode,
		Country:           o.Recipient.Country,
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	if o.ExternalID != "" {
		ext := o.ExternalID
		m.ExternalID = &ext
	}
	return m
}
