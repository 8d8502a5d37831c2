package models

import (
	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for a payment attempt
type PaymentModel struct {
	BaseModel
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Method        string          `gorm:"type:varchar(20);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending'"`
	TransactionID string          `gorm:"type:varchar(100);index"`
	FailureReason string          `gorm:"type:varchar(500)"`

	Order *OrderModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		OrderID:       m.OrderID,
		Amount:        moneyFrom(m.Amount, m.Currency),
		Method:        payment.Method(m.Method),
		Status:        payment.Status(m.Status),
		TransactionID: m.TransactionID,
		FailureReason: m.FailureReason,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	m := &PaymentModel{
		OrderID:       p.OrderID,
		Amount:        p.Amount.Amount(),
		Currency:      string(p.Amount.Currency()),
		Method:        string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		FailureReason: p.FailureReason,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
