package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// RecipientInput is the shipping address of a manual order
type RecipientInput struct {
	Name    string
	Email   string
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// LineItemInput is one product line of a manual order
type LineItemInput struct {
	SKU        string
	Title      string
	Quantity   int
	Variant    string
	ImageURL   string
	Dimensions string
}

// CreateOrderInput contains input for creating a manual order
type CreateOrderInput struct {
	UserID    *uuid.UUID
	Recipient RecipientInput
	Items     []LineItemInput
	Amount    decimal.Decimal
	Currency  string
}

// ListOrdersInput narrows an order listing
type ListOrdersInput struct {
	Offset int
	Limit  int
	Status string
	UserID *uuid.UUID
}

// RecipientDTO is the shipping address of an order
type RecipientDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// OrderDTO represents order data transfer object
type OrderDTO struct {
	ID                uuid.UUID        `json:"id"`
	Reference         string           `json:"reference"`
	UserID            *uuid.UUID       `json:"user_id,omitempty"`
	Source            string           `json:"source"`
	ExternalID        string           `json:"external_id,omitempty"`
	StoreID           *uuid.UUID       `json:"store_id,omitempty"`
	Amount            decimal.Decimal  `json:"amount"`
	Currency          string           `json:"currency"`
	PaymentStatus     string           `json:"payment_status"`
	Status            string           `json:"status"`
	TrackingNumber    string           `json:"tracking_number,omitempty"`
	LineItems         []order.LineItem `json:"line_items"`
	ProductionFileURL string           `json:"production_file_url,omitempty"`
	Recipient         RecipientDTO     `json:"recipient"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ToOrderDTO converts the aggregate to its API shape
func ToOrderDTO(o *order.Order) OrderDTO {
	items := o.Items
	if items == nil {
		items = []order.LineItem{}
	}
	return OrderDTO{
		ID:                o.ID,
		Reference:         o.Reference(),
		UserID:            o.UserID,
		Source:            string(o.Source),
		ExternalID:        o.ExternalID,
		StoreID:           o.StoreID,
		Amount:            o.Amount.Amount(),
		Currency:          string(o.Amount.Currency()),
		PaymentStatus:     string(o.PaymentStatus),
		Status:            string(o.Status),
		TrackingNumber:    o.TrackingNumber,
		LineItems:         items,
		ProductionFileURL: o.ProductionFileURL,
		Recipient: RecipientDTO{
			Name:    o.Recipient.Name,
			Email:   o.Recipient.Email,
			Street:  o.Recipient.Street,
			City:    o.Recipient.City,
			State:   o.Recipient.State,
			ZipCode: o.Recipient.ZipCode,
			Country: o.Recipient.Country,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// ToOrderDTOs converts a slice of orders
func ToOrderDTOs(orders []*order.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderDTO(o))
	}
	return out
}
