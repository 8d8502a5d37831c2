package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/domain/shared/valueobject"
)

// Source tells where an order came from
type Source string

const (
	SourceManual  Source = "manual"
	SourceEtsy    Source = "etsy"
	SourceShopify Source = "shopify"
	SourceWoo     Source = "woo"
)

// IsValid reports whether s is a known source
func (s Source) IsValid() bool {
	switch s {
	case SourceManual, SourceEtsy, SourceShopify, SourceWoo:
		return true
	}
	return false
}

// Status is the fulfilment state of an order
type Status string

const (
	StatusDraft         Status = "draft"
	StatusReadyForPrint Status = "ready_for_print"
	StatusPaid          Status = "paid"
	StatusInProduction  Status = "in_production"
	StatusShipped       Status = "shipped"
	StatusCancelled     Status = "cancelled"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusReadyForPrint, StatusPaid, StatusInProduction, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further fulfilment step is possible
func (s Status) IsTerminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

// PaymentStatus tracks whether the order has been paid for
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

var (
	ErrOrderNotFound       = shared.NewDomainError("NOT_FOUND", "Order not found")
	ErrItemIndexOutOfRange = shared.NewDomainError("INVALID_INPUT", "Item index out of range")
	ErrNoItems             = shared.NewDomainError("INVALID_INPUT", "Order must have at least one line item")
	ErrTrackingRequired    = shared.NewDomainError("INVALID_INPUT", "Tracking number is required")
	ErrDuplicateExternalID = shared.NewDomainError("ALREADY_EXISTS", "An order with this external id already exists")
	ErrAlreadyPaid         = shared.NewDomainError("CONFLICT", "Order is already paid")
)

// LineItem is one printable product on an order
type LineItem struct {
	SKU        string `json:"sku"`
	Title      string `json:"title"`
	Quantity   int    `json:"quantity"`
	Variant    string `json:"variant"`
	ImageURL   string `json:"image_url,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
}

func (li LineItem) validate() error {
	if li.Quantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Line item quantity must be at least 1")
	}
	return nil
}

// Order is the aggregate root for a customer order
type Order struct {
	shared.BaseAggregateRoot
	UserID            *uuid.UUID
	Source            Source
	ExternalID        string
	StoreID           *uuid.UUID
	Amount            valueobject.Money
	PaymentStatus     PaymentStatus
	Status            Status
	TrackingNumber    string
	Items             []LineItem
	ProductionFileURL string
	Recipient         valueobject.Recipient
}

// NewManualOrder creates a draft order entered by a merchant
func NewManualOrder(userID *uuid.UUID, recipient valueobject.Recipient, items []LineItem, amount valueobject.Money) (*Order, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Source:            SourceManual,
		Amount:            amount,
		PaymentStatus:     PaymentPending,
		Status:            StatusDraft,
		Items:             items,
		Recipient:         recipient,
	}
	o.AddDomainEvent(NewOrderCreatedEvent(o))
	return o, nil
}

// NewImportedOrder creates a zero-amount draft order from a marketplace
func NewImportedOrder(source Source, externalID string, storeID, userID *uuid.UUID, recipient valueobject.Recipient, items []LineItem) (*Order, error) {
	if !source.IsValid() || source == SourceManual {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid import source: %s", source))
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "External id is required for imported orders")
	}
	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Source:            source,
		ExternalID:        externalID,
		StoreID:           storeID,
		Amount:            valueobject.Zero(valueobject.DefaultCurrency),
		PaymentStatus:     PaymentPending,
		Status:            StatusDraft,
		Items:             items,
		Recipient:         recipient,
	}
	o.AddDomainEvent(NewOrderCreatedEvent(o))
	return o, nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, li := range items {
		if err := li.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Reference is the human-facing order number: the marketplace id when
// there is one, otherwise the internal id
func (o *Order) Reference() string {
	if o.ExternalID != "" {
		return o.ExternalID
	}
	return o.ID.String()
}

// Item returns the line item at index
func (o *Order) Item(index int) (LineItem, error) {
	if index < 0 || index >= len(o.Items) {
		return LineItem{}, ErrItemIndexOutOfRange
	}
	return o.Items[index], nil
}

// IsPaid reports whether payment has been captured or verified
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}

// Verify records that an admin has confirmed payment. Every order that is
// not shipped or cancelled moves to paid.
func (o *Order) Verify() error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot verify order in %s status", o.Status))
	}
	o.PaymentStatus = PaymentPaid
	o.Status = StatusPaid
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderPaidEvent(o, ""))
	return nil
}

// MarkPaid records a captured payment
func (o *Order) MarkPaid(transactionID string) error {
	if o.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay for a cancelled order")
	}
	if o.IsPaid() {
		return ErrAlreadyPaid
	}
	o.PaymentStatus = PaymentPaid
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderPaidEvent(o, transactionID))
	return nil
}

// Ship records the carrier tracking number. Shipping again replaces the
// tracking number.
func (o *Order) Ship(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrTrackingRequired
	}
	if o.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot ship a cancelled order")
	}
	o.Status = StatusShipped
	o.TrackingNumber = trackingNumber
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderShippedEvent(o))
	return nil
}

// AttachProductionFile stores the print file location. Orders that have not
// shipped move to in_production.
func (o *Order) AttachProductionFile(url string) error {
	if o.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot produce a cancelled order")
	}
	o.ProductionFileURL = url
	if o.Status != StatusShipped {
		o.Status = StatusInProduction
	}
	o.IncrementVersion()
	o.AddDomainEvent(NewProductionFileAttachedEvent(o))
	return nil
}

// Cancel stops an order that has not entered production
func (o *Order) Cancel() error {
	switch o.Status {
	case StatusDraft, StatusReadyForPrint, StatusPaid:
	default:
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	o.Status = StatusCancelled
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// TotalQuantity sums the quantities of all line items
func (o *Order) TotalQuantity() int {
	total := 0
	for _, li := range o.Items {
		total += li.Quantity
	}
	return total
}
