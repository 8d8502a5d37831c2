package integration

import (
	"context"
	"strings"
)

// PlatformOrderItem is one line of a marketplace order
type PlatformOrderItem struct {
	SKU      string
	Title    string
	Quantity int
	Variant  string
	ImageURL string
}

// PlatformOrder is an order as a marketplace reports it
type PlatformOrder struct {
	// ExternalID is the marketplace's order number, unique across platforms
	ExternalID    string
	CustomerName  string
	CustomerEmail string
	AddressLine1  string
	City          string
	State         string
	ZipCode       string
	Country       string
	Items         []PlatformOrderItem
}

// Validate checks the fields an import depends on
func (o PlatformOrder) Validate() error {
	if strings.TrimSpace(o.ExternalID) == "" {
		return ErrInvalidPlatformOrder
	}
	if len(o.Items) == 0 {
		return ErrInvalidPlatformOrder
	}
	for _, it := range o.Items {
		if it.Quantity < 1 {
			return ErrInvalidPlatformOrder
		}
	}
	return nil
}

// OrderSource fetches open orders from one marketplace.
// Implementations live in the infrastructure layer.
type OrderSource interface {
	// Platform returns the marketplace this source reads from
	Platform() Platform

	// FetchOrders returns the store's open orders
	FetchOrders(ctx context.Context, store *Store) ([]PlatformOrder, error)
}
