// Package ecommerce holds the marketplace order sources used by store sync.
// The Etsy and Shopify sources return fixed sample orders instead of calling
// the marketplaces.
package ecommerce

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/podplatform/backend/internal/domain/integration"
	"go.uber.org/zap"
)

// sampleOrder is a template for a generated marketplace order
type sampleOrder struct {
	name, email                       string
	street, city, state, zip, country string
	items                             []integration.PlatformOrderItem
}

var etsySamples = []sampleOrder{
	{
		name: "John Doe", email: "john.doe@example.com",
		street: "123 Maple Avenue", city: "Springfield", state: "IL", zip: "62704", country: "US",
		items: []integration.PlatformOrderItem{
			{SKU: "WL-204", Title: "Tropical Jungle Wallpaper", Quantity: 1, Variant: "100x100 cm"},
		},
	},
	{
		name: "Sarah Smith", email: "sarah.smith@example.uk",
		street: "42 High Street", city: "Camden", state: "London", zip: "NW1 8QL", country: "UK",
		items: []integration.PlatformOrderItem{
			{SKU: "CNV-001", Title: "Abstract Canvas Art", Quantity: 2, Variant: "50x70 cm"},
		},
	},
	{
		name: "Hans Muller", email: "hans.muller@example.de",
		street: "Berliner Str. 10", city: "Berlin", zip: "10115", country: "Germany",
		items: []integration.PlatformOrderItem{
			{SKU: "WL-999", Title: "Mountain View Wallpaper", Quantity: 1, Variant: "300x250 cm"},
		},
	},
}

var shopifySamples = []sampleOrder{
	{
		name: "Michael Brown", email: "mike.brown@shopify-test.com",
		street: "456 Commerce St", city: "Toronto", state: "ON", zip: "M5V 2H1", country: "Canada",
		items: []integration.PlatformOrderItem{
			{SKU: "WL-500", Title: "Geometric Pattern Wallpaper", Quantity: 3, Variant: "Roll (10m)"},
		},
	},
	{
		name: "Emma Watson", email: "emma.w@shopify-test.com",
		street: "789 Fifth Avenue", city: "New York", state: "NY", zip: "10022", country: "US",
		items: []integration.PlatformOrderItem{
			{SKU: "PST-003", Title: "Vintage Map Poster", Quantity: 1, Variant: "A1 Frame"},
		},
	},
}

// MockSource generates a marketplace's sample orders. Order numbers are
// drawn from a generator seeded by the store id, so syncing the same store
// again yields the same numbers and the import skips them.
type MockSource struct {
	platform integration.Platform
	prefix   string
	lo, hi   int
	samples  []sampleOrder
	logger   *zap.Logger
}

// NewMockEtsySource returns three orders numbered ETSY-100000..999999
func NewMockEtsySource(logger *zap.Logger) *MockSource {
	return &MockSource{
		platform: integration.PlatformEtsy,
		prefix:   "ETSY-",
		lo:       100000,
		hi:       999999,
		samples:  etsySamples,
		logger:   logger,
	}
}

// NewMockShopifySource returns two orders numbered SHPFY-1000..9999
func NewMockShopifySource(logger *zap.Logger) *MockSource {
	return &MockSource{
		platform: integration.PlatformShopify,
		prefix:   "SHPFY-",
		lo:       1000,
		hi:       9999,
		samples:  shopifySamples,
		logger:   logger,
	}
}

// Platform returns the marketplace the source imitates
func (s *MockSource) Platform() integration.Platform {
	return s.platform
}

// FetchOrders returns the sample orders with store-specific order numbers
func (s *MockSource) FetchOrders(ctx context.Context, store *integration.Store) ([]integration.PlatformOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := storeRand(store)
	seen := make(map[int]bool, len(s.samples))
	orders := make([]integration.PlatformOrder, 0, len(s.samples))
	for _, sample := range s.samples {
		n := s.lo + rng.IntN(s.hi-s.lo+1)
		for seen[n] {
			n = s.lo + rng.IntN(s.hi-s.lo+1)
		}
		seen[n] = true

		items := make([]integration.PlatformOrderItem, len(sample.items))
		copy(items, sample.items)
		orders = append(orders, integration.PlatformOrder{
			ExternalID:    fmt.Sprintf("%s%d", s.prefix, n),
			CustomerName:  sample.name,
			CustomerEmail: sample.email,
			AddressLine1:  sample.street,
			City:          sample.city,
			State:         sample.state,
			ZipCode:       sample.zip,
			Country:       sample.country,
			Items:         items,
		})
	}

	s.logger.Debug("Fetched mock marketplace orders",
		zap.String("platform", string(s.platform)),
		zap.String("store_id", store.ID.String()),
		zap.Int("count", len(orders)))
	return orders, nil
}

func storeRand(store *integration.Store) *rand.Rand {
	id := store.ID
	return rand.New(rand.NewPCG(binary.BigEndian.Uint64(id[:8]), binary.BigEndian.Uint64(id[8:])))
}

var _ integration.OrderSource = (*MockSource)(nil)
