package integration

import (
	"strings"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/shared"
)

// MockAccessToken is issued to every connected store until real OAuth
// handshakes exist
const MockAccessToken = "mock-token-123"

// Store is a merchant's connection to a marketplace shop. A user has at
// most one store per platform.
type Store struct {
	shared.BaseEntity
	// UserID is the merchant owning the store
	UserID uuid.UUID
	// Platform is the marketplace the shop lives on
	Platform Platform
	// ShopName is the shop's name on the marketplace
	ShopName string
	// AccessToken authorises calls to the marketplace API
	AccessToken string
	// IsConnected is false once the merchant disconnects the shop
	IsConnected bool
}

// NewStore creates a connected store
func NewStore(userID uuid.UUID, platform Platform, shopName string) (*Store, error) {
	if !platform.IsValid() {
		return nil, ErrUnknownPlatform
	}
	shopName = strings.TrimSpace(shopName)
	if shopName == "" {
		return nil, ErrShopNameRequired
	}
	return &Store{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		Platform:    platform,
		ShopName:    shopName,
		AccessToken: MockAccessToken,
		IsConnected: true,
	}, nil
}

// Reconnect refreshes the shop name and token of an existing connection
func (s *Store) Reconnect(shopName string) error {
	shopName = strings.TrimSpace(shopName)
	if shopName == "" {
		return ErrShopNameRequired
	}
	s.ShopName = shopName
	s.AccessToken = MockAccessToken
	s.IsConnected = true
	s.Touch()
	return nil
}

// Disconnect marks the store as no longer syncable
func (s *Store) Disconnect() {
	if !s.IsConnected {
		return
	}
	s.IsConnected = false
	s.Touch()
}

// CanSync returns nil when orders can be pulled from the store
func (s *Store) CanSync() error {
	if !s.IsConnected {
		return ErrStoreDisconnected
	}
	return nil
}
