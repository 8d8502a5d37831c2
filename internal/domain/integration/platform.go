package integration

import (
	"strings"

	"github.com/podplatform/backend/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrStoreNotFound        = shared.NewDomainError("NOT_FOUND", "Store not found")
	ErrUnknownPlatform      = shared.NewDomainError("INVALID_INPUT", "Unknown platform")
	ErrShopNameRequired     = shared.NewDomainError("INVALID_INPUT", "Shop name is required")
	ErrStoreDisconnected    = shared.NewDomainError("INVALID_STATE", "Store is not connected")
	ErrPlatformNotSupported = shared.NewDomainError("INVALID_STATE", "Platform not supported for sync")
	ErrSyncInProgress       = shared.NewDomainError("CONFLICT", "A sync for this store is already running")
	ErrPlatformUnavailable  = shared.NewDomainError("PLATFORM_UNAVAILABLE", "Marketplace is temporarily unavailable")
	ErrInvalidPlatformOrder = shared.NewDomainError("INVALID_INPUT", "Invalid marketplace order")
)

// ---------------------------------------------------------------------------
// Platform
// ---------------------------------------------------------------------------

// Platform identifies a marketplace
type Platform string

const (
	PlatformEtsy    Platform = "etsy"
	PlatformShopify Platform = "shopify"
	PlatformWoo     Platform = "woo"
)

// ParsePlatform normalises a platform name from a URL or request body
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", ErrUnknownPlatform
	}
	return p, nil
}

// IsValid returns true if the platform is known
func (p Platform) IsValid() bool {
	switch p {
	case PlatformEtsy, PlatformShopify, PlatformWoo:
		return true
	default:
		return false
	}
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns a human-readable name for the platform
func (p Platform) DisplayName() string {
	switch p {
	case PlatformWoo:
		return "WooCommerce"
	default:
		return cases.Title(language.English).String(string(p))
	}
}
