package integration

import (
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/integration"
)

// StoreDTO represents store data transfer object. The access token is never
// exposed.
type StoreDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Platform    string    `json:"platform"`
	DisplayName string    `json:"platform_name"`
	ShopName    string    `json:"shop_name"`
	IsConnected bool      `json:"is_connected"`
	CreatedAt   time.Time `json:"created_at"`
}

// SyncResult is the outcome of pulling a store's orders
type SyncResult struct {
	Message        string `json:"message"`
	NewOrdersCount int    `json:"new_orders_count"`
	FetchedCount   int    `json:"fetched_count"`
	SkippedCount   int    `json:"skipped_count"`
}

func toStoreDTO(s *integration.Store) StoreDTO {
	return StoreDTO{
		ID:          s.ID,
		UserID:      s.UserID,
		Platform:    s.Platform.String(),
		DisplayName: s.Platform.DisplayName(),
		ShopName:    s.ShopName,
		IsConnected: s.IsConnected,
		CreatedAt:   s.CreatedAt,
	}
}
