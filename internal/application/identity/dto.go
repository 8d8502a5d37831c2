package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// UserDTO represents user data transfer object
type UserDTO struct {
	ID                    uuid.UUID                  `json:"id"`
	Email                 string                     `json:"email"`
	FullName              string                     `json:"full_name"`
	IsActive              bool                       `json:"is_active"`
	IsAdmin               bool                       `json:"is_admin"`
	DiscountPercentage    decimal.Decimal            `json:"discount_percentage"`
	CustomPricing         map[string]decimal.Decimal `json:"custom_pricing,omitempty"`
	AllowOnAccountPayment bool                       `json:"allow_on_account_payment"`
	CreatedAt             time.Time                  `json:"created_at"`
	UpdatedAt             time.Time                  `json:"updated_at"`
}

// UpdatePricingInput carries the admin-editable commercial terms.
// Nil fields keep their current value.
type UpdatePricingInput struct {
	DiscountPercentage    *decimal.Decimal
	CustomPricing         map[string]decimal.Decimal
	AllowOnAccountPayment *bool
}

// RegisterInput contains input for self sign-up
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the issued token and the signed-in user
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

// LogoutInput identifies the token being revoked
type LogoutInput struct {
	TokenJTI  string
	ExpiresIn time.Duration
}

func toUserDTO(u *identity.User) UserDTO {
	dto := UserDTO{
		ID:                    u.ID,
		Email:                 u.Email,
		FullName:              u.FullName,
		IsActive:              u.IsActive,
		IsAdmin:               u.IsAdmin,
		DiscountPercentage:    u.Pricing.DiscountPercentage,
		AllowOnAccountPayment: u.Pricing.AllowOnAccountPayment,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
	if len(u.Pricing.CustomPrices) > 0 {
		dto.CustomPricing = make(map[string]decimal.Decimal, len(u.Pricing.CustomPrices))
		for m, p := range u.Pricing.CustomPrices {
			dto.CustomPricing[string(m)] = p
		}
	}
	return dto
}

func toUserDTOs(users []*identity.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}
