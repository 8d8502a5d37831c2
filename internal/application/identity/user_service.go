package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/domain/identity"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/infrastructure/auth"
	"github.com/podplatform/backend/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UserService handles admin user management
type UserService struct {
	userRepo    identity.UserRepository
	revocations auth.TokenRevocations
	tokenTTL    TokenLifetime
	events      shared.EventPublisher
	logger      *zap.Logger
}

// TokenLifetime reports how long issued access tokens live, which bounds how
// long a user-wide revocation has to be remembered
type TokenLifetime interface {
	Expiration() time.Duration
}

// NewUserService creates a new user service. revocations and events may be nil.
func NewUserService(
	userRepo identity.UserRepository,
	revocations auth.TokenRevocations,
	tokenTTL TokenLifetime,
	events shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		revocations: revocations,
		tokenTTL:    tokenTTL,
		events:      events,
		logger:      logger,
	}
}

// List returns a page of users, oldest first
func (s *UserService) List(ctx context.Context, offset, limit int) (*shared.PageResult[UserDTO], error) {
	page := shared.NewPage(offset, limit)
	users, total, err := s.userRepo.FindAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	result := shared.NewPageResult(toUserDTOs(users), total, page)
	return &result, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// Activate enables a user account
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		dto := toUserDTO(user)
		return &dto, nil
	}

	user.Activate()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to activate user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("activate user: %w", err)
	}
	event.PublishAndClear(ctx, s.events, user)

	s.logger.Info("User activated", zap.String("user_id", id.String()), zap.String("email", user.Email))
	dto := toUserDTO(user)
	return &dto, nil
}

// Deactivate disables a user account and revokes the tokens it holds
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		dto := toUserDTO(user)
		return &dto, nil
	}

	user.Deactivate()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to deactivate user", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("deactivate user: %w", err)
	}
	event.PublishAndClear(ctx, s.events, user)

	if s.revocations != nil && s.tokenTTL != nil {
		if err := s.revocations.RevokeUser(ctx, id.String(), s.tokenTTL.Expiration()); err != nil {
			// The account is already inactive; outstanding tokens expire on their own
			s.logger.Warn("Failed to revoke tokens of deactivated user",
				zap.String("user_id", id.String()), zap.Error(err))
		}
	}

	s.logger.Info("User deactivated", zap.String("user_id", id.String()), zap.String("email", user.Email))
	dto := toUserDTO(user)
	return &dto, nil
}

// UpdatePricing changes the user's discount, custom material prices and
// on-account flag
func (s *UserService) UpdatePricing(ctx context.Context, id uuid.UUID, input UpdatePricingInput) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pricing := user.Pricing
	if input.DiscountPercentage != nil {
		pricing.DiscountPercentage = *input.DiscountPercentage
	}
	if input.CustomPricing != nil {
		pricing.CustomPrices = make(map[identity.Material]decimal.Decimal, len(input.CustomPricing))
		for k, v := range input.CustomPricing {
			pricing.CustomPrices[identity.Material(k)] = v
		}
	}
	if input.AllowOnAccountPayment != nil {
		pricing.AllowOnAccountPayment = *input.AllowOnAccountPayment
	}

	if err := user.UpdatePricing(pricing); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user pricing", zap.String("user_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("update pricing: %w", err)
	}

	s.logger.Info("User pricing updated",
		zap.String("user_id", id.String()),
		zap.String("discount_percentage", pricing.DiscountPercentage.String()),
		zap.Int("custom_prices", len(pricing.CustomPrices)))
	dto := toUserDTO(user)
	return &dto, nil
}
