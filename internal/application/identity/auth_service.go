package identity

import (
	"context"
	"fmt"

	"github.com/podplatform/backend/internal/domain/identity"
	"github.com/podplatform/backend/internal/domain/shared"
	"github.com/podplatform/backend/internal/infrastructure/auth"
	"github.com/podplatform/backend/internal/infrastructure/event"
	"go.uber.org/zap"
)

// AuthService handles sign-up, sign-in and sign-out
type AuthService struct {
	userRepo    identity.UserRepository
	jwtService  *auth.JWTService
	revocations auth.TokenRevocations
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service. revocations and
// events may be nil.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	revocations auth.TokenRevocations,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		revocations: revocations,
		events:      events,
		logger:      logger,
	}
}

// Register creates an inactive account that an admin has to activate
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	user, err := identity.NewUser(input.Email, input.FullName, input.Password)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, identity.ErrEmailTaken
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	event.PublishAndClear(ctx, s.events, user)

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))
	dto := toUserDTO(user)
	return &dto, nil
}

// Login checks the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email, err := identity.NormalizeEmail(input.Email)
	if err != nil {
		return nil, identity.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
			return nil, identity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, identity.ErrInvalidCredentials
	}
	if err := user.CanLogin(); err != nil {
		s.logger.Warn("Login attempt for inactive account", zap.String("user_id", user.ID.String()))
		return nil, err
	}

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()), zap.Bool("is_admin", user.IsAdmin))
	return &LoginResult{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        toUserDTO(user),
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.revocations == nil || input.TokenJTI == "" || input.ExpiresIn <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, input.TokenJTI, input.ExpiresIn); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// EnsureAdmin seeds an active admin account unless the email is already
// registered. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	admin, err := identity.NewAdmin(email, "Administrator", password)
	if err != nil {
		return false, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, admin.Email)
	if err != nil {
		return false, fmt.Errorf("check admin email: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		if shared.HasCode(err, identity.ErrEmailTaken.Code) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}
	admin.ClearDomainEvents()

	s.logger.Info("Bootstrap admin created", zap.String("email", admin.Email))
	return true, nil
}
