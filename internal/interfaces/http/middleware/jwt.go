package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/infrastructure/auth"
	"github.com/podplatform/backend/internal/infrastructure/logger"
	"github.com/podplatform/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys set by Authenticate
const (
	ActorKey      = "actor"
	UserIDKey     = "user_id"
	UserIDHeader  = "X-User-ID"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
	jwtClaimsKey  = "jwt_claims"
)

// Actor is who a request acts as
type Actor struct {
	UserID  *uuid.UUID
	Email   string
	IsAdmin bool
	// Claims is set when the actor was authenticated by token
	Claims *auth.Claims
}

// AuthConfig configures Authenticate
type AuthConfig struct {
	// Enabled requires a bearer token. When false the caller is trusted:
	// the acting user comes from X-User-ID or DevUserID and has admin rights.
	Enabled     bool
	JWTService  *auth.JWTService
	Revocations auth.TokenRevocations
	DevUserID   string
	Logger      *zap.Logger
}

// Authenticate resolves the Actor for the request. With auth enabled a
// missing, invalid, expired or revoked token is a 401.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			actor, ok := devActor(c, cfg.DevUserID)
			if !ok {
				abort(c, dto.ErrCodeInvalidInput, "X-User-ID must be a UUID")
				return
			}
			setActor(c, actor)
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) || strings.TrimPrefix(header, BearerPrefix) == "" {
			abort(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			log.Warn("JWT authentication failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			if errors.Is(err, auth.ErrExpiredToken) {
				abort(c, dto.ErrCodeTokenExpired, "Token has expired")
			} else {
				abort(c, dto.ErrCodeTokenInvalid, "Invalid token")
			}
			return
		}

		if cfg.Revocations != nil && isRevoked(c, cfg.Revocations, claims, log) {
			abort(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abort(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}
		c.Set(jwtClaimsKey, claims)
		setActor(c, Actor{UserID: &userID, Email: claims.Email, IsAdmin: claims.IsAdmin, Claims: claims})
		c.Next()
	}
}

// isRevoked fails open on store errors so a Redis outage does not lock
// every user out
func isRevoked(c *gin.Context, revocations auth.TokenRevocations, claims *auth.Claims, log *zap.Logger) bool {
	ctx := c.Request.Context()
	if claims.ID != "" {
		revoked, err := revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Error("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
		} else if revoked {
			return true
		}
	}
	revoked, err := revocations.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		log.Error("Failed to check user revocation", zap.String("user_id", claims.UserID), zap.Error(err))
		return false
	}
	return revoked
}

func devActor(c *gin.Context, devUserID string) (Actor, bool) {
	raw := c.GetHeader(UserIDHeader)
	if raw == "" {
		raw = devUserID
	}
	actor := Actor{IsAdmin: true}
	if raw == "" {
		return actor, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Actor{}, false
	}
	actor.UserID = &id
	return actor, true
}

func setActor(c *gin.Context, actor Actor) {
	c.Set(ActorKey, actor)
	if actor.UserID == nil {
		return
	}
	c.Set(UserIDKey, actor.UserID.String())
	ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), actor.UserID.String())
	c.Request = c.Request.WithContext(ctx)
}

// GetActor returns the actor stored by Authenticate
func GetActor(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}

// GetJWTClaims returns the token claims, or nil when the request was not
// authenticated by token
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(jwtClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// RequireAdmin only lets admins through
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abort(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !actor.IsAdmin {
			abort(c, dto.ErrCodeForbidden, "Admin privileges required")
			return
		}
		c.Next()
	}
}

// RequireUser only lets requests with an acting user through
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || actor.UserID == nil {
			abort(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}
