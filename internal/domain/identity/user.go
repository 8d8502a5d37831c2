package identity

import (
	"net/mail"
	"strings"

	"github.com/podplatform/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// MinPasswordLength is the shortest password Register accepts
const MinPasswordLength = 8

var (
	ErrUserNotFound       = shared.NewDomainError("NOT_FOUND", "User not found")
	ErrEmailTaken         = shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	ErrInvalidEmail       = shared.NewDomainError("INVALID_INPUT", "Invalid email address")
	ErrPasswordTooShort   = shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	ErrUserInactive       = shared.NewDomainError("FORBIDDEN", "User account is not active")
)

// User is a merchant (or admin) account. New accounts start inactive until an
// admin activates them.
type User struct {
	shared.BaseAggregateRoot
	Email        string
	FullName     string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	Pricing      Pricing
}

// NewUser creates an inactive, non-admin user with a hashed password
func NewUser(email, fullName, password string) (*User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             normalized,
		FullName:          strings.TrimSpace(fullName),
		Pricing:           DefaultPricing(),
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))
	return user, nil
}

// NewAdmin creates an active admin account
func NewAdmin(email, fullName, password string) (*User, error) {
	user, err := NewUser(email, fullName, password)
	if err != nil {
		return nil, err
	}
	user.IsActive = true
	user.IsAdmin = true
	return user, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizeEmail lower-cases and validates an email for lookups
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

// SetPassword replaces the stored bcrypt hash
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin returns nil when the account may sign in
func (u *User) CanLogin() error {
	if !u.IsActive {
		return ErrUserInactive
	}
	return nil
}

// Activate marks the user active. Activating an active user is a no-op.
func (u *User) Activate() {
	if u.IsActive {
		return
	}
	u.IsActive = true
	u.IncrementVersion()
	u.AddDomainEvent(NewUserStatusChangedEvent(u))
}

// Deactivate marks the user inactive. Deactivating an inactive user is a no-op.
func (u *User) Deactivate() {
	if !u.IsActive {
		return
	}
	u.IsActive = false
	u.IncrementVersion()
	u.AddDomainEvent(NewUserStatusChangedEvent(u))
}

// UpdatePricing replaces the user's commercial terms
func (u *User) UpdatePricing(p Pricing) error {
	if err := p.Validate(); err != nil {
		return err
	}
	u.Pricing = p
	u.IncrementVersion()
	return nil
}
