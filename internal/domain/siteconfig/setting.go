// Package siteconfig holds editable site content and platform settings as
// key/value pairs grouped by area.
package siteconfig

import (
	"strings"

	"github.com/podplatform/backend/internal/domain/shared"
)

const (
	DefaultGroup = "general"
	DefaultType  = "text"
)

// Setting types understood by the admin editor
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypeBool     = "boolean"
	TypeSecret   = "secret"
)

var (
	ErrKeyRequired     = shared.NewDomainError("INVALID_INPUT", "Setting key is required")
	ErrSettingNotFound = shared.NewDomainError("NOT_FOUND", "Setting not found")
)

// Setting is one configurable value
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Group string `json:"group"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Normalize trims the key and fills the default group and type
func (s Setting) Normalize() (Setting, error) {
	s.Key = strings.TrimSpace(s.Key)
	if s.Key == "" {
		return Setting{}, ErrKeyRequired
	}
	if strings.TrimSpace(s.Group) == "" {
		s.Group = DefaultGroup
	}
	if strings.TrimSpace(s.Type) == "" {
		s.Type = DefaultType
	}
	return s, nil
}

// IsSecret reports whether the value must never be shown in full
func (s Setting) IsSecret() bool {
	return s.Type == TypeSecret
}

// Defaults returns the home page content seeded into an empty store
func Defaults() []Setting {
	return []Setting{
		{
			Key:   "home.hero.title",
			Value: "Transform Your Art into Global Brands",
			Group: "home.hero",
			Type:  TypeText,
			Label: "Hero Headline",
		},
		{
			Key:   "home.hero.subtitle",
			Value: "Your trusted partner in wall art – delivering leading quality and seamless print on demand solutions for your business.",
			Group: "home.hero",
			Type:  TypeTextarea,
			Label: "Hero Subtitle",
		},
		{
			Key:   "home.cta.primary",
			Value: "Get started",
			Group: "home.hero",
			Type:  TypeText,
			Label: "Primary Button Text",
		},
		{
			Key:   "home.cta.secondary",
			Value: "See products",
			Group: "home.hero",
			Type:  TypeText,
			Label: "Secondary Button Text",
		},
	}
}
