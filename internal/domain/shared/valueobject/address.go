package valueobject

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrRecipientNameRequired = errors.New("recipient name is required")
	ErrStreetRequired        = errors.New("street is required")
	ErrCityRequired          = errors.New("city is required")
	ErrZipCodeRequired       = errors.New("zip code is required")
	ErrCountryRequired       = errors.New("country is required")
	ErrInvalidEmail          = errors.New("invalid email address")
)

// Recipient is the person and address an order ships to
type Recipient struct {
	Name    string
	Email   string
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// NewRecipient trims and validates a shipping recipient.
// Email and State are optional.
func NewRecipient(name, email, street, city, state, zipCode, country string) (Recipient, error) {
	r := Recipient{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Street:  strings.TrimSpace(street),
		City:    strings.TrimSpace(city),
		State:   strings.TrimSpace(state),
		ZipCode: strings.TrimSpace(zipCode),
		Country: strings.TrimSpace(country),
	}
	switch {
	case r.Name == "":
		return Recipient{}, ErrRecipientNameRequired
	case r.Street == "":
		return Recipient{}, ErrStreetRequired
	case r.City == "":
		return Recipient{}, ErrCityRequired
	case r.ZipCode == "":
		return Recipient{}, ErrZipCodeRequired
	case r.Country == "":
		return Recipient{}, ErrCountryRequired
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return Recipient{}, ErrInvalidEmail
		}
	}
	return r, nil
}

// SingleLine renders the address on one line for logs and labels
func (r Recipient) SingleLine() string {
	parts := []string{r.Street, r.City}
	if r.State != "" {
		parts = append(parts, r.State)
	}
	parts = append(parts, r.ZipCode, r.Country)
	return strings.Join(parts, ", ")
}
