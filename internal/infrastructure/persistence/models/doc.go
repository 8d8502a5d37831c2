// Package models contains the GORM persistence models that map to database
// tables. They are kept apart from the domain entities so the domain layer
// stays free of ORM tags.
//
// Each model converts with ToDomain and a FromDomain constructor:
//   - identity.go: users
//   - order.go: orders with their line items and recipient
//   - payment.go: payment attempts
//   - integration.go: marketplace stores
//   - siteconfig.go: key/value site settings
package models
