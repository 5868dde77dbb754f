package models

import "time"

// Tenant is an isolated business account. Every other entity belongs to
// exactly one tenant, and the slug scopes the anonymous confirm/cancel links.
type Tenant struct {
	ID        string    `bson:"id" json:"id"`
	Slug      string    `bson:"slug" json:"slug"`
	Name      string    `bson:"name" json:"name"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
