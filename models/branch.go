package models

import "time"

// Branch is a physical location of a tenant. Deleted branches are kept as
// soft-deleted rows and never accept new bookings.
type Branch struct {
	ID        string    `bson:"id" json:"id"`
	TenantID  string    `bson:"tenant_id" json:"tenantId"`
	Name      string    `bson:"name" json:"name"`
	Deleted   bool      `bson:"deleted" json:"deleted"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
