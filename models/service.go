package models

import "time"

// Service is a catalog entry (haircut, coloring, ...). Duration drives the
// occupied interval of every booking of this service.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	TenantID        string    `bson:"tenant_id" json:"tenantId"`
	Name            string    `bson:"name" json:"name"`
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}

// Duration returns the service length as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// ServicePrice is one row of the per-branch pricing table. Price resolution is
// a strict lookup: a missing row is an error, never a zero-price fallback.
type ServicePrice struct {
	ServiceID string  `bson:"service_id" json:"serviceId"`
	BranchID  string  `bson:"branch_id" json:"branchId"`
	Amount    float64 `bson:"amount" json:"amount"`
	Currency  string  `bson:"currency" json:"currency"`
}
