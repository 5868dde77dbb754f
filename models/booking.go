package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a persisted appointment. The occupied interval is
// [ScheduledAt, ScheduledAt + DurationMinutes); DurationMinutes and TotalPrice
// are snapshots taken at creation time and never change afterwards.
type Booking struct {
	ID                string        `bson:"id" json:"id"`
	DisplayID         string        `bson:"display_id" json:"displayId"`
	TenantID          string        `bson:"tenant_id" json:"tenantId"`
	UserID            string        `bson:"user_id" json:"userId"`
	BranchID          string        `bson:"branch_id" json:"branchId"`
	ServiceID         string        `bson:"service_id" json:"serviceId"`
	ProfessionalID    string        `bson:"professional_id" json:"professionalId"`
	ScheduledAt       time.Time     `bson:"scheduled_at" json:"scheduledAt"`
	DurationMinutes   int           `bson:"duration_minutes" json:"durationMinutes"`
	Status            BookingStatus `bson:"status" json:"status"`
	ConfirmationToken string        `bson:"confirmation_token" json:"-"`
	TotalPrice        float64       `bson:"total_price" json:"totalPrice"`
	Currency          string        `bson:"currency" json:"currency"`
	CreatedAt         time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Interval returns the half-open interval the booking occupies.
func (b *Booking) Interval() Interval {
	return NewInterval(b.ScheduledAt, time.Duration(b.DurationMinutes)*time.Minute)
}

// IsActive reports whether the booking still occupies its interval for
// conflict purposes. Cancelled bookings free their slot.
func (b *Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
