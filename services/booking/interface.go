package booking

import (
	"context"
	"time"

	"trimly/models"
)

// BookingService owns the booking lifecycle: creation, rescheduling,
// reassignment, confirmation and cancellation.
type BookingService interface {
	Create(ctx context.Context, actor models.Actor, req CreateRequest) (*models.BookingResponse, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.BookingResponse, error)
	List(ctx context.Context, actor models.Actor, q ListQuery) (*models.BookingList, error)
	Update(ctx context.Context, actor models.Actor, id string, req UpdateRequest) (*models.BookingResponse, error)
	CancelByID(ctx context.Context, actor models.Actor, id string) (*models.BookingResponse, error)
	ConfirmByToken(ctx context.Context, tenantSlug, token string) (*models.BookingResponse, error)
	CancelByToken(ctx context.Context, tenantSlug, token string) (*models.BookingResponse, error)
}

// CreateRequest is the input for creating a booking. ProfessionalID may be
// empty, in which case the first free professional of the branch is assigned.
// UserID is taken from the actor for client callers; staff book on behalf of a
// user and must supply it.
type CreateRequest struct {
	UserID         string    `json:"userId"`
	BranchID       string    `json:"branchId" binding:"required"`
	ServiceID      string    `json:"serviceId" binding:"required"`
	ProfessionalID string    `json:"professionalId"`
	ScheduledAt    time.Time `json:"scheduledAt" binding:"required"`
}

// UpdateRequest reschedules and/or reassigns a booking. Status is never
// settable through update; it is rejected per role.
type UpdateRequest struct {
	ScheduledAt    *time.Time `json:"scheduledAt"`
	ProfessionalID *string    `json:"professionalId"`
	Status         *string    `json:"status"`
}

// ListQuery filters and paginates booking listings.
type ListQuery struct {
	Page           int
	Limit          int
	UserID         string
	BranchID       string
	ProfessionalID string
	Status         string
}

// ResourceLocker serializes check-then-write sections on a shared resource
// (a professional's calendar, a user's own bookings).
type ResourceLocker interface {
	// Acquire blocks until all keys are held or ctx is done; the returned
	// function releases them.
	Acquire(ctx context.Context, keys ...string) (func(), error)
}

// ExpiryScheduler enqueues the deferred auto-cancel of a booking that is
// never confirmed.
type ExpiryScheduler interface {
	ScheduleExpiry(bookingID string, in time.Duration) error
}
