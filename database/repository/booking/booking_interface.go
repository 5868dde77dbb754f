package bookingRepo

import (
	"context"
	"errors"
	"time"

	"trimly/models"
)

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

// ErrStatusChanged is returned by UpdateStatus when the booking is no longer
// in the expected source status. It is the storage-level guard that makes
// status transitions race-safe.
var ErrStatusChanged = errors.New("booking status changed")

// ActiveFilter selects PENDING/CONFIRMED bookings for conflict checks.
// Zero-valued fields are ignored.
type ActiveFilter struct {
	TenantID        string
	ProfessionalIDs []string
	UserID          string
	BranchID        string
	From            time.Time
	To              time.Time
}

// ListFilter selects bookings for paginated listing. Zero-valued fields are
// ignored.
type ListFilter struct {
	TenantID       string
	UserID         string
	BranchID       string
	ProfessionalID string
	Status         models.BookingStatus
}

// BookingRepository is the persistence contract of the booking engine.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, tenantID, id string) (*models.Booking, error)
	GetByToken(ctx context.Context, token string) (*models.Booking, error)

	// ListActive returns the PENDING/CONFIRMED bookings matching the filter,
	// ordered by scheduled time. This is the interval set the conflict
	// detector runs over.
	ListActive(ctx context.Context, filter ActiveFilter) ([]models.Booking, error)

	// List returns one page of bookings plus the total match count.
	List(ctx context.Context, filter ListFilter, page, limit int) ([]models.Booking, int64, error)

	// UpdateSchedule persists a reschedule and/or reassignment.
	UpdateSchedule(ctx context.Context, id string, scheduledAt time.Time, professionalID string) error

	// UpdateStatus flips status from exactly `from` to `to`; when the stored
	// status differs it returns ErrStatusChanged and writes nothing.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error
}
