package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "trimly/database/repository/booking"
	catalogRepo "trimly/database/repository/catalog"
	"trimly/models"
	"trimly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production booking lifecycle manager.
type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Catalog catalogRepo.CatalogRepository
	Locker  ResourceLocker
	Expiry  ExpiryScheduler

	// PendingTTL is how long a booking may sit in PENDING before the expiry
	// worker cancels it.
	PendingTTL time.Duration

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// conflictWindow bounds the bookings loaded for an overlap check. No service
// lasts 24 hours, so anything scheduled outside this window cannot overlap iv.
func conflictWindow(iv models.Interval) (time.Time, time.Time) {
	return iv.Start.Add(-24 * time.Hour), iv.End
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return utils.NewNotFound(format, args...)
	}
	return err
}

func displayID(id string) string {
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

// Create validates the request, resolves or verifies the professional, runs
// both conflict checks under resource locks and persists the booking as
// PENDING with a fresh confirmation token.
func (s *DefaultBookingService) Create(ctx context.Context, actor models.Actor, req CreateRequest) (*models.BookingResponse, error) {
	logger := utils.GetLogger()
	now := s.now()

	userID := req.UserID
	if !actor.IsStaff() {
		userID = actor.UserID
	}
	if userID == "" {
		return nil, utils.NewValidation("userId is required")
	}

	scheduledAt := req.ScheduledAt.UTC().Truncate(time.Minute)
	if !scheduledAt.After(now) {
		return nil, utils.NewValidation("scheduledAt %s must be in the future", scheduledAt.Format(time.RFC3339))
	}

	branch, err := s.Catalog.GetBranch(ctx, req.BranchID)
	if err != nil {
		return nil, notFoundOr(err, "branch %s not found", req.BranchID)
	}
	if branch.Deleted || branch.TenantID != actor.TenantID {
		return nil, utils.NewNotFound("branch %s not found", req.BranchID)
	}

	service, err := s.Catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, notFoundOr(err, "service %s not found", req.ServiceID)
	}
	if !service.Active {
		return nil, utils.NewNotFound("service %s not found", req.ServiceID)
	}
	if service.TenantID != branch.TenantID {
		return nil, utils.NewValidation("service %s and branch %s belong to different tenants", req.ServiceID, req.BranchID)
	}

	user, err := s.Catalog.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user %s not found", userID)
	}
	if user.TenantID != branch.TenantID {
		return nil, utils.NewValidation("user %s and branch %s belong to different tenants", userID, req.BranchID)
	}

	var pinned *models.Professional
	if req.ProfessionalID != "" {
		pinned, err = s.Catalog.GetProfessional(ctx, req.ProfessionalID)
		if err != nil {
			return nil, notFoundOr(err, "professional %s not found", req.ProfessionalID)
		}
		if pinned.TenantID != branch.TenantID {
			return nil, utils.NewValidation("professional %s and branch %s belong to different tenants", req.ProfessionalID, req.BranchID)
		}
		if !pinned.Active || !pinned.WorksAt(branch.ID) {
			return nil, utils.NewNotFound("professional %s is not available at branch %s", req.ProfessionalID, req.BranchID)
		}
	}

	price, err := s.Catalog.GetServicePrice(ctx, service.ID, branch.ID)
	if err != nil {
		return nil, notFoundOr(err, "no price configured for service %s at branch %s", service.ID, branch.ID)
	}

	iv := models.NewInterval(scheduledAt, service.Duration())

	// Lock order across the engine is user before professional; Confirm takes
	// them the same way.
	releaseUser, err := s.Locker.Acquire(ctx, "user:"+user.ID)
	if err != nil {
		return nil, err
	}
	defer releaseUser()

	if err := s.checkUserConflict(ctx, branch.TenantID, user.ID, iv, ""); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	booking := &models.Booking{
		ID:                id,
		DisplayID:         displayID(id),
		TenantID:          branch.TenantID,
		UserID:            user.ID,
		BranchID:          branch.ID,
		ServiceID:         service.ID,
		ScheduledAt:       scheduledAt,
		DurationMinutes:   service.DurationMinutes,
		Status:            models.BookingPending,
		ConfirmationToken: uuid.New().String(),
		TotalPrice:        price.Amount,
		Currency:          price.Currency,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if pinned != nil {
		releasePro, err := s.Locker.Acquire(ctx, "professional:"+pinned.ID)
		if err != nil {
			return nil, err
		}
		defer releasePro()
		if err := s.checkProfessionalConflict(ctx, branch.TenantID, pinned.ID, iv, ""); err != nil {
			return nil, err
		}
		booking.ProfessionalID = pinned.ID
		if err := s.Repo.Create(ctx, booking); err != nil {
			return nil, err
		}
	} else {
		assignedID, releasePro, err := s.lockFirstFreeProfessional(ctx, branch.TenantID, branch.ID, iv)
		if err != nil {
			return nil, err
		}
		defer releasePro()
		booking.ProfessionalID = assignedID
		if err := s.Repo.Create(ctx, booking); err != nil {
			return nil, err
		}
	}

	if s.Expiry != nil {
		if err := s.Expiry.ScheduleExpiry(booking.ID, s.pendingTTL()); err != nil {
			logger.Warn("failed to schedule booking expiry",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("professionalID", booking.ProfessionalID),
		zap.Time("scheduledAt", booking.ScheduledAt))

	return s.buildResponse(ctx, booking)
}

func (s *DefaultBookingService) pendingTTL() time.Duration {
	if s.PendingTTL > 0 {
		return s.PendingTTL
	}
	return 30 * time.Minute
}

// checkUserConflict enforces that a user never holds two active bookings with
// overlapping intervals, regardless of professional or branch.
func (s *DefaultBookingService) checkUserConflict(ctx context.Context, tenantID, userID string, iv models.Interval, excludeID string) error {
	from, to := conflictWindow(iv)
	existing, err := s.Repo.ListActive(ctx, bookingRepo.ActiveFilter{
		TenantID: tenantID,
		UserID:   userID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return err
	}
	if HasConflict(existing, iv, excludeID) {
		return utils.NewConflict("you already have a booking overlapping %s", iv.Start.Format("2006-01-02 15:04"))
	}
	return nil
}

// checkProfessionalConflict enforces the core invariant: no two active
// bookings of one professional may overlap.
func (s *DefaultBookingService) checkProfessionalConflict(ctx context.Context, tenantID, professionalID string, iv models.Interval, excludeID string) error {
	from, to := conflictWindow(iv)
	existing, err := s.Repo.ListActive(ctx, bookingRepo.ActiveFilter{
		TenantID:        tenantID,
		ProfessionalIDs: []string{professionalID},
		From:            from,
		To:              to,
	})
	if err != nil {
		return err
	}
	if HasConflict(existing, iv, excludeID) {
		return utils.NewConflict("professional is already booked at %s", iv.Start.Format("2006-01-02 15:04"))
	}
	return nil
}
