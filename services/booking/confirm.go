package booking

import (
	"context"
	"errors"

	bookingRepo "trimly/database/repository/booking"
	"trimly/models"
	"trimly/utils"

	"go.uber.org/zap"
)

// resolveByToken finds the booking behind a confirmation token and checks the
// tenant slug scope. A token under the wrong slug reads as not found, never as
// a hint that the token exists elsewhere.
func (s *DefaultBookingService) resolveByToken(ctx context.Context, tenantSlug, token string) (*models.Booking, error) {
	tenant, err := s.Catalog.GetTenantBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, notFoundOr(err, "unknown tenant %s", tenantSlug)
	}
	b, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		return nil, notFoundBooking(err, token)
	}
	if b.TenantID != tenant.ID {
		return nil, utils.NewNotFound("booking not found")
	}
	return b, nil
}

// ConfirmByToken flips a PENDING booking to CONFIRMED. Creation and
// confirmation are separate requests, so another booking may have taken the
// interval in between; both conflict checks are re-run here against current
// data (excluding this booking) under the same locks the create path uses.
// This is the authoritative race-closing step.
func (s *DefaultBookingService) ConfirmByToken(ctx context.Context, tenantSlug, token string) (*models.BookingResponse, error) {
	b, err := s.resolveByToken(ctx, tenantSlug, token)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingPending {
		return nil, utils.NewConflict("booking %s is %s and can no longer be confirmed", b.DisplayID, b.Status)
	}

	// Same lock order as Create: user before professional.
	releaseUser, err := s.Locker.Acquire(ctx, "user:"+b.UserID)
	if err != nil {
		return nil, err
	}
	defer releaseUser()
	releasePro, err := s.Locker.Acquire(ctx, "professional:"+b.ProfessionalID)
	if err != nil {
		return nil, err
	}
	defer releasePro()

	iv := b.Interval()
	if err := s.checkProfessionalConflict(ctx, b.TenantID, b.ProfessionalID, iv, b.ID); err != nil {
		return nil, err
	}
	if err := s.checkUserConflict(ctx, b.TenantID, b.UserID, iv, b.ID); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateStatus(ctx, b.ID, models.BookingPending, models.BookingConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return nil, utils.NewConflict("booking %s is no longer pending", b.DisplayID)
		}
		return nil, err
	}

	utils.GetLogger().Info("booking confirmed", zap.String("bookingID", b.ID))

	b.Status = models.BookingConfirmed
	return s.buildResponse(ctx, b)
}

// CancelByToken cancels a PENDING or CONFIRMED booking through its email
// link. Cancellation only removes constraints, so no conflict re-check is
// needed; the status-guarded write still protects against double transitions.
func (s *DefaultBookingService) CancelByToken(ctx context.Context, tenantSlug, token string) (*models.BookingResponse, error) {
	b, err := s.resolveByToken(ctx, tenantSlug, token)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, b)
}

// CancelByID cancels a booking on behalf of staff.
func (s *DefaultBookingService) CancelByID(ctx context.Context, actor models.Actor, id string) (*models.BookingResponse, error) {
	if !actor.IsStaff() {
		return nil, utils.NewForbidden("only staff may cancel bookings by id")
	}
	b, err := s.Repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, notFoundBooking(err, id)
	}
	return s.cancel(ctx, b)
}

func (s *DefaultBookingService) cancel(ctx context.Context, b *models.Booking) (*models.BookingResponse, error) {
	if b.Status == models.BookingCancelled {
		return nil, utils.NewConflict("booking %s is already cancelled", b.DisplayID)
	}

	if err := s.Repo.UpdateStatus(ctx, b.ID, b.Status, models.BookingCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return nil, utils.NewConflict("booking %s changed status, try again", b.DisplayID)
		}
		return nil, err
	}

	utils.GetLogger().Info("booking cancelled", zap.String("bookingID", b.ID))

	b.Status = models.BookingCancelled
	return s.buildResponse(ctx, b)
}
