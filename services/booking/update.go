package booking

import (
	"context"
	"time"

	"trimly/models"
	"trimly/utils"

	"go.uber.org/zap"
)

// Update reschedules and/or reassigns a booking. Validation order: the new
// professional's existence and branch membership are checked first, then the
// conflict check runs at the (possibly new) time against the (possibly new)
// professional, excluding the booking itself.
func (s *DefaultBookingService) Update(ctx context.Context, actor models.Actor, id string, req UpdateRequest) (*models.BookingResponse, error) {
	b, err := s.Repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, notFoundBooking(err, id)
	}

	if !actor.IsStaff() {
		if b.UserID != actor.UserID {
			return nil, utils.NewForbidden("you may only modify your own bookings")
		}
		if req.Status != nil {
			return nil, utils.NewForbidden("booking status may only be changed by staff")
		}
	}
	if req.Status != nil {
		return nil, utils.NewValidation("status transitions go through the confirm and cancel endpoints")
	}
	if req.ScheduledAt == nil && req.ProfessionalID == nil {
		return nil, utils.NewValidation("nothing to update")
	}
	if b.Status == models.BookingCancelled {
		return nil, utils.NewConflict("booking %s is cancelled and can no longer be modified", b.DisplayID)
	}

	newProfessionalID := b.ProfessionalID
	if req.ProfessionalID != nil {
		pro, err := s.Catalog.GetProfessional(ctx, *req.ProfessionalID)
		if err != nil {
			return nil, notFoundOr(err, "professional %s not found", *req.ProfessionalID)
		}
		if pro.TenantID != b.TenantID || !pro.Active || !pro.WorksAt(b.BranchID) {
			return nil, utils.NewNotFound("professional %s is not available at branch %s", *req.ProfessionalID, b.BranchID)
		}
		newProfessionalID = pro.ID
	}

	newScheduledAt := b.ScheduledAt
	if req.ScheduledAt != nil {
		newScheduledAt = req.ScheduledAt.UTC().Truncate(time.Minute)
		if !newScheduledAt.After(s.now()) {
			return nil, utils.NewValidation("scheduledAt %s must be in the future", newScheduledAt.Format(time.RFC3339))
		}
	}

	iv := models.NewInterval(newScheduledAt, time.Duration(b.DurationMinutes)*time.Minute)

	// Same lock order as Create: user before professional.
	releaseUser, err := s.Locker.Acquire(ctx, "user:"+b.UserID)
	if err != nil {
		return nil, err
	}
	defer releaseUser()
	releasePro, err := s.Locker.Acquire(ctx, "professional:"+newProfessionalID)
	if err != nil {
		return nil, err
	}
	defer releasePro()

	if err := s.checkUserConflict(ctx, b.TenantID, b.UserID, iv, b.ID); err != nil {
		return nil, err
	}
	if err := s.checkProfessionalConflict(ctx, b.TenantID, newProfessionalID, iv, b.ID); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateSchedule(ctx, b.ID, newScheduledAt, newProfessionalID); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking updated",
		zap.String("bookingID", b.ID),
		zap.String("professionalID", newProfessionalID),
		zap.Time("scheduledAt", newScheduledAt))

	b.ScheduledAt = newScheduledAt
	b.ProfessionalID = newProfessionalID
	return s.buildResponse(ctx, b)
}
