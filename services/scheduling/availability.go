package scheduling

import (
	"context"
	"errors"
	"time"

	bookingRepo "trimly/database/repository/booking"
	catalogRepo "trimly/database/repository/catalog"
	scheduleRepo "trimly/database/repository/schedule"
	"trimly/models"
	bookingsvc "trimly/services/booking"
	"trimly/utils"

	"go.uber.org/zap"
)

// SlotStepMinutes is the fixed spacing of candidate slot start times.
const SlotStepMinutes = 30

// DefaultAvailabilityService is the production availability calculator.
type DefaultAvailabilityService struct {
	Catalog   catalogRepo.CatalogRepository
	Schedules scheduleRepo.ScheduleRepository
	Bookings  bookingRepo.BookingRepository
}

// candidate is one professional considered for a day, with their anchored
// working window, break and existing bookings.
type candidate struct {
	pro      *models.Professional
	work     models.Interval
	workOK   bool
	brk      models.Interval
	brkOK    bool
	bookings []models.Booking
}

// ComputeDay enumerates the 30-minute slot grid of a branch day and marks
// each slot available when at least one candidate professional can take it.
// All times live in a single reference timezone (UTC), the same one bookings
// are persisted in. A closed or unscheduled day yields an empty slot list.
func (s *DefaultAvailabilityService) ComputeDay(ctx context.Context, actor models.Actor, q DayQuery) (*models.AvailabilityResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", q.Date, time.UTC)
	if err != nil {
		return nil, utils.NewValidation("invalid date %q, expected YYYY-MM-DD", q.Date)
	}

	branch, service, err := s.loadBranchService(ctx, actor, q.BranchID, q.ServiceID)
	if err != nil {
		return nil, err
	}

	resp := &models.AvailabilityResponse{
		Date:   q.Date,
		Branch: models.BranchSummary{ID: branch.ID, Name: branch.Name},
		Service: models.ServiceSummary{
			ID:              service.ID,
			Name:            service.Name,
			DurationMinutes: service.DurationMinutes,
		},
		Slots: []models.Slot{},
	}

	weekday := int(day.Weekday())
	branchSched, err := s.Schedules.GetForResource(ctx, models.ResourceBranch, branch.ID, weekday)
	if err != nil {
		return nil, err
	}
	window, open := branchSched.WorkingInterval(day)
	if !open {
		return resp, nil
	}

	pinned := q.ProfessionalID != ""
	candidates, err := s.loadCandidates(ctx, branch, q.ProfessionalID, day, weekday)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Debug("computing availability",
		zap.String("branchID", branch.ID),
		zap.String("date", q.Date),
		zap.Int("candidates", len(candidates)))

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	duration := service.Duration()

	for t := window.Start; !t.Add(duration).After(window.End); t = t.Add(SlotStepMinutes * time.Minute) {
		iv := models.NewInterval(t, duration)
		slot := models.Slot{Time: models.FormatClock(int(t.Sub(midnight) / time.Minute))}
		for i := range candidates {
			if !candidates[i].availableAt(iv) {
				continue
			}
			slot.Available = true
			if !pinned {
				slot.ProfessionalID = candidates[i].pro.ID
			}
			break
		}
		resp.Slots = append(resp.Slots, slot)
	}

	return resp, nil
}

func (s *DefaultAvailabilityService) loadBranchService(ctx context.Context, actor models.Actor, branchID, serviceID string) (*models.Branch, *models.Service, error) {
	branch, err := s.Catalog.GetBranch(ctx, branchID)
	if err != nil {
		return nil, nil, notFoundOr(err, "branch %s not found", branchID)
	}
	if branch.Deleted || branch.TenantID != actor.TenantID {
		return nil, nil, utils.NewNotFound("branch %s not found", branchID)
	}

	service, err := s.Catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, nil, notFoundOr(err, "service %s not found", serviceID)
	}
	if !service.Active {
		return nil, nil, utils.NewNotFound("service %s not found", serviceID)
	}
	if service.TenantID != branch.TenantID {
		return nil, nil, utils.NewValidation("service %s and branch %s belong to different tenants", serviceID, branchID)
	}
	return branch, service, nil
}

// loadCandidates resolves the professional set, their schedules for the
// weekday and their active bookings around the day. Bookings at other
// branches still occupy a professional, so the booking load is filtered by
// professional only, not by branch.
func (s *DefaultAvailabilityService) loadCandidates(ctx context.Context, branch *models.Branch, professionalID string, day time.Time, weekday int) ([]candidate, error) {
	var pros []models.Professional
	if professionalID != "" {
		pro, err := s.Catalog.GetProfessional(ctx, professionalID)
		if err != nil {
			return nil, notFoundOr(err, "professional %s not found", professionalID)
		}
		if pro.TenantID != branch.TenantID || !pro.Active || !pro.WorksAt(branch.ID) {
			return nil, utils.NewNotFound("professional %s is not available at branch %s", professionalID, branch.ID)
		}
		pros = []models.Professional{*pro}
	} else {
		var err error
		pros, err = s.Catalog.ListBranchProfessionals(ctx, branch.ID)
		if err != nil {
			return nil, err
		}
	}

	candidates := make([]candidate, 0, len(pros))
	ids := make([]string, 0, len(pros))
	for i := range pros {
		pro := &pros[i]
		sched, err := s.Schedules.GetForResource(ctx, models.ResourceProfessional, pro.ID, weekday)
		if err != nil {
			return nil, err
		}
		c := candidate{pro: pro}
		c.work, c.workOK = sched.WorkingInterval(day)
		c.brk, c.brkOK = sched.BreakInterval(day)
		candidates = append(candidates, c)
		ids = append(ids, pro.ID)
	}

	if len(ids) == 0 {
		return candidates, nil
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	all, err := s.Bookings.ListActive(ctx, bookingRepo.ActiveFilter{
		TenantID:        branch.TenantID,
		ProfessionalIDs: ids,
		From:            midnight.Add(-24 * time.Hour),
		To:              midnight.Add(24 * time.Hour),
	})
	if err != nil {
		return nil, err
	}

	byPro := make(map[string][]models.Booking, len(ids))
	for _, b := range all {
		byPro[b.ProfessionalID] = append(byPro[b.ProfessionalID], b)
	}
	for i := range candidates {
		candidates[i].bookings = byPro[candidates[i].pro.ID]
	}
	return candidates, nil
}

// availableAt applies the per-professional slot rules: working that day, slot
// fully inside the working window, clear of the break, clear of existing
// bookings.
func (c *candidate) availableAt(iv models.Interval) bool {
	if !c.workOK || !c.work.Contains(iv) {
		return false
	}
	if c.brkOK && c.brk.Overlaps(iv) {
		return false
	}
	return !bookingsvc.HasConflict(c.bookings, iv, "")
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return utils.NewNotFound(format, args...)
	}
	return err
}
