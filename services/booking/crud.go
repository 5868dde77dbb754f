package booking

import (
	"context"
	"errors"

	bookingRepo "trimly/database/repository/booking"
	catalogRepo "trimly/database/repository/catalog"
	"trimly/models"
	"trimly/utils"
)

func notFoundBooking(err error, ref string) error {
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return utils.NewNotFound("booking %s not found", ref)
	}
	return err
}

// Get returns a single booking. Clients may only read their own.
func (s *DefaultBookingService) Get(ctx context.Context, actor models.Actor, id string) (*models.BookingResponse, error) {
	b, err := s.Repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, notFoundBooking(err, id)
	}
	if !actor.IsStaff() && b.UserID != actor.UserID {
		return nil, utils.NewForbidden("you may only view your own bookings")
	}
	return s.buildResponse(ctx, b)
}

// List returns one page of bookings. Client actors are always restricted to
// their own bookings regardless of the requested filter.
func (s *DefaultBookingService) List(ctx context.Context, actor models.Actor, q ListQuery) (*models.BookingList, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var status models.BookingStatus
	if q.Status != "" {
		switch models.BookingStatus(q.Status) {
		case models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
			status = models.BookingStatus(q.Status)
		default:
			return nil, utils.NewValidation("unknown status %q", q.Status)
		}
	}

	filter := bookingRepo.ListFilter{
		TenantID:       actor.TenantID,
		UserID:         q.UserID,
		BranchID:       q.BranchID,
		ProfessionalID: q.ProfessionalID,
		Status:         status,
	}
	if !actor.IsStaff() {
		filter.UserID = actor.UserID
	}

	bookings, total, err := s.Repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	list := &models.BookingList{
		Data:  make([]models.BookingResponse, 0, len(bookings)),
		Page:  page,
		Limit: limit,
		Total: total,
	}
	for i := range bookings {
		resp, err := s.buildResponse(ctx, &bookings[i])
		if err != nil {
			return nil, err
		}
		list.Data = append(list.Data, *resp)
	}
	return list, nil
}

// buildResponse resolves display names for the wire representation.
func (s *DefaultBookingService) buildResponse(ctx context.Context, b *models.Booking) (*models.BookingResponse, error) {
	resp := &models.BookingResponse{
		ID:              b.ID,
		DisplayID:       b.DisplayID,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Price:           models.FormatPrice(b.TotalPrice),
		Currency:        b.Currency,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	tenant, err := s.Catalog.GetTenant(ctx, b.TenantID)
	if err != nil && !errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, err
	}
	if tenant != nil {
		resp.Tenant = tenant.Slug
	}

	branch, err := s.Catalog.GetBranch(ctx, b.BranchID)
	if err != nil && !errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, err
	}
	if branch != nil {
		resp.Branch = branch.Name
	}

	service, err := s.Catalog.GetService(ctx, b.ServiceID)
	if err != nil && !errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, err
	}
	if service != nil {
		resp.Service = service.Name
	}

	if b.ProfessionalID != "" {
		pro, err := s.Catalog.GetProfessional(ctx, b.ProfessionalID)
		if err != nil && !errors.Is(err, catalogRepo.ErrNotFound) {
			return nil, err
		}
		if pro != nil {
			resp.Professional = &pro.Name
		}
	}

	return resp, nil
}
