package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	bookingRepo "trimly/database/repository/booking"
	catalogRepo "trimly/database/repository/catalog"
	"trimly/models"
)

type fakeCatalog struct {
	tenants       map[string]models.Tenant
	branches      map[string]models.Branch
	services      map[string]models.Service
	professionals map[string]models.Professional
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		tenants:       map[string]models.Tenant{},
		branches:      map[string]models.Branch{},
		services:      map[string]models.Service{},
		professionals: map[string]models.Professional{},
	}
}

func (c *fakeCatalog) GetTenant(_ context.Context, id string) (*models.Tenant, error) {
	if t, ok := c.tenants[id]; ok {
		return &t, nil
	}
	return nil, catalogRepo.ErrNotFound
}

func (c *fakeCatalog) GetTenantBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	for _, t := range c.tenants {
		if t.Slug == slug {
			out := t
			return &out, nil
		}
	}
	return nil, catalogRepo.ErrNotFound
}

func (c *fakeCatalog) GetBranch(_ context.Context, id string) (*models.Branch, error) {
	if b, ok := c.branches[id]; ok {
		return &b, nil
	}
	return nil, catalogRepo.ErrNotFound
}

func (c *fakeCatalog) GetService(_ context.Context, id string) (*models.Service, error) {
	if s, ok := c.services[id]; ok {
		return &s, nil
	}
	return nil, catalogRepo.ErrNotFound
}

func (c *fakeCatalog) GetProfessional(_ context.Context, id string) (*models.Professional, error) {
	if p, ok := c.professionals[id]; ok {
		return &p, nil
	}
	return nil, catalogRepo.ErrNotFound
}

func (c *fakeCatalog) GetUser(_ context.Context, id string) (*models.User, error) {
	return nil, catalogRepo.ErrNotFound
}

func (c *fakeCatalog) ListBranchProfessionals(_ context.Context, branchID string) ([]models.Professional, error) {
	var out []models.Professional
	for _, p := range c.professionals {
		if p.Active && p.WorksAt(branchID) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (c *fakeCatalog) GetServicePrice(_ context.Context, serviceID, branchID string) (*models.ServicePrice, error) {
	return nil, catalogRepo.ErrNotFound
}

type fakeSchedules struct {
	byKey map[string]models.Schedule
}

func newFakeSchedules() *fakeSchedules {
	return &fakeSchedules{byKey: map[string]models.Schedule{}}
}

func schedKey(kind, id string, weekday int) string {
	return fmt.Sprintf("%s|%s|%d", kind, id, weekday)
}

func (r *fakeSchedules) set(s models.Schedule) {
	r.byKey[schedKey(s.ResourceKind, s.ResourceID, s.Weekday)] = s
}

func (r *fakeSchedules) GetForResource(_ context.Context, resourceKind, resourceID string, weekday int) (*models.Schedule, error) {
	if s, ok := r.byKey[schedKey(resourceKind, resourceID, weekday)]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeSchedules) Upsert(_ context.Context, s *models.Schedule) error {
	r.set(*s)
	return nil
}

// fakeBookings serves ListActive from a fixed slice; the availability
// calculator never calls the write side.
type fakeBookings struct {
	bookings []models.Booking
}

func (r *fakeBookings) Create(context.Context, *models.Booking) error { return nil }

func (r *fakeBookings) GetByID(context.Context, string, string) (*models.Booking, error) {
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookings) GetByToken(context.Context, string) (*models.Booking, error) {
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookings) ListActive(_ context.Context, f bookingRepo.ActiveFilter) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if !b.IsActive() {
			continue
		}
		if f.TenantID != "" && b.TenantID != f.TenantID {
			continue
		}
		if len(f.ProfessionalIDs) > 0 && !containsStr(f.ProfessionalIDs, b.ProfessionalID) {
			continue
		}
		if !f.From.IsZero() && b.ScheduledAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !b.ScheduledAt.Before(f.To) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookings) List(context.Context, bookingRepo.ListFilter, int, int) ([]models.Booking, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookings) UpdateSchedule(context.Context, string, time.Time, string) error {
	return nil
}

func (r *fakeBookings) UpdateStatus(_ context.Context, id string, _, _ models.BookingStatus) error {
	return bookingRepo.ErrNotFound
}

func containsStr(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
