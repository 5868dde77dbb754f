package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingRepo "trimly/database/repository/booking"
	catalogRepo "trimly/database/repository/catalog"
	"trimly/models"
)

// fakeCatalog is an in-memory CatalogRepository seeded per test.
type fakeCatalog struct {
	tenants       map[string]models.Tenant
	branches      map[string]models.Branch
	services      map[string]models.Service
	professionals map[string]models.Professional
	users         map[string]models.User
	prices        map[string]models.ServicePrice // serviceID + "|" + branchID
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		tenants:       map[string]models.Tenant{},
		branches:      map[string]models.Branch{},
		services:      map[string]models.Service{},
		professionals: map[string]models.Professional{},
		users:         map[string]models.User{},
		prices:        map[string]models.ServicePrice{},
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
	if u, ok := c.users[id]; ok {
		return &u, nil
	}
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
	if p, ok := c.prices[serviceID+"|"+branchID]; ok {
		return &p, nil
	}
	return nil, catalogRepo.ErrNotFound
}

// fakeBookingRepo is an in-memory BookingRepository safe for concurrent use.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	order    []string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	r.order = append(r.order, b.ID)
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, tenantID, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByToken(_ context.Context, token string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ConfirmationToken == token {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) ListActive(_ context.Context, f bookingRepo.ActiveFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, id := range r.order {
		b := r.bookings[id]
		if !b.IsActive() {
			continue
		}
		if f.TenantID != "" && b.TenantID != f.TenantID {
			continue
		}
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if f.BranchID != "" && b.BranchID != f.BranchID {
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
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) List(_ context.Context, f bookingRepo.ListFilter, page, limit int) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Booking
	for _, id := range r.order {
		b := r.bookings[id]
		if f.TenantID != "" && b.TenantID != f.TenantID {
			continue
		}
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if f.BranchID != "" && b.BranchID != f.BranchID {
			continue
		}
		if f.ProfessionalID != "" && b.ProfessionalID != f.ProfessionalID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		all = append(all, *b)
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeBookingRepo) UpdateSchedule(_ context.Context, id string, scheduledAt time.Time, professionalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.ScheduledAt = scheduledAt
	b.ProfessionalID = professionalID
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	b.Status = to
	return nil
}

func containsStr(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// memLocker is an in-process ResourceLocker with the same contract as the
// Redis one: exclusive per-key, blocking until free or ctx done.
type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMemLocker() *memLocker {
	return &memLocker{held: map[string]bool{}}
}

func (l *memLocker) Acquire(ctx context.Context, keys ...string) (func(), error) {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	var got []string
	release := func() {
		l.mu.Lock()
		for _, k := range got {
			delete(l.held, k)
		}
		l.mu.Unlock()
	}

	for _, key := range sorted {
		for {
			l.mu.Lock()
			if !l.held[key] {
				l.held[key] = true
				l.mu.Unlock()
				got = append(got, key)
				break
			}
			l.mu.Unlock()
			select {
			case <-ctx.Done():
				release()
				return nil, ctx.Err()
			case <-time.After(time.Millisecond):
			}
		}
	}
	return release, nil
}

// fakeExpiry records scheduled expiries.
type fakeExpiry struct {
	mu        sync.Mutex
	scheduled []string
}

func (e *fakeExpiry) ScheduleExpiry(bookingID string, _ time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduled = append(e.scheduled, bookingID)
	return nil
}
