package scheduling

import (
	"context"
	"reflect"
	"testing"
	"time"

	"trimly/models"
	"trimly/utils"
)

// 2026-03-10 is a Tuesday.
const testDate = "2026-03-10"
const testWeekday = 2

func tuesdayAt(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func staffActor() models.Actor {
	return models.Actor{UserID: "staff-1", TenantID: "t1", Role: models.RoleStaff}
}

type availEnv struct {
	svc       *DefaultAvailabilityService
	catalog   *fakeCatalog
	schedules *fakeSchedules
	bookings  *fakeBookings
}

func newAvailEnv() *availEnv {
	catalog := newFakeCatalog()
	catalog.tenants["t1"] = models.Tenant{ID: "t1", Slug: "downtown-cuts", Active: true}
	catalog.branches["br1"] = models.Branch{ID: "br1", TenantID: "t1", Name: "Main Street"}
	catalog.services["svc-cut"] = models.Service{ID: "svc-cut", TenantID: "t1", Name: "Haircut", DurationMinutes: 45, Active: true}
	catalog.services["svc-quick"] = models.Service{ID: "svc-quick", TenantID: "t1", Name: "Trim", DurationMinutes: 30, Active: true}
	catalog.professionals["pro-1"] = models.Professional{
		ID: "pro-1", TenantID: "t1", Name: "Ana", Active: true,
		BranchIDs: []string{"br1"}, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	catalog.professionals["pro-2"] = models.Professional{
		ID: "pro-2", TenantID: "t1", Name: "Bela", Active: true,
		BranchIDs: []string{"br1"}, CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	schedules := newFakeSchedules()
	bookings := &fakeBookings{}
	return &availEnv{
		svc:       &DefaultAvailabilityService{Catalog: catalog, Schedules: schedules, Bookings: bookings},
		catalog:   catalog,
		schedules: schedules,
		bookings:  bookings,
	}
}

func (e *availEnv) openBranch(start, end string) {
	e.schedules.set(models.Schedule{
		TenantID: "t1", ResourceKind: models.ResourceBranch, ResourceID: "br1",
		Weekday: testWeekday, StartTime: start, EndTime: end,
	})
}

func (e *availEnv) proWorks(proID, start, end, breakStart, breakEnd string) {
	e.schedules.set(models.Schedule{
		TenantID: "t1", ResourceKind: models.ResourceProfessional, ResourceID: proID,
		Weekday: testWeekday, StartTime: start, EndTime: end,
		BreakStartTime: breakStart, BreakEndTime: breakEnd,
	})
}

func findSlot(t *testing.T, resp *models.AvailabilityResponse, clock string) models.Slot {
	t.Helper()
	for _, s := range resp.Slots {
		if s.Time == clock {
			return s
		}
	}
	t.Fatalf("no slot at %s in %v", clock, resp.Slots)
	return models.Slot{}
}

func TestComputeDay_SlotGrid(t *testing.T) {
	env := newAvailEnv()
	env.openBranch("09:00", "18:00")
	env.proWorks("pro-1", "09:00", "18:00", "", "")

	resp, err := env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", Date: testDate,
	})
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}

	// 45-minute service on a 30-minute grid: 09:00 through 17:00; a 17:30
	// start would run past close and must not appear.
	if len(resp.Slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(resp.Slots))
	}
	if resp.Slots[0].Time != "09:00" {
		t.Fatalf("expected first slot 09:00, got %s", resp.Slots[0].Time)
	}
	last := resp.Slots[len(resp.Slots)-1]
	if last.Time != "17:00" {
		t.Fatalf("expected last slot 17:00, got %s", last.Time)
	}
	for _, s := range resp.Slots {
		if !s.Available {
			t.Fatalf("expected every slot available, %s is not", s.Time)
		}
		if s.ProfessionalID != "pro-1" {
			t.Fatalf("expected pro-1 surfaced on %s, got %q", s.Time, s.ProfessionalID)
		}
	}
	if resp.Service.DurationMinutes != 45 || resp.Branch.Name != "Main Street" {
		t.Fatalf("unexpected summaries: %+v %+v", resp.Branch, resp.Service)
	}
}

func TestComputeDay_BreakBlocksSlots(t *testing.T) {
	env := newAvailEnv()
	// Opening at 09:45 puts 11:45 on the 30-minute grid.
	env.openBranch("09:45", "18:00")
	env.proWorks("pro-1", "09:45", "18:00", "12:00", "13:00")

	resp, err := env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-quick", Date: testDate,
	})
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}

	// 11:45 + 30 min runs into the break.
	if findSlot(t, resp, "11:45").Available {
		t.Fatal("11:45 must be blocked by the 12:00 break")
	}
	// 11:15 + 30 min ends exactly at break start; half-open, no overlap.
	if !findSlot(t, resp, "11:15").Available {
		t.Fatal("11:15 must be available, it ends exactly at break start")
	}
	if findSlot(t, resp, "12:15").Available {
		t.Fatal("12:15 lies inside the break")
	}
	if !findSlot(t, resp, "13:15").Available {
		t.Fatal("13:15 is after the break and must be available")
	}
}

func TestComputeDay_ClosedDay(t *testing.T) {
	env := newAvailEnv()

	// No branch schedule at all for the weekday.
	resp, err := env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", Date: testDate,
	})
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("expected empty slot list for unscheduled day, got %d", len(resp.Slots))
	}

	// Explicitly closed behaves the same.
	env.schedules.set(models.Schedule{
		TenantID: "t1", ResourceKind: models.ResourceBranch, ResourceID: "br1",
		Weekday: testWeekday, IsClosed: true,
	})
	resp, err = env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", Date: testDate,
	})
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("expected empty slot list for closed day, got %d", len(resp.Slots))
	}
}

func TestComputeDay_BookingOccupiesAndCancelFrees(t *testing.T) {
	env := newAvailEnv()
	env.openBranch("09:00", "18:00")
	env.proWorks("pro-1", "09:00", "18:00", "", "")

	// pro-2 does not work Tuesdays, so pro-1 is the only candidate.
	env.bookings.bookings = []models.Booking{{
		ID: "b1", TenantID: "t1", UserID: "u1", BranchID: "br1", ServiceID: "svc-cut",
		ProfessionalID: "pro-1", ScheduledAt: tuesdayAt(10, 0), DurationMinutes: 45,
		Status: models.BookingConfirmed,
	}}

	q := DayQuery{BranchID: "br1", ServiceID: "svc-cut", Date: testDate}
	resp, err := env.svc.ComputeDay(context.Background(), staffActor(), q)
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}

	// Booking occupies [10:00, 10:45): 09:30, 10:00 and 10:30 collide.
	if !findSlot(t, resp, "09:00").Available {
		t.Fatal("09:00 ends before the booking starts and must be free")
	}
	for _, clock := range []string{"09:30", "10:00", "10:30"} {
		if findSlot(t, resp, clock).Available {
			t.Fatalf("%s overlaps the 10:00 booking and must be blocked", clock)
		}
	}
	if !findSlot(t, resp, "11:00").Available {
		t.Fatal("11:00 starts after the booking ends and must be free")
	}

	// Cancelling the booking frees the slot again.
	env.bookings.bookings[0].Status = models.BookingCancelled
	resp, err = env.svc.ComputeDay(context.Background(), staffActor(), q)
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}
	if !findSlot(t, resp, "10:00").Available {
		t.Fatal("10:00 must be available after cancellation")
	}
}

func TestComputeDay_AggregatesOverProfessionals(t *testing.T) {
	env := newAvailEnv()
	env.openBranch("09:00", "18:00")
	env.proWorks("pro-1", "09:00", "18:00", "", "")
	env.proWorks("pro-2", "09:00", "18:00", "", "")

	env.bookings.bookings = []models.Booking{{
		ID: "b1", TenantID: "t1", UserID: "u1", BranchID: "br1", ServiceID: "svc-cut",
		ProfessionalID: "pro-1", ScheduledAt: tuesdayAt(10, 0), DurationMinutes: 45,
		Status: models.BookingConfirmed,
	}}

	resp, err := env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", Date: testDate,
	})
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}

	// pro-1 is busy at 10:00, pro-2 is not; the slot stays available and
	// surfaces the first free professional.
	slot := findSlot(t, resp, "10:00")
	if !slot.Available {
		t.Fatal("10:00 must be available through pro-2")
	}
	if slot.ProfessionalID != "pro-2" {
		t.Fatalf("expected pro-2 surfaced, got %q", slot.ProfessionalID)
	}

	// A free slot surfaces the first candidate in stable order.
	if got := findSlot(t, resp, "11:00").ProfessionalID; got != "pro-1" {
		t.Fatalf("expected pro-1 surfaced at 11:00, got %q", got)
	}
}

func TestComputeDay_Pinned(t *testing.T) {
	env := newAvailEnv()
	env.openBranch("09:00", "18:00")
	env.proWorks("pro-1", "09:00", "18:00", "", "")

	// Pinned to a professional who does not work Tuesdays: grid exists, all
	// slots unavailable.
	resp, err := env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", ProfessionalID: "pro-2", Date: testDate,
	})
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}
	for _, s := range resp.Slots {
		if s.Available {
			t.Fatalf("pinned pro-2 does not work, %s must be unavailable", s.Time)
		}
	}

	// Pinned slots never carry an assignment hint.
	resp, err = env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", ProfessionalID: "pro-1", Date: testDate,
	})
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}
	slot := findSlot(t, resp, "10:00")
	if !slot.Available || slot.ProfessionalID != "" {
		t.Fatalf("expected available pinned slot without hint, got %+v", slot)
	}

	// Unknown pinned professional is not found.
	if _, err := env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", ProfessionalID: "ghost", Date: testDate,
	}); utils.CodeOf(err) != utils.CodeNotFound {
		t.Fatalf("expected notFound for unknown professional, got %v", err)
	}
}

func TestComputeDay_Deterministic(t *testing.T) {
	env := newAvailEnv()
	env.openBranch("09:00", "18:00")
	env.proWorks("pro-1", "09:00", "18:00", "12:00", "13:00")
	env.bookings.bookings = []models.Booking{{
		ID: "b1", TenantID: "t1", ProfessionalID: "pro-1", ScheduledAt: tuesdayAt(15, 0),
		DurationMinutes: 45, Status: models.BookingPending,
	}}

	q := DayQuery{BranchID: "br1", ServiceID: "svc-cut", Date: testDate}
	first, err := env.svc.ComputeDay(context.Background(), staffActor(), q)
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}
	second, err := env.svc.ComputeDay(context.Background(), staffActor(), q)
	if err != nil {
		t.Fatalf("ComputeDay failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must yield identical slot lists")
	}
}

func TestComputeDay_InputValidation(t *testing.T) {
	env := newAvailEnv()
	env.openBranch("09:00", "18:00")

	if _, err := env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", Date: "10-03-2026",
	}); utils.CodeOf(err) != utils.CodeValidation {
		t.Fatalf("expected validation for bad date, got %v", err)
	}

	if _, err := env.svc.ComputeDay(context.Background(), staffActor(), DayQuery{
		BranchID: "ghost", ServiceID: "svc-cut", Date: testDate,
	}); utils.CodeOf(err) != utils.CodeNotFound {
		t.Fatalf("expected notFound for unknown branch, got %v", err)
	}

	// A branch of another tenant reads as not found.
	foreign := models.Actor{UserID: "u9", TenantID: "t2", Role: models.RoleStaff}
	if _, err := env.svc.ComputeDay(context.Background(), foreign, DayQuery{
		BranchID: "br1", ServiceID: "svc-cut", Date: testDate,
	}); utils.CodeOf(err) != utils.CodeNotFound {
		t.Fatalf("expected notFound across tenants, got %v", err)
	}
}
