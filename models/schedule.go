package models

import (
	"fmt"
	"time"
)

// Resource kinds a weekly schedule can belong to.
const (
	ResourceBranch       = "branch"
	ResourceProfessional = "professional"
)

// Schedule is the operating window of a branch or a professional for a single
// weekday (0 = Sunday .. 6 = Saturday). A resource with no schedule row for a
// weekday is simply not working that day; it never inherits branch hours.
type Schedule struct {
	ID             string `bson:"id" json:"id"`
	TenantID       string `bson:"tenant_id" json:"tenantId"`
	ResourceKind   string `bson:"resource_kind" json:"resourceKind"`
	ResourceID     string `bson:"resource_id" json:"resourceId"`
	Weekday        int    `bson:"weekday" json:"weekday"`
	IsClosed       bool   `bson:"is_closed" json:"isClosed"`
	StartTime      string `bson:"start_time,omitempty" json:"startTime,omitempty"` // "HH:mm"
	EndTime        string `bson:"end_time,omitempty" json:"endTime,omitempty"`     // "HH:mm"
	BreakStartTime string `bson:"break_start_time,omitempty" json:"breakStartTime,omitempty"`
	BreakEndTime   string `bson:"break_end_time,omitempty" json:"breakEndTime,omitempty"`
}

// ParseClock converts an "HH:mm" wall-clock string into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as zero-padded 24-hour "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// anchor turns minutes-from-midnight into an absolute instant on day.
func anchor(day time.Time, minutes int) time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(minutes) * time.Minute)
}

// WorkingInterval anchors the schedule's open window on the given day. The
// second return is false when the schedule is closed or has no usable window.
func (s *Schedule) WorkingInterval(day time.Time) (Interval, bool) {
	if s == nil || s.IsClosed {
		return Interval{}, false
	}
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return Interval{}, false
	}
	end, err := ParseClock(s.EndTime)
	if err != nil || end <= start {
		return Interval{}, false
	}
	return Interval{Start: anchor(day, start), End: anchor(day, end)}, true
}

// BreakInterval anchors the optional break window on the given day. The second
// return is false when no break is configured.
func (s *Schedule) BreakInterval(day time.Time) (Interval, bool) {
	if s == nil || s.IsClosed || s.BreakStartTime == "" || s.BreakEndTime == "" {
		return Interval{}, false
	}
	start, err := ParseClock(s.BreakStartTime)
	if err != nil {
		return Interval{}, false
	}
	end, err := ParseClock(s.BreakEndTime)
	if err != nil || end <= start {
		return Interval{}, false
	}
	return Interval{Start: anchor(day, start), End: anchor(day, end)}, true
}

// Validate checks the schedule's internal invariants: start < end and, when a
// break is present, breakStart < breakEnd with the break inside [start, end).
func (s *Schedule) Validate() error {
	if s.Weekday < 0 || s.Weekday > 6 {
		return fmt.Errorf("weekday must be in 0..6, got %d", s.Weekday)
	}
	if s.IsClosed {
		return nil
	}
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("startTime %s must be before endTime %s", s.StartTime, s.EndTime)
	}
	if s.BreakStartTime == "" && s.BreakEndTime == "" {
		return nil
	}
	bs, err := ParseClock(s.BreakStartTime)
	if err != nil {
		return err
	}
	be, err := ParseClock(s.BreakEndTime)
	if err != nil {
		return err
	}
	if bs >= be {
		return fmt.Errorf("breakStartTime %s must be before breakEndTime %s", s.BreakStartTime, s.BreakEndTime)
	}
	if bs < start || be > end {
		return fmt.Errorf("break %s-%s must lie within %s-%s", s.BreakStartTime, s.BreakEndTime, s.StartTime, s.EndTime)
	}
	return nil
}
