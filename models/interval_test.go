package models

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{
			name: "identical",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(9, 0), at(10, 0)},
			want: true,
		},
		{
			name: "partial overlap",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(9, 30), at(10, 30)},
			want: true,
		},
		{
			name: "contained",
			a:    Interval{at(9, 0), at(11, 0)},
			b:    Interval{at(9, 30), at(10, 0)},
			want: true,
		},
		{
			name: "back to back does not overlap",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(10, 0), at(11, 0)},
			want: false,
		},
		{
			name: "disjoint",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(12, 0), at(13, 0)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestIntervalContains(t *testing.T) {
	work := Interval{at(9, 0), at(18, 0)}

	if !work.Contains(Interval{at(9, 0), at(9, 45)}) {
		t.Fatal("opening slot should be contained")
	}
	if !work.Contains(Interval{at(17, 15), at(18, 0)}) {
		t.Fatal("slot ending exactly at close should be contained")
	}
	if work.Contains(Interval{at(17, 30), at(18, 15)}) {
		t.Fatal("slot crossing close must not be contained")
	}
	if work.Contains(Interval{at(8, 30), at(9, 15)}) {
		t.Fatal("slot starting before open must not be contained")
	}
}

func TestNewInterval(t *testing.T) {
	iv := NewInterval(at(14, 0), 45*time.Minute)
	if !iv.End.Equal(at(14, 45)) {
		t.Fatalf("expected end 14:45, got %s", iv.End)
	}
	if iv.Duration() != 45*time.Minute {
		t.Fatalf("expected duration 45m, got %s", iv.Duration())
	}
	if !iv.IsValid() {
		t.Fatal("expected valid interval")
	}
	if (Interval{at(10, 0), at(10, 0)}).IsValid() {
		t.Fatal("zero-length interval must be invalid")
	}
}
