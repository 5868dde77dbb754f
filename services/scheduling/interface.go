package scheduling

import (
	"context"

	"trimly/models"
)

// AvailabilityService computes the bookable slots for a branch/service/day.
type AvailabilityService interface {
	ComputeDay(ctx context.Context, actor models.Actor, q DayQuery) (*models.AvailabilityResponse, error)
}

// DayQuery selects the day to compute. ProfessionalID pins the computation to
// a single professional; when empty, slots aggregate over every active
// professional of the branch.
type DayQuery struct {
	BranchID       string
	ServiceID      string
	ProfessionalID string
	Date           string // "YYYY-MM-DD"
}
