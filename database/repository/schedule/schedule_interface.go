package scheduleRepo

import (
	"context"

	"trimly/models"
)

// ScheduleRepository stores the weekly operating windows of branches and
// professionals, one document per resource per weekday.
type ScheduleRepository interface {
	// GetForResource returns the schedule of a resource for a weekday, or nil
	// when none exists. A missing schedule means the resource does not work
	// that day; it is not an error.
	GetForResource(ctx context.Context, resourceKind, resourceID string, weekday int) (*models.Schedule, error)

	// Upsert replaces the schedule for the document's resource/weekday pair.
	Upsert(ctx context.Context, schedule *models.Schedule) error
}
