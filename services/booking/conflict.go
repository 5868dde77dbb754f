package booking

import "trimly/models"

// HasConflict reports whether candidate overlaps any active booking in
// existing. Cancelled bookings never occupy their interval. excludeID lets
// reschedule and confirm checks skip the booking under test so it does not
// conflict with itself.
//
// Overlap is half-open: a booking ending exactly when candidate starts does
// not conflict.
func HasConflict(existing []models.Booking, candidate models.Interval, excludeID string) bool {
	for i := range existing {
		b := &existing[i]
		if !b.IsActive() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.Interval().Overlaps(candidate) {
			return true
		}
	}
	return false
}
