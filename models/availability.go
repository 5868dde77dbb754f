package models

// Slot is one discrete candidate start time offered to customers. When no
// professional was pinned, ProfessionalID carries the first free professional
// as an assignment hint; the actual assignment is re-resolved at booking time.
type Slot struct {
	Time           string `json:"time"` // "HH:mm", 24-hour
	Available      bool   `json:"available"`
	ProfessionalID string `json:"professionalId,omitempty"`
}

// BranchSummary is the branch portion of an availability response.
type BranchSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServiceSummary is the service portion of an availability response.
type ServiceSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailabilityResponse is the ordered slot list for one branch/service/day.
// A closed day yields an empty Slots list, not an error.
type AvailabilityResponse struct {
	Date    string         `json:"date"`
	Branch  BranchSummary  `json:"branch"`
	Service ServiceSummary `json:"service"`
	Slots   []Slot         `json:"slots"`
}
