package models

// Role of the authenticated caller, as asserted by the upstream gateway.
type Role string

const (
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// Actor identifies who is making a request. Authentication itself happens
// upstream; the gateway forwards the verified identity in headers.
type Actor struct {
	UserID   string
	TenantID string
	Role     Role
}

// IsStaff reports whether the actor may act on bookings they do not own and
// transition booking status.
func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}
