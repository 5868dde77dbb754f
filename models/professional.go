package models

import "time"

// Professional is a bookable staff member. A professional can work at several
// branches of the same tenant; membership is carried on the document.
type Professional struct {
	ID        string    `bson:"id" json:"id"`
	TenantID  string    `bson:"tenant_id" json:"tenantId"`
	Name      string    `bson:"name" json:"name"`
	Active    bool      `bson:"active" json:"active"`
	BranchIDs []string  `bson:"branch_ids" json:"branchIds"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// WorksAt reports whether the professional is assigned to the branch.
func (p *Professional) WorksAt(branchID string) bool {
	for _, id := range p.BranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}
