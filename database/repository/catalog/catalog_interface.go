package catalogRepo

import (
	"context"
	"errors"

	"trimly/models"
)

// ErrNotFound is returned when a catalog entity does not exist.
var ErrNotFound = errors.New("catalog entity not found")

// CatalogRepository exposes the read-side lookups the booking engine needs for
// tenants, branches, services, professionals, users and the pricing table.
// CRUD for these entities lives outside the engine.
type CatalogRepository interface {
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	GetBranch(ctx context.Context, id string) (*models.Branch, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetProfessional(ctx context.Context, id string) (*models.Professional, error)
	GetUser(ctx context.Context, id string) (*models.User, error)

	// ListBranchProfessionals returns the active professionals assigned to a
	// branch in a stable order (creation time, then id). The ordering is the
	// documented first-fit order of the assignment resolver.
	ListBranchProfessionals(ctx context.Context, branchID string) ([]models.Professional, error)

	// GetServicePrice resolves the pricing row for a service at a branch.
	GetServicePrice(ctx context.Context, serviceID, branchID string) (*models.ServicePrice, error)
}
