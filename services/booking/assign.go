package booking

import (
	"context"

	"trimly/models"
	"trimly/utils"
)

// lockFirstFreeProfessional walks the branch's active professionals in their
// stable order (creation time, then id) and returns the first one with no
// conflict at iv, still holding that professional's lock so the caller can
// write before anyone else runs the same check. A busy professional is not an
// error here; it means try the next candidate. First-fit is the intended
// policy; no load balancing is attempted.
func (s *DefaultBookingService) lockFirstFreeProfessional(ctx context.Context, tenantID, branchID string, iv models.Interval) (string, func(), error) {
	pros, err := s.Catalog.ListBranchProfessionals(ctx, branchID)
	if err != nil {
		return "", nil, err
	}

	for i := range pros {
		pro := &pros[i]
		release, err := s.Locker.Acquire(ctx, "professional:"+pro.ID)
		if err != nil {
			return "", nil, err
		}
		err = s.checkProfessionalConflict(ctx, tenantID, pro.ID, iv, "")
		if err == nil {
			return pro.ID, release, nil
		}
		release()
		if utils.CodeOf(err) != utils.CodeConflict {
			return "", nil, err
		}
	}

	return "", nil, utils.NewConflict("no professionals available at the requested time")
}
