package handlers

import (
	"net/http"

	"trimly/middleware"
	"trimly/services/scheduling"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the day-level slot grid.
type AvailabilityHandler struct {
	Service scheduling.AvailabilityService
}

// GetAvailability returns the slot grid for a branch, service and date.
// GET /api/v1/availability?branchId=&serviceId=&date=&professionalId=
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	q := scheduling.DayQuery{
		BranchID:       c.Query("branchId"),
		ServiceID:      c.Query("serviceId"),
		ProfessionalID: c.Query("professionalId"),
		Date:           c.Query("date"),
	}
	if q.BranchID == "" || q.ServiceID == "" || q.Date == "" {
		respondError(c, utils.NewValidation("branchId, serviceId and date are required"))
		return
	}

	resp, err := h.Service.ComputeDay(c.Request.Context(), middleware.ActorFrom(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
