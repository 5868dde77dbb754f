package handlers

import (
	"net/http"
	"strconv"

	"trimly/middleware"
	"trimly/services/booking"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// CreateBooking books a service at a branch.
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, utils.NewValidation("invalid request body: %v", err))
		return
	}

	resp, err := h.Service.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBooking returns one booking.
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	resp, err := h.Service.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListBookings returns a paginated booking listing.
// GET /api/v1/bookings?page=&limit=&userId=&branchId=&professionalId=&status=
func (h *BookingHandler) ListBookings(c *gin.Context) {
	q := booking.ListQuery{
		UserID:         c.Query("userId"),
		BranchID:       c.Query("branchId"),
		ProfessionalID: c.Query("professionalId"),
		Status:         c.Query("status"),
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, utils.NewValidation("page must be a number"))
			return
		}
		q.Page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, utils.NewValidation("limit must be a number"))
			return
		}
		q.Limit = n
	}

	resp, err := h.Service.List(c.Request.Context(), middleware.ActorFrom(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateBooking reschedules and/or reassigns a booking.
// PATCH /api/v1/bookings/:id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req booking.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, utils.NewValidation("invalid request body: %v", err))
		return
	}

	resp, err := h.Service.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelBooking cancels a booking on behalf of the business.
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	resp, err := h.Service.CancelByID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmByToken confirms a pending booking through its confirmation link.
// POST /api/public/:tenantSlug/bookings/:token/confirm
func (h *BookingHandler) ConfirmByToken(c *gin.Context) {
	resp, err := h.Service.ConfirmByToken(c.Request.Context(), c.Param("tenantSlug"), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelByToken cancels a booking through its confirmation link.
// POST /api/public/:tenantSlug/bookings/:token/cancel
func (h *BookingHandler) CancelByToken(c *gin.Context) {
	resp, err := h.Service.CancelByToken(c.Request.Context(), c.Param("tenantSlug"), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
