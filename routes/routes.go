package routes

import (
	"time"

	"trimly/handlers"
	"trimly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/v1")
	{
		api.Use(middleware.ActorMiddleware())
		api.GET("/availability", hb.Availability.GetAvailability)
		api.POST("/bookings", hb.Booking.CreateBooking)
		api.GET("/bookings", hb.Booking.ListBookings)
		api.GET("/bookings/:id", hb.Booking.GetBooking)
		api.PATCH("/bookings/:id", hb.Booking.UpdateBooking)
		api.POST("/bookings/:id/cancel", middleware.RequireStaff(), hb.Booking.CancelBooking)
	}
}

// RegisterPublicRoutes sets up the unauthenticated confirmation-link endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	public := r.Group("/api/public/:tenantSlug/bookings/:token")
	{
		public.POST("/confirm", hb.Booking.ConfirmByToken)
		public.POST("/cancel", hb.Booking.CancelByToken)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/healthz", handlers.HealthCheck)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-User-ID", "X-User-Role", "X-Tenant-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
}
