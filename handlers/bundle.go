package handlers

import (
	"trimly/services/booking"
	"trimly/services/scheduling"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Booking      *BookingHandler
	Availability *AvailabilityHandler
}

// NewHandlerBundle wires the handlers onto their services.
func NewHandlerBundle(bookingSvc booking.BookingService, availabilitySvc scheduling.AvailabilityService) *HandlerBundle {
	return &HandlerBundle{
		Booking:      &BookingHandler{Service: bookingSvc},
		Availability: &AvailabilityHandler{Service: availabilitySvc},
	}
}
