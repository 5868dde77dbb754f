package models

import (
	"fmt"
	"time"
)

// BookingResponse is the wire representation of a booking. Price is formatted
// to two decimals; Professional is the display name, or null while a booking
// has no assigned professional.
type BookingResponse struct {
	ID              string    `json:"id"`
	DisplayID       string    `json:"displayId"`
	Tenant          string    `json:"tenant"`
	Branch          string    `json:"branch"`
	Service         string    `json:"service"`
	Professional    *string   `json:"professional"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Price           string    `json:"price"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FormatPrice renders a price with two decimal places.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// BookingList is a paginated list of bookings.
type BookingList struct {
	Data  []BookingResponse `json:"data"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
}
