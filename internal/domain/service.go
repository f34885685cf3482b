package domain

import "time"

// Service represents a bookable service offered by a provider.
// Appointments reference it for default duration and price when the booking
// request does not override them.
type Service struct {
	ID              int64
	UserID          int64
	Title           string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
