package domain

import "time"

// BookingStatus represents lifecycle states for a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is a known status value.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking records a rental of a car by a user.
type Booking struct {
	ID         string
	CarID      string
	UserID     string
	OwnerID    string
	PickupDate time.Time
	ReturnDate time.Time
	Status     BookingStatus
	Price      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
