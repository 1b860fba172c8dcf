package dto

import (
	"time"

	"github.com/spec-kit/car-rental-service/internal/domain"
)

// CreateBookingRequest payload for a new booking. Dates use YYYY-MM-DD.
type CreateBookingRequest struct {
	CarID      string `json:"carId"`
	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`
}

// ChangeBookingStatusRequest payload for status updates.
type ChangeBookingStatusRequest struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// BookingResponse is the public view of a booking.
type BookingResponse struct {
	ID         string    `json:"id"`
	CarID      string    `json:"carId"`
	UserID     string    `json:"userId"`
	OwnerID    string    `json:"ownerId"`
	PickupDate time.Time `json:"pickupDate"`
	ReturnDate time.Time `json:"returnDate"`
	Status     string    `json:"status"`
	Price      int64     `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewBookingResponse maps a domain booking to its public view.
func NewBookingResponse(booking domain.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID,
		CarID:      booking.CarID,
		UserID:     booking.UserID,
		OwnerID:    booking.OwnerID,
		PickupDate: booking.PickupDate,
		ReturnDate: booking.ReturnDate,
		Status:     string(booking.Status),
		Price:      booking.Price,
		CreatedAt:  booking.CreatedAt,
	}
}

// NewBookingResponses maps a slice of bookings.
func NewBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, NewBookingResponse(booking))
	}
	return out
}
