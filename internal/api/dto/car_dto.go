package dto

import (
	"time"

	"github.com/spec-kit/car-rental-service/internal/domain"
)

// AddCarRequest payload for a new listing. Image carries a URL; upload and
// transformation happen outside this service.
type AddCarRequest struct {
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	Image           string `json:"image"`
	Year            int    `json:"year"`
	Category        string `json:"category"`
	SeatingCapacity int    `json:"seating_capacity"`
	FuelType        string `json:"fuel_type"`
	Transmission    string `json:"transmission"`
	PricePerDay     int64  `json:"pricePerDay"`
	Location        string `json:"location"`
	Description     string `json:"description"`
}

// CarActionRequest identifies a car for toggle/delete.
type CarActionRequest struct {
	CarID string `json:"carId"`
}

// UpdateImageRequest payload for the profile image.
type UpdateImageRequest struct {
	Image string `json:"image"`
}

// CarResponse is the public view of a listing.
type CarResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"ownerId"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	Image           string    `json:"image"`
	Year            int       `json:"year"`
	Category        string    `json:"category"`
	SeatingCapacity int       `json:"seating_capacity"`
	FuelType        string    `json:"fuel_type"`
	Transmission    string    `json:"transmission"`
	PricePerDay     int64     `json:"pricePerDay"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	IsAvailable     bool      `json:"isAvailable"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewCarResponse maps a domain car to its public view.
func NewCarResponse(car domain.Car) CarResponse {
	return CarResponse{
		ID:              car.ID,
		OwnerID:         car.OwnerID,
		Brand:           car.Brand,
		Model:           car.Model,
		Image:           car.Image,
		Year:            car.Year,
		Category:        car.Category,
		SeatingCapacity: car.SeatingCapacity,
		FuelType:        car.FuelType,
		Transmission:    car.Transmission,
		PricePerDay:     car.PricePerDay,
		Location:        car.Location,
		Description:     car.Description,
		IsAvailable:     car.IsAvailable,
		CreatedAt:       car.CreatedAt,
	}
}

// NewCarResponses maps a slice of cars.
func NewCarResponses(cars []domain.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, NewCarResponse(car))
	}
	return out
}
