package domain

import "time"

// Car is a vehicle listed for rent by an owner.
type Car struct {
	ID              string
	OwnerID         string
	Brand           string
	Model           string
	Image           string
	Year            int
	Category        string
	SeatingCapacity int
	FuelType        string
	Transmission    string
	PricePerDay     int64
	Location        string
	Description     string
	IsAvailable     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
