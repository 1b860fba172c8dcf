package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-rental-service/internal/api/dto"
	"github.com/spec-kit/car-rental-service/internal/service"
)

// CarsHandler exposes the public car catalog.
type CarsHandler struct {
	cars *service.CarService
}

// NewCarsHandler constructs handler.
func NewCarsHandler(carService *service.CarService) *CarsHandler {
	return &CarsHandler{cars: carService}
}

// ListAvailable handles GET /api/user/cars.
func (h *CarsHandler) ListAvailable(c *fiber.Ctx) error {
	cars, err := h.cars.ListAvailable(c.Context())
	if err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"cars": dto.NewCarResponses(cars)})
}
