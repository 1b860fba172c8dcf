package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-rental-service/internal/api/dto"
	"github.com/spec-kit/car-rental-service/internal/auth"
	"github.com/spec-kit/car-rental-service/internal/domain"
	"github.com/spec-kit/car-rental-service/internal/service"
)

// OwnerHandler exposes fleet management endpoints for car owners.
type OwnerHandler struct {
	owners   *service.OwnerService
	cars     *service.CarService
	bookings *service.BookingService
}

// NewOwnerHandler constructs handler.
func NewOwnerHandler(owners *service.OwnerService, cars *service.CarService, bookings *service.BookingService) *OwnerHandler {
	return &OwnerHandler{owners: owners, cars: cars, bookings: bookings}
}

// ChangeRole handles POST /api/owner/change-role.
func (h *OwnerHandler) ChangeRole(c *fiber.Ctx) error {
	account := mustAccount(c)
	if err := h.owners.ElevateToOwner(c.Context(), account.ID); err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"message": "Now you can list cars."})
}

// AddCar handles POST /api/owner/add-car.
func (h *OwnerHandler) AddCar(c *fiber.Ctx) error {
	account := mustAccount(c)

	var req dto.AddCarRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}

	car, err := h.cars.AddCar(c.Context(), account.ID, service.CarInput{
		Brand:           req.Brand,
		Model:           req.Model,
		Image:           req.Image,
		Year:            req.Year,
		Category:        req.Category,
		SeatingCapacity: req.SeatingCapacity,
		FuelType:        req.FuelType,
		Transmission:    req.Transmission,
		PricePerDay:     req.PricePerDay,
		Location:        req.Location,
		Description:     req.Description,
	})
	if err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusCreated, fiber.Map{"message": "Car Added.", "carId": car.ID})
}

// ListCars handles GET /api/owner/cars.
func (h *OwnerHandler) ListCars(c *fiber.Ctx) error {
	account := mustAccount(c)
	cars, err := h.cars.ListByOwner(c.Context(), account.ID)
	if err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"cars": dto.NewCarResponses(cars)})
}

// ToggleCar handles POST /api/owner/toggle-car.
func (h *OwnerHandler) ToggleCar(c *fiber.Ctx) error {
	account := mustAccount(c)

	var req dto.CarActionRequest
	if err := c.BodyParser(&req); err != nil || req.CarID == "" {
		return badRequest("carId required")
	}

	if err := h.cars.ToggleAvailability(c.Context(), account.ID, req.CarID); err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"message": "Availability Toggled."})
}

// DeleteCar handles POST /api/owner/delete-car.
func (h *OwnerHandler) DeleteCar(c *fiber.Ctx) error {
	account := mustAccount(c)

	var req dto.CarActionRequest
	if err := c.BodyParser(&req); err != nil || req.CarID == "" {
		return badRequest("carId required")
	}

	if err := h.cars.DeleteCar(c.Context(), account.ID, req.CarID); err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"message": "Car deleted successfully"})
}

// Dashboard handles GET /api/owner/dashboard.
func (h *OwnerHandler) Dashboard(c *fiber.Ctx) error {
	account := mustAccount(c)
	data, err := h.bookings.Dashboard(c.Context(), account)
	if err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"dashboardData": data})
}

// UpdateImage handles POST /api/owner/update-image.
func (h *OwnerHandler) UpdateImage(c *fiber.Ctx) error {
	account := mustAccount(c)

	var req dto.UpdateImageRequest
	if err := c.BodyParser(&req); err != nil || req.Image == "" {
		return badRequest("image required")
	}

	if err := h.owners.UpdateImage(c.Context(), account.ID, req.Image); err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"message": "Image Updated", "image": req.Image})
}

// mustAccount returns the authenticated account. Routes using it sit behind
// the auth middleware, so the account is always present.
func mustAccount(c *fiber.Ctx) *domain.Account {
	account, _ := auth.AccountFromContext(c)
	return account
}
