package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/car-rental-service/internal/api/dto"
	"github.com/spec-kit/car-rental-service/internal/domain"
	"github.com/spec-kit/car-rental-service/internal/service"
)

const bookingDateLayout = "2006-01-02"

// BookingsHandler exposes rental endpoints.
type BookingsHandler struct {
	bookings *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookingService}
}

// Create handles POST /api/bookings/create.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	account := mustAccount(c)

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	pickup, err := time.Parse(bookingDateLayout, req.PickupDate)
	if err != nil {
		return badRequest("invalid pickupDate")
	}
	ret, err := time.Parse(bookingDateLayout, req.ReturnDate)
	if err != nil {
		return badRequest("invalid returnDate")
	}

	booking, err := h.bookings.Create(c.Context(), account.ID, req.CarID, pickup, ret)
	if err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusCreated, fiber.Map{
		"message": "Booking Created.",
		"booking": dto.NewBookingResponse(*booking),
	})
}

// ListUser handles GET /api/bookings/user.
func (h *BookingsHandler) ListUser(c *fiber.Ctx) error {
	account := mustAccount(c)
	bookings, err := h.bookings.ListForUser(c.Context(), account.ID)
	if err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"bookings": dto.NewBookingResponses(bookings)})
}

// ListOwner handles GET /api/bookings/owner.
func (h *BookingsHandler) ListOwner(c *fiber.Ctx) error {
	account := mustAccount(c)
	bookings, err := h.bookings.ListForOwner(c.Context(), account.ID)
	if err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"bookings": dto.NewBookingResponses(bookings)})
}

// ChangeStatus handles POST /api/bookings/change-status.
func (h *BookingsHandler) ChangeStatus(c *fiber.Ctx) error {
	account := mustAccount(c)

	var req dto.ChangeBookingStatusRequest
	if err := c.BodyParser(&req); err != nil || req.BookingID == "" {
		return badRequest("bookingId required")
	}

	if err := h.bookings.ChangeStatus(c.Context(), account.ID, req.BookingID, domain.BookingStatus(req.Status)); err != nil {
		return mapServiceError(err)
	}
	return ok(c, http.StatusOK, fiber.Map{"message": "Status Updated."})
}
