package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-rental-service/internal/domain"
	"github.com/spec-kit/car-rental-service/internal/events"
	"github.com/spec-kit/car-rental-service/internal/repository"
)

// DashboardData aggregates the owner dashboard numbers.
type DashboardData struct {
	TotalCars         int              `json:"totalCars"`
	TotalBookings     int              `json:"totalBookings"`
	PendingBookings   int              `json:"pendingBookings"`
	CompletedBookings int              `json:"completedBookings"`
	RecentBookings    []domain.Booking `json:"recentBookings"`
	MonthlyRevenue    int64            `json:"monthlyRevenue"`
}

// BookingService manages rentals and the owner dashboard.
type BookingService struct {
	bookings   repository.BookingRepository
	cars       repository.CarRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewBookingService builds the service.
func NewBookingService(bookings repository.BookingRepository, cars repository.CarRepository, dispatcher events.Dispatcher) *BookingService {
	return &BookingService{bookings: bookings, cars: cars, dispatcher: dispatcher, now: time.Now}
}

// Create books a car for the given date range. Price is whole rental days
// times the car's daily rate.
func (s *BookingService) Create(ctx context.Context, userID, carID string, pickup, ret time.Time) (*domain.Booking, error) {
	if carID == "" || !ret.After(pickup) {
		return nil, ErrValidation
	}

	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !car.IsAvailable {
		return nil, ErrCarUnavailable
	}

	days := int64(ret.Sub(pickup).Hours() / 24)
	if days < 1 {
		days = 1
	}

	booking := &domain.Booking{
		ID:         uuid.NewString(),
		CarID:      car.ID,
		UserID:     userID,
		OwnerID:    car.OwnerID,
		PickupDate: pickup,
		ReturnDate: ret,
		Status:     domain.BookingStatusPending,
		Price:      days * car.PricePerDay,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBookingCreated,
		BookingID: booking.ID,
		ActorID:   userID,
		Timestamp: s.now(),
		Payload: events.BookingCreatedPayload{
			CarID:      booking.CarID,
			OwnerID:    booking.OwnerID,
			PickupDate: booking.PickupDate,
			ReturnDate: booking.ReturnDate,
			Price:      booking.Price,
		},
	})
	return booking, nil
}

// ListForUser returns the caller's bookings.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListForOwner returns bookings against the owner's fleet.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID)
}

// ChangeStatus updates a booking's status. Only the owning side of the
// booking may change it.
func (s *BookingService) ChangeStatus(ctx context.Context, ownerID, bookingID string, status domain.BookingStatus) error {
	if !domain.ValidBookingStatus(status) {
		return ErrValidation
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if booking.OwnerID != ownerID {
		return ErrForbidden
	}
	if err := s.bookings.UpdateStatus(ctx, booking.ID, status); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBookingStatusChanged,
		BookingID: booking.ID,
		ActorID:   ownerID,
		Timestamp: s.now(),
		Payload: events.BookingStatusChangedPayload{
			OldStatus: booking.Status,
			NewStatus: status,
		},
	})
	return nil
}

// Dashboard aggregates fleet and booking numbers for an owner account.
func (s *BookingService) Dashboard(ctx context.Context, owner *domain.Account) (*DashboardData, error) {
	if owner.Role != domain.RoleOwner {
		return nil, ErrForbidden
	}

	cars, err := s.cars.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		TotalCars:      len(cars),
		TotalBookings:  len(bookings),
		RecentBookings: bookings,
	}
	if len(data.RecentBookings) > 3 {
		data.RecentBookings = data.RecentBookings[:3]
	}
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingStatusPending:
			data.PendingBookings++
		case domain.BookingStatusConfirmed:
			data.CompletedBookings++
			data.MonthlyRevenue += b.Price
		}
	}
	return data, nil
}

func (s *BookingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
