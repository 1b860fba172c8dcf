package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/car-rental-service/internal/domain"
	"github.com/spec-kit/car-rental-service/internal/persistence"
	"github.com/spec-kit/car-rental-service/internal/repository"
)

const availableCarsCacheKey = "cars:available"

// CarInput carries the listing fields an owner submits.
type CarInput struct {
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
}

// CarService manages car listings. The public catalog is served through a
// Redis cache that owner mutations invalidate.
type CarService struct {
	cars     repository.CarRepository
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCarService builds the service.
func NewCarService(cars repository.CarRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *CarService {
	return &CarService{cars: cars, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ListAvailable returns the public catalog of rentable cars.
func (s *CarService) ListAvailable(ctx context.Context) ([]domain.Car, error) {
	if cached, err := s.cache.Get(ctx, availableCarsCacheKey); err == nil {
		var cars []domain.Car
		if err := json.Unmarshal([]byte(cached), &cars); err == nil {
			return cars, nil
		}
	} else if !persistence.IsMiss(err) {
		s.logger.Warn("car cache read failed", zap.Error(err))
	}

	cars, err := s.cars.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(cars); err == nil {
		if err := s.cache.Set(ctx, availableCarsCacheKey, string(encoded), s.cacheTTL); err != nil {
			s.logger.Warn("car cache write failed", zap.Error(err))
		}
	}
	return cars, nil
}

// AddCar lists a new car for the owner.
func (s *CarService) AddCar(ctx context.Context, ownerID string, input CarInput) (*domain.Car, error) {
	if input.Brand == "" || input.Model == "" || input.Year == 0 || input.Category == "" ||
		input.SeatingCapacity == 0 || input.FuelType == "" || input.Transmission == "" ||
		input.PricePerDay == 0 || input.Location == "" || input.Description == "" {
		return nil, ErrValidation
	}

	car := &domain.Car{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Brand:           input.Brand,
		Model:           input.Model,
		Image:           input.Image,
		Year:            input.Year,
		Category:        input.Category,
		SeatingCapacity: input.SeatingCapacity,
		FuelType:        input.FuelType,
		Transmission:    input.Transmission,
		PricePerDay:     input.PricePerDay,
		Location:        input.Location,
		Description:     input.Description,
		IsAvailable:     true,
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return car, nil
}

// ListByOwner returns all cars the owner has listed.
func (s *CarService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Car, error) {
	return s.cars.ListByOwner(ctx, ownerID)
}

// ToggleAvailability flips a car in or out of the public catalog. Only the
// listing owner may do this.
func (s *CarService) ToggleAvailability(ctx context.Context, ownerID, carID string) error {
	car, err := s.getOwned(ctx, ownerID, carID)
	if err != nil {
		return err
	}
	if err := s.cars.SetAvailability(ctx, car.ID, !car.IsAvailable); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// DeleteCar removes a listing. Only the listing owner may do this.
func (s *CarService) DeleteCar(ctx context.Context, ownerID, carID string) error {
	car, err := s.getOwned(ctx, ownerID, carID)
	if err != nil {
		return err
	}
	if err := s.cars.Delete(ctx, car.ID); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *CarService) getOwned(ctx context.Context, ownerID, carID string) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if car.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return car, nil
}

func (s *CarService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Delete(ctx, availableCarsCacheKey); err != nil {
		s.logger.Warn("car cache invalidation failed", zap.Error(err))
	}
}
