package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/car-rental-service/internal/persistence"
)

func newTestCarService(cars *fakeCarRepo) *CarService {
	return NewCarService(cars, &persistence.Redis{}, time.Minute, zap.NewNop())
}

func validCarInput() CarInput {
	return CarInput{
		Brand:           "BMW",
		Model:           "X5",
		Image:           "https://cdn.example.com/x5.png",
		Year:            2022,
		Category:        "SUV",
		SeatingCapacity: 5,
		FuelType:        "Hybrid",
		Transmission:    "Automatic",
		PricePerDay:     300,
		Location:        "Berlin",
		Description:     "Comfortable family SUV.",
	}
}

func TestAddCar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cars := newFakeCarRepo()
	svc := newTestCarService(cars)

	car, err := svc.AddCar(ctx, "owner-1", validCarInput())
	require.NoError(t, err)
	require.NotEmpty(t, car.ID)
	require.Equal(t, "owner-1", car.OwnerID)
	require.True(t, car.IsAvailable)

	stored, err := cars.GetByID(ctx, car.ID)
	require.NoError(t, err)
	require.Equal(t, "BMW", stored.Brand)
}

func TestAddCar_MissingFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestCarService(newFakeCarRepo())

	input := validCarInput()
	input.Location = ""
	_, err := svc.AddCar(ctx, "owner-1", input)
	require.ErrorIs(t, err, ErrValidation)

	input = validCarInput()
	input.PricePerDay = 0
	_, err = svc.AddCar(ctx, "owner-1", input)
	require.ErrorIs(t, err, ErrValidation)
}

func TestListAvailable_OnlyAvailableCars(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cars := newFakeCarRepo()
	svc := newTestCarService(cars)

	listed, err := svc.AddCar(ctx, "owner-1", validCarInput())
	require.NoError(t, err)
	hidden, err := svc.AddCar(ctx, "owner-1", validCarInput())
	require.NoError(t, err)
	require.NoError(t, svc.ToggleAvailability(ctx, "owner-1", hidden.ID))

	catalog, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	require.Equal(t, listed.ID, catalog[0].ID)
}

func TestToggleAndDelete_OwnershipEnforced(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cars := newFakeCarRepo()
	svc := newTestCarService(cars)

	car, err := svc.AddCar(ctx, "owner-1", validCarInput())
	require.NoError(t, err)

	require.ErrorIs(t, svc.ToggleAvailability(ctx, "owner-2", car.ID), ErrForbidden)
	require.ErrorIs(t, svc.DeleteCar(ctx, "owner-2", car.ID), ErrForbidden)
	require.ErrorIs(t, svc.ToggleAvailability(ctx, "owner-1", "missing"), ErrNotFound)

	require.NoError(t, svc.ToggleAvailability(ctx, "owner-1", car.ID))
	toggled, err := cars.GetByID(ctx, car.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsAvailable)

	require.NoError(t, svc.DeleteCar(ctx, "owner-1", car.ID))
	_, err = svc.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	_, err = cars.GetByID(ctx, car.ID)
	require.Error(t, err)
}
