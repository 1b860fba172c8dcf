package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-rental-service/internal/domain"
)

// CarRepository defines persistence access for car listings.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	ListAvailable(ctx context.Context) ([]domain.Car, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Car, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}

const carColumns = `id, owner_id, brand, model, image, year, category, seating_capacity,
        fuel_type, transmission, price_per_day, location, description, is_available,
        created_at, updated_at`

type carRepository struct {
	db DB
}

// NewCarRepository returns a Postgres-backed implementation.
func NewCarRepository(db DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	const query = `
        INSERT INTO cars (id, owner_id, brand, model, image, year, category, seating_capacity,
            fuel_type, transmission, price_per_day, location, description, is_available)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		car.ID,
		car.OwnerID,
		car.Brand,
		car.Model,
		car.Image,
		car.Year,
		car.Category,
		car.SeatingCapacity,
		car.FuelType,
		car.Transmission,
		car.PricePerDay,
		car.Location,
		car.Description,
		car.IsAvailable,
	).Scan(&car.CreatedAt, &car.UpdatedAt)
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id=$1`

	var car domain.Car
	if err := r.db.QueryRow(ctx, query, id).Scan(carFields(&car)...); err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) ListAvailable(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE is_available=true ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *carRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE owner_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *carRepository) list(ctx context.Context, query string, args ...any) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := make([]domain.Car, 0)
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(carFields(&car)...); err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (r *carRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	const query = `UPDATE cars SET is_available=$2, updated_at=NOW() WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id, available)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM cars WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func carFields(car *domain.Car) []any {
	return []any{
		&car.ID,
		&car.OwnerID,
		&car.Brand,
		&car.Model,
		&car.Image,
		&car.Year,
		&car.Category,
		&car.SeatingCapacity,
		&car.FuelType,
		&car.Transmission,
		&car.PricePerDay,
		&car.Location,
		&car.Description,
		&car.IsAvailable,
		&car.CreatedAt,
		&car.UpdatedAt,
	}
}
