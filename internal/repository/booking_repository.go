package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-rental-service/internal/domain"
)

// BookingRepository defines persistence access for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

const bookingColumns = `id, car_id, user_id, owner_id, pickup_date, return_date, status, price,
        created_at, updated_at`

type bookingRepository struct {
	db DB
}

// NewBookingRepository returns a Postgres-backed implementation.
func NewBookingRepository(db DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (id, car_id, user_id, owner_id, pickup_date, return_date, status, price)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		booking.ID,
		booking.CarID,
		booking.UserID,
		booking.OwnerID,
		booking.PickupDate,
		booking.ReturnDate,
		booking.Status,
		booking.Price,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1`

	var booking domain.Booking
	if err := r.db.QueryRow(ctx, query, id).Scan(bookingFields(&booking)...); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE owner_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(bookingFields(&booking)...); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	const query = `UPDATE bookings SET status=$2, updated_at=NOW() WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func bookingFields(booking *domain.Booking) []any {
	return []any{
		&booking.ID,
		&booking.CarID,
		&booking.UserID,
		&booking.OwnerID,
		&booking.PickupDate,
		&booking.ReturnDate,
		&booking.Status,
		&booking.Price,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	}
}
