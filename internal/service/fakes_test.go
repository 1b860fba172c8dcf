package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-rental-service/internal/domain"
	"github.com/spec-kit/car-rental-service/internal/notification"
)

// --- account repository fake ---

type fakeAccountRepo struct {
	byID map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) find(email string) *domain.Account {
	for _, a := range f.byID {
		if a.Email == email {
			return a
		}
	}
	return nil
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if f.find(account.Email) != nil {
		return errors.New("unique violation")
	}
	clone := *account
	f.byID[account.ID] = &clone
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *account
	return &clone, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	account := f.find(domain.NormalizeEmail(email))
	if account == nil {
		return nil, pgx.ErrNoRows
	}
	clone := *account
	return &clone, nil
}

func (f *fakeAccountRepo) UpsertUnverified(_ context.Context, account *domain.Account) error {
	if existing := f.find(account.Email); existing != nil {
		if existing.IsVerified {
			return pgx.ErrNoRows
		}
		existing.Name = account.Name
		existing.PasswordHash = account.PasswordHash
		existing.OTPCode = account.OTPCode
		existing.OTPExpiresAt = account.OTPExpiresAt
		account.ID = existing.ID
		return nil
	}
	clone := *account
	f.byID[account.ID] = &clone
	return nil
}

func (f *fakeAccountRepo) RefreshCode(_ context.Context, id, code string, expiresAt time.Time) error {
	account, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.OTPCode = &code
	account.OTPExpiresAt = &expiresAt
	return nil
}

func (f *fakeAccountRepo) MarkVerified(_ context.Context, id string) error {
	account, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.IsVerified = true
	account.OTPCode = nil
	account.OTPExpiresAt = nil
	return nil
}

func (f *fakeAccountRepo) ResetPassword(_ context.Context, id, passwordHash string) error {
	account, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.PasswordHash = passwordHash
	account.OTPCode = nil
	account.OTPExpiresAt = nil
	return nil
}

func (f *fakeAccountRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	account, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.Role = role
	return nil
}

func (f *fakeAccountRepo) UpdateImage(_ context.Context, id, image string) error {
	account, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.Image = image
	return nil
}

// --- notification sender fake ---

type sentMail struct {
	Email   string
	Code    string
	Purpose notification.Purpose
}

type fakeSender struct {
	sent []sentMail
	fail bool
}

func (f *fakeSender) SendCode(_ context.Context, email, code string, purpose notification.Purpose) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, sentMail{Email: email, Code: code, Purpose: purpose})
	return nil
}

// --- code generator stub ---

type stubCodes struct {
	codes []string
	next  int
}

func (s *stubCodes) Generate() (string, error) {
	if s.next >= len(s.codes) {
		return "000000", nil
	}
	code := s.codes[s.next]
	s.next++
	return code, nil
}

// --- car repository fake ---

type fakeCarRepo struct {
	byID map[string]*domain.Car
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{byID: make(map[string]*domain.Car)}
}

func (f *fakeCarRepo) Create(_ context.Context, car *domain.Car) error {
	clone := *car
	f.byID[car.ID] = &clone
	return nil
}

func (f *fakeCarRepo) GetByID(_ context.Context, id string) (*domain.Car, error) {
	car, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *car
	return &clone, nil
}

func (f *fakeCarRepo) ListAvailable(_ context.Context) ([]domain.Car, error) {
	cars := make([]domain.Car, 0)
	for _, car := range f.byID {
		if car.IsAvailable {
			cars = append(cars, *car)
		}
	}
	return cars, nil
}

func (f *fakeCarRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Car, error) {
	cars := make([]domain.Car, 0)
	for _, car := range f.byID {
		if car.OwnerID == ownerID {
			cars = append(cars, *car)
		}
	}
	return cars, nil
}

func (f *fakeCarRepo) SetAvailability(_ context.Context, id string, available bool) error {
	car, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	car.IsAvailable = available
	return nil
}

func (f *fakeCarRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

// --- booking repository fake ---

type fakeBookingRepo struct {
	byID  map[string]*domain.Booking
	order []string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	clone := *booking
	f.byID[booking.ID] = &clone
	f.order = append(f.order, booking.ID)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	booking, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		if b := f.byID[f.order[i]]; b != nil && b.UserID == userID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (f *fakeBookingRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		if b := f.byID[f.order[i]]; b != nil && b.OwnerID == ownerID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	booking, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	booking.Status = status
	return nil
}
