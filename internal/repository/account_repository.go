package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/car-rental-service/internal/domain"
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock satisfies
// it too, which keeps repository tests off a live database.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository defines persistence access for accounts. Every write
// that touches the pending code or verification state is a single SQL
// statement so concurrent callers never observe a half-applied update.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// UpsertUnverified inserts the account, or refreshes name, password and
	// pending code in place when an unverified account already holds the
	// email. It returns pgx.ErrNoRows when a verified account blocks the
	// email. On success account.ID carries the persisted id, which for an
	// existing row differs from the candidate id passed in.
	UpsertUnverified(ctx context.Context, account *domain.Account) error
	RefreshCode(ctx context.Context, id, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateImage(ctx context.Context, id, image string) error
}

type accountRepository struct {
	db DB
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(db DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, name, email, password_hash, role, image, is_verified, otp_code, otp_expires_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Image,
		account.IsVerified,
		account.OTPCode,
		account.OTPExpiresAt,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.get(ctx, `WHERE id=$1`, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.get(ctx, `WHERE email=$1`, domain.NormalizeEmail(email))
}

func (r *accountRepository) get(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `
        SELECT id, name, email, password_hash, role, image, is_verified, otp_code, otp_expires_at, created_at, updated_at
        FROM accounts ` + where

	var account domain.Account
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.Image,
		&account.IsVerified,
		&account.OTPCode,
		&account.OTPExpiresAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) UpsertUnverified(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, name, email, password_hash, role, is_verified, otp_code, otp_expires_at)
        VALUES ($1,$2,$3,$4,$5,false,$6,$7)
        ON CONFLICT (email) DO UPDATE
        SET name=EXCLUDED.name,
            password_hash=EXCLUDED.password_hash,
            otp_code=EXCLUDED.otp_code,
            otp_expires_at=EXCLUDED.otp_expires_at,
            updated_at=NOW()
        WHERE accounts.is_verified = false
        RETURNING id`

	return r.db.QueryRow(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.OTPCode,
		account.OTPExpiresAt,
	).Scan(&account.ID)
}

func (r *accountRepository) RefreshCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	const query = `
        UPDATE accounts SET otp_code=$2, otp_expires_at=$3, updated_at=NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id, code, expiresAt)
}

func (r *accountRepository) MarkVerified(ctx context.Context, id string) error {
	const query = `
        UPDATE accounts SET is_verified=true, otp_code=NULL, otp_expires_at=NULL, updated_at=NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id)
}

func (r *accountRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	const query = `
        UPDATE accounts SET password_hash=$2, otp_code=NULL, otp_expires_at=NULL, updated_at=NOW()
        WHERE id=$1`
	return r.exec(ctx, query, id, passwordHash)
}

func (r *accountRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	const query = `UPDATE accounts SET role=$2, updated_at=NOW() WHERE id=$1`
	return r.exec(ctx, query, id, role)
}

func (r *accountRepository) UpdateImage(ctx context.Context, id, image string) error {
	const query = `UPDATE accounts SET image=$2, updated_at=NOW() WHERE id=$1`
	return r.exec(ctx, query, id, image)
}

func (r *accountRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
