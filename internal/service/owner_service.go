package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/car-rental-service/internal/domain"
	"github.com/spec-kit/car-rental-service/internal/repository"
)

// OwnerService handles account-level owner operations.
type OwnerService struct {
	accounts repository.AccountRepository
}

// NewOwnerService builds the service.
func NewOwnerService(accounts repository.AccountRepository) *OwnerService {
	return &OwnerService{accounts: accounts}
}

// ElevateToOwner grants the owner role so the account can list cars.
func (s *OwnerService) ElevateToOwner(ctx context.Context, accountID string) error {
	if err := s.accounts.UpdateRole(ctx, accountID, domain.RoleOwner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// UpdateImage stores a new profile image URL.
func (s *OwnerService) UpdateImage(ctx context.Context, accountID, image string) error {
	if err := s.accounts.UpdateImage(ctx, accountID, image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
