package repositories

import (
	"context"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// UserRepositoryFacade persists branch customers.
type UserRepositoryFacade interface {
	// SaveUser inserts a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user with their account numbers.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}
