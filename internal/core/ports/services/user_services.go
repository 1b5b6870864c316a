package services

import (
	"context"

	"github.com/mapleridge/teller_app/internal/core/domain"
	"github.com/mapleridge/teller_app/internal/dto"
)

// UserSvcFacade manages branch customers.
type UserSvcFacade interface {
	// CreateUser registers a new customer.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUser retrieves a customer.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// GetUserAccounts retrieves the customer together with every account they
	// own.
	GetUserAccounts(ctx context.Context, userID string) (*domain.User, []domain.Account, error)
}
