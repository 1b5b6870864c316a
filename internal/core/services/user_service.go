package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	portssvc "github.com/mapleridge/teller_app/internal/core/ports/services"
	"github.com/mapleridge/teller_app/internal/dto"
	"github.com/mapleridge/teller_app/internal/middleware"
)

// userService manages branch customers.
type userService struct {
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, accountRepo: accountRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new customer.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	user := domain.User{
		UserID:    uuid.NewString(),
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUser retrieves a customer.
func (s *userService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserAccounts retrieves the customer with every account they own.
func (s *userService) GetUserAccounts(ctx context.Context, userID string) (*domain.User, []domain.Account, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, accounts, nil
}
