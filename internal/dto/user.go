package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// CreateUserRequest registers a new branch customer.
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
}

// UserResponse defines the data returned for a user, including the net total
// across all their accounts (assets minus debts).
type UserResponse struct {
	UserID    string            `json:"userID"`
	Name      string            `json:"name"`
	NetTotal  decimal.Decimal   `json:"netTotal"`
	Accounts  []AccountResponse `json:"accounts"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToUserResponse converts a user and their loaded accounts to the response
// DTO.
func ToUserResponse(user *domain.User, accounts []domain.Account) UserResponse {
	netTotal := decimal.Zero
	for i := range accounts {
		netTotal = netTotal.Add(accounts[i].NetContribution())
	}
	return UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		NetTotal:  netTotal,
		Accounts:  ToListAccountResponse(accounts),
		CreatedAt: user.CreatedAt,
	}
}
