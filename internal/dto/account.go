package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	Category domain.AccountCategory `json:"category" binding:"required,oneof=CHEQUING SAVINGS STOCK_HOLDING CREDIT_CARD LINE_OF_CREDIT"`
}

// AddOwnerRequest attaches a second owner to an account.
type AddOwnerRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// AmountRequest carries the dollar amount for single-amount operations like
// deposits.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest names the other leg of a transfer.
type TransferRequest struct {
	Amount                    decimal.Decimal `json:"amount" binding:"required"`
	CounterpartyAccountNumber int64           `json:"counterpartyAccountNumber" binding:"required"`
}

// PayBillRequest pays an external recipient.
type PayBillRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Payee  string          `json:"payee" binding:"required"`
}

// WithdrawRequest asks the vault for cash.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountNumber int64                  `json:"accountNumber"`
	Category      domain.AccountCategory `json:"category"`
	Balance       decimal.Decimal        `json:"balance"`
	IsJoint       bool                   `json:"isJoint"`
	Primary       bool                   `json:"primary"`
	OwnerIDs      []string               `json:"ownerIDs"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		Category:      acc.Category,
		Balance:       acc.Balance,
		IsJoint:       acc.IsJoint,
		Primary:       acc.Primary,
		OwnerIDs:      acc.OwnerIDs,
		CreatedAt:     acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// WithdrawalResponse is the result of a cash withdrawal: the updated account
// plus the bills the dispenser handed out, keyed by denomination.
type WithdrawalResponse struct {
	Account AccountResponse  `json:"account"`
	Bills   map[string]int64 `json:"bills"`
}
