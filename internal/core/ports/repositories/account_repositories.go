package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByNumber retrieves one account with its owners.
	FindAccountByNumber(ctx context.Context, accountNumber int64) (*domain.Account, error)

	// FindAccountsByNumbers retrieves several accounts keyed by number.
	// Missing numbers are absent from the map, not an error.
	FindAccountsByNumbers(ctx context.Context, accountNumbers []int64) (map[int64]domain.Account, error)

	// ListAccountsByOwner retrieves every account the user owns, in account
	// number order.
	ListAccountsByOwner(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// NextAccountNumber reserves the next sequential account number.
	NextAccountNumber(ctx context.Context) (int64, error)

	// SaveAccount inserts a new account and its initial owner.
	SaveAccount(ctx context.Context, account domain.Account) error

	// AddOwner attaches a second owner and flips the joint flag, both in one
	// transaction.
	AddOwner(ctx context.Context, accountNumber int64, userID string) error

	// MarkPrimary flags a chequing account as its owner's default deposit
	// target.
	MarkPrimary(ctx context.Context, accountNumber int64) error

	// UpdateBalance overwrites one account's balance. Used by operations that
	// touch a single account and write no ledger entry (deposit, interest).
	UpdateBalance(ctx context.Context, accountNumber int64, balance decimal.Decimal) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
