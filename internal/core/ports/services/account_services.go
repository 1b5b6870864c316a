package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/core/domain"
	"github.com/mapleridge/teller_app/internal/dto"
)

// AccountReaderSvc defines read-side account operations.
type AccountReaderSvc interface {
	// GetAccount retrieves one account.
	GetAccount(ctx context.Context, accountNumber int64) (*domain.Account, error)

	// ListTransactions retrieves an account's ledger in commit order.
	ListTransactions(ctx context.Context, accountNumber int64) ([]domain.Transaction, error)

	// GetLastTransaction retrieves the tip of an account's ledger.
	GetLastTransaction(ctx context.Context, accountNumber int64) (*domain.Transaction, error)
}

// AccountWriterSvc defines the money-movement operations. Each call is a
// single atomic step: it either fully applies or fully no-ops on a failed
// precondition.
type AccountWriterSvc interface {
	// CreateAccount opens an account of the requested category for the user,
	// assigning the next sequential account number. The user's first chequing
	// account becomes their primary deposit target.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// AddOwner attaches a second owner, making the account joint. A third
	// owner fails with ErrJointLimitExceeded.
	AddOwner(ctx context.Context, accountNumber int64, userID string) (*domain.Account, error)

	// Deposit credits the account. Deposits are not recorded in the ledger
	// because they cannot be undone.
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*domain.Account, error)

	// DepositToPrimary credits the user's primary chequing account.
	DepositToPrimary(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Account, error)

	// Withdraw debits the account and dispenses bills from the vault. The
	// amount must be a positive multiple of 5.
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*domain.Account, domain.BillCounts, error)

	// TransferIn moves amount from the counterparty account into this one and
	// records a TransferIn entry on this account's ledger.
	TransferIn(ctx context.Context, accountNumber, fromAccountNumber int64, amount decimal.Decimal) (*domain.Account, error)

	// TransferOut moves amount from this account into the counterparty and
	// records a TransferOut entry on this account's ledger. Credit cards
	// cannot be a transfer source.
	TransferOut(ctx context.Context, accountNumber, toAccountNumber int64, amount decimal.Decimal) (*domain.Account, error)

	// PayBill debits the account in favour of an external payee. Credit cards
	// and stock holdings cannot pay bills.
	PayBill(ctx context.Context, accountNumber int64, amount decimal.Decimal, payee string) (*domain.Account, error)

	// ApplyMonthlyInterest applies the monthly savings interest rate. Only
	// savings accounts accrue interest.
	ApplyMonthlyInterest(ctx context.Context, accountNumber int64) (*domain.Account, error)
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
