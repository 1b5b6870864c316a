package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/core/domain"
)

// LedgerReader defines read operations over the per-account ledgers.
type LedgerReader interface {
	// FindLastTransaction retrieves the tip of an account's ledger, or
	// apperrors.ErrNotFound when the ledger is empty.
	FindLastTransaction(ctx context.Context, accountNumber int64) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves an account's ledger in commit order.
	ListTransactionsByAccount(ctx context.Context, accountNumber int64) ([]domain.Transaction, error)
}

// LedgerWriter defines the atomic commit operations for ledger entries.
// Every method applies its balance updates and the ledger mutation in a single
// database transaction, so a failed precondition never leaves a partial write.
type LedgerWriter interface {
	// SaveTransaction appends a ledger entry and overwrites the balances in
	// newBalances (keyed by account number).
	SaveTransaction(ctx context.Context, txn domain.Transaction, newBalances map[int64]decimal.Decimal) error

	// SaveWithdrawal appends a withdraw entry, overwrites the balances in
	// newBalances and persists the vault counts left after dispensing.
	SaveWithdrawal(ctx context.Context, txn domain.Transaction, newBalances map[int64]decimal.Decimal, counts domain.BillCounts) error

	// RemoveTransaction deletes a ledger entry by ID and overwrites the
	// balances in newBalances. The caller guarantees the entry is the tip of
	// its ledger.
	RemoveTransaction(ctx context.Context, transactionID string, newBalances map[int64]decimal.Decimal) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
