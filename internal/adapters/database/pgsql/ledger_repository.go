package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mapleridge/teller_app/internal/apperrors"
	"github.com/mapleridge/teller_app/internal/core/domain"
	portsrepo "github.com/mapleridge/teller_app/internal/core/ports/repositories"
	"github.com/mapleridge/teller_app/internal/models"
	"github.com/mapleridge/teller_app/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerRepository creates a new repository for ledger entries.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, account_number, kind, amount, counterparty_account_number, payee, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

const updateBalanceQuery = `
	UPDATE accounts SET balance = $2 WHERE account_number = $1;
`

// SaveTransaction appends a ledger entry and applies the balance updates
// within one DB transaction.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, newBalances map[int64]decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	if err := insertEntry(ctx, tx, txn); err != nil {
		return err
	}
	if err := applyBalances(ctx, tx, newBalances); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ledger entry %s: %w", txn.TransactionID, err)
	}
	return nil
}

// SaveWithdrawal appends a withdraw entry, applies the balance updates and
// persists the post-dispense vault counts, all within one DB transaction.
func (r *PgxLedgerRepository) SaveWithdrawal(ctx context.Context, txn domain.Transaction, newBalances map[int64]decimal.Decimal, counts domain.BillCounts) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := insertEntry(ctx, tx, txn); err != nil {
		return err
	}
	if err := applyBalances(ctx, tx, newBalances); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, d := range domain.Denominations {
		batch.Queue(updateVaultBillQuery, int64(d), counts[d])
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to persist vault counts for entry %s: %w", txn.TransactionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit withdrawal %s: %w", txn.TransactionID, err)
	}
	return nil
}

// RemoveTransaction deletes a ledger entry and applies the reversal balances
// within one DB transaction.
func (r *PgxLedgerRepository) RemoveTransaction(ctx context.Context, transactionID string, newBalances map[int64]decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := applyBalances(ctx, tx, newBalances); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit removal of entry %s: %w", transactionID, err)
	}
	return nil
}

// FindLastTransaction retrieves the tip of an account's ledger.
func (r *PgxLedgerRepository) FindLastTransaction(ctx context.Context, accountNumber int64) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_number, kind, amount, counterparty_account_number, payee, created_at
		FROM transactions
		WHERE account_number = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT 1;
	`
	var row models.Transaction
	err := r.pool.QueryRow(ctx, query, accountNumber).Scan(
		&row.TransactionID,
		&row.AccountNumber,
		&row.Kind,
		&row.Amount,
		&row.CounterpartyAccountNumber,
		&row.Payee,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find last ledger entry for account %d: %w", accountNumber, err)
	}

	txn := mapping.TransactionToDomain(row)
	return &txn, nil
}

// ListTransactionsByAccount retrieves an account's ledger in commit order.
func (r *PgxLedgerRepository) ListTransactionsByAccount(ctx context.Context, accountNumber int64) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_number, kind, amount, counterparty_account_number, payee, created_at
		FROM transactions
		WHERE account_number = $1
		ORDER BY created_at, transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for account %d: %w", accountNumber, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var row models.Transaction
		if err := rows.Scan(
			&row.TransactionID,
			&row.AccountNumber,
			&row.Kind,
			&row.Amount,
			&row.CounterpartyAccountNumber,
			&row.Payee,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row for account %d: %w", accountNumber, err)
		}
		transactions = append(transactions, mapping.TransactionToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows for account %d: %w", accountNumber, err)
	}
	return transactions, nil
}

func insertEntry(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	row := mapping.TransactionToModel(txn)
	_, err := tx.Exec(ctx, insertTransactionQuery,
		row.TransactionID,
		row.AccountNumber,
		row.Kind,
		row.Amount,
		row.CounterpartyAccountNumber,
		row.Payee,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", txn.TransactionID, err)
	}
	return nil
}

func applyBalances(ctx context.Context, tx pgx.Tx, newBalances map[int64]decimal.Decimal) error {
	for accountNumber, balance := range newBalances {
		tag, err := tx.Exec(ctx, updateBalanceQuery, accountNumber, balance)
		if err != nil {
			return fmt.Errorf("failed to update balance of account %d: %w", accountNumber, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}
	return nil
}
